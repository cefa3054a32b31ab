// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a student profile. Email is stored lower-cased and is the natural key.
//
// OAuthTokenFP is a fingerprint of the provider token presented at
// registration; the token itself is never stored.
type User struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	FirstName     string             `bson:"first_name" json:"first_name"`
	LastName      string             `bson:"last_name" json:"last_name"`
	Email         string             `bson:"email" json:"email"`
	Ubicacion     string             `bson:"ubicacion" json:"ubicacion"`
	Discapacidad  string             `bson:"discapacidad" json:"discapacidad"`
	Carrera       string             `bson:"carrera" json:"carrera"`
	MainArea      string             `bson:"main_area,omitempty" json:"main_area,omitempty"`
	Intereses     []string           `bson:"intereses,omitempty" json:"intereses,omitempty"`
	Zona          bool               `bson:"zona" json:"zona"`
	OAuthProvider string             `bson:"oauth_provider,omitempty" json:"-"`
	OAuthTokenFP  string             `bson:"oauth_token_fp,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"-"`
	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}
