// internal/domain/models/carrera.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Carrera is a university major. NombreCI is the natural key.
type Carrera struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Nombre      string             `bson:"nombre" json:"nombre"`
	NombreCI    string             `bson:"nombre_ci" json:"-"` // ← always stored
	Descripcion string             `bson:"descripcion" json:"descripcion"`
	MainArea    string             `bson:"main_area,omitempty" json:"main_area,omitempty"`
	Videos      []string           `bson:"videos" json:"videos"`
	SubAreas    []string           `bson:"sub_areas" json:"sub_areas"`
	CreatedAt   time.Time          `bson:"created_at" json:"-"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"-"`
}
