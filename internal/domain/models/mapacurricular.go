// internal/domain/models/mapacurricular.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MapaCurricular is one course of a major's curriculum.
type MapaCurricular struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Nombre      string             `bson:"nombre" json:"nombre"`
	NombreCI    string             `bson:"nombre_ci" json:"-"`
	Descripcion string             `bson:"descripcion" json:"descripcion"`
	Carrera     string             `bson:"carrera" json:"carrera"`
	CarreraCI   string             `bson:"carrera_ci" json:"-"`
	CreatedAt   time.Time          `bson:"created_at" json:"-"`
}
