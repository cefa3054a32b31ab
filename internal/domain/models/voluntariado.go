// internal/domain/models/voluntariado.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Voluntariado is a volunteering posting linked to a Carrera by name.
type Voluntariado struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Carrera     string             `bson:"carrera" json:"carrera"`
	CarreraCI   string             `bson:"carrera_ci" json:"-"`
	Titulo      string             `bson:"titulo" json:"titulo"`
	Descripcion string             `bson:"descripcion" json:"descripcion"`
	Ubicacion   string             `bson:"ubicacion" json:"ubicacion"`
	Salario     float64            `bson:"salario" json:"salario"`
	Permalink   string             `bson:"permalink" json:"permalink"`
	CreatedAt   time.Time          `bson:"created_at" json:"-"`
}
