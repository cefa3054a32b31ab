// internal/domain/models/subarea.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Leccion is one lesson inside a Subarea.
type Leccion struct {
	Titulo      string   `bson:"titulo" json:"titulo"`
	Videos      []string `bson:"videos" json:"videos"`
	Descripcion string   `bson:"descripcion" json:"descripcion"`
}

// Subarea groups lessons under a Carrera (by name).
// Progreso and TotalLecciones are informational.
type Subarea struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	Nombre         string             `bson:"nombre" json:"nombre"`
	NombreCI       string             `bson:"nombre_ci" json:"-"`
	Introduccion   string             `bson:"introduccion" json:"introduccion"`
	Descripcion    string             `bson:"descripcion" json:"descripcion"`
	VideosEscuela  []string           `bson:"videos_escuela" json:"videos_escuela"`
	Carrera        string             `bson:"carrera" json:"carrera"`
	CarreraCI      string             `bson:"carrera_ci" json:"-"`
	Lecciones      []Leccion          `bson:"lecciones" json:"lecciones"`
	Progreso       int                `bson:"progreso" json:"progreso"`
	TotalLecciones int                `bson:"total_lecciones" json:"total_lecciones"`
	CreatedAt      time.Time          `bson:"created_at" json:"-"`
}
