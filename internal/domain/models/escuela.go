// internal/domain/models/escuela.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coordenadas is one geographic point of a school campus.
type Coordenadas struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Escuela is a school. Carreras references majors by name, not by id.
type Escuela struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Nombre     string             `bson:"nombre" json:"nombre"`
	Ubicacion  []Coordenadas      `bson:"ubicacion" json:"ubicacion"`
	Type       string             `bson:"type" json:"type"` // publica | privada
	Carreras   []string           `bson:"carreras" json:"carreras"`
	CarrerasCI []string           `bson:"carreras_ci" json:"-"`
	Costo      float64            `bson:"costo" json:"costo"`
	CreatedAt  time.Time          `bson:"created_at" json:"-"`
}
