// internal/app/store/escuelas/escuelastore.go
package escuelastore

import (
	"context"
	"time"

	"github.com/dalemusser/vocaguia/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("escuelas")}
}

// Create inserts a school. CarrerasCI mirrors Carreras folded for lookup.
func (s *Store) Create(ctx context.Context, e models.Escuela) (models.Escuela, error) {
	e.ID = primitive.NewObjectID()
	if e.Ubicacion == nil {
		e.Ubicacion = []models.Coordenadas{}
	}
	if e.Carreras == nil {
		e.Carreras = []string{}
	}
	e.CarrerasCI = make([]string, 0, len(e.Carreras))
	for _, c := range e.Carreras {
		e.CarrerasCI = append(e.CarrerasCI, text.Fold(c))
	}
	e.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Escuela{}, err
	}
	return e, nil
}

// ListByCarrera returns the schools offering carrera (case-insensitive), by name.
func (s *Store) ListByCarrera(ctx context.Context, carrera string) ([]models.Escuela, error) {
	cur, err := s.c.Find(ctx, bson.M{"carreras_ci": text.Fold(carrera)},
		options.Find().SetSort(bson.D{{Key: "nombre", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.Escuela{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
