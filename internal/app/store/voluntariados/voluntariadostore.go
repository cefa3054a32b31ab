// internal/app/store/voluntariados/voluntariadostore.go
package voluntariadostore

import (
	"context"
	"time"

	"github.com/dalemusser/vocaguia/internal/app/system/htmlsanitize"
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
	return &Store{c: db.Collection("voluntariados")}
}

func (s *Store) Create(ctx context.Context, v models.Voluntariado) (models.Voluntariado, error) {
	v.ID = primitive.NewObjectID()
	v.CarreraCI = text.Fold(v.Carrera)
	v.Descripcion = htmlsanitize.Clean(v.Descripcion)
	v.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, v); err != nil {
		return models.Voluntariado{}, err
	}
	return v, nil
}

// ListByCarrera returns the postings for a major, newest first.
func (s *Store) ListByCarrera(ctx context.Context, carrera string) ([]models.Voluntariado, error) {
	cur, err := s.c.Find(ctx, bson.M{"carrera_ci": text.Fold(carrera)},
		options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.Voluntariado{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
