// internal/app/store/mapas/mapastore.go
package mapastore

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
	return &Store{c: db.Collection("mapa_curricular")}
}

func (s *Store) Create(ctx context.Context, m models.MapaCurricular) (models.MapaCurricular, error) {
	m.ID = primitive.NewObjectID()
	m.NombreCI = text.Fold(m.Nombre)
	m.CarreraCI = text.Fold(m.Carrera)
	m.Descripcion = htmlsanitize.Clean(m.Descripcion)
	m.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.MapaCurricular{}, err
	}
	return m, nil
}

// NamesByCarrera returns the course names of a major's curriculum in insertion order.
func (s *Store) NamesByCarrera(ctx context.Context, carrera string) ([]string, error) {
	cur, err := s.c.Find(ctx, bson.M{"carrera_ci": text.Fold(carrera)}, options.Find().
		SetProjection(bson.M{"nombre": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	names := []string{}
	for cur.Next(ctx) {
		var doc struct {
			Nombre string `bson:"nombre"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		names = append(names, doc.Nombre)
	}
	return names, cur.Err()
}

// GetByNombre returns the first course named nombre (case-insensitive).
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByNombre(ctx context.Context, nombre string) (models.MapaCurricular, error) {
	var m models.MapaCurricular
	err := s.c.FindOne(ctx, bson.M{"nombre_ci": text.Fold(nombre)},
		options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})).Decode(&m)
	if err != nil {
		return models.MapaCurricular{}, err
	}
	return m, nil
}
