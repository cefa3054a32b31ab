// internal/app/store/subareas/subareastore.go
package subareastore

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
	return &Store{c: db.Collection("subareas")}
}

func (s *Store) Create(ctx context.Context, sa models.Subarea) (models.Subarea, error) {
	sa.ID = primitive.NewObjectID()
	sa.NombreCI = text.Fold(sa.Nombre)
	sa.CarreraCI = text.Fold(sa.Carrera)
	sa.Introduccion = htmlsanitize.Clean(sa.Introduccion)
	sa.Descripcion = htmlsanitize.Clean(sa.Descripcion)
	if sa.VideosEscuela == nil {
		sa.VideosEscuela = []string{}
	}
	if sa.Lecciones == nil {
		sa.Lecciones = []models.Leccion{}
	}
	for i := range sa.Lecciones {
		sa.Lecciones[i].Descripcion = htmlsanitize.Clean(sa.Lecciones[i].Descripcion)
		if sa.Lecciones[i].Videos == nil {
			sa.Lecciones[i].Videos = []string{}
		}
	}
	sa.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, sa); err != nil {
		return models.Subarea{}, err
	}
	return sa, nil
}

// GetByNombre returns the first subarea named nombre (case-insensitive).
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByNombre(ctx context.Context, nombre string) (models.Subarea, error) {
	var sa models.Subarea
	err := s.c.FindOne(ctx, bson.M{"nombre_ci": text.Fold(nombre)},
		options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})).Decode(&sa)
	if err != nil {
		return models.Subarea{}, err
	}
	return sa, nil
}

// NamesByCarrera returns the names of the major's subareas (case-insensitive
// match on carrera) in insertion order. An unknown major yields an empty list.
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

// ListByCarrera returns the full subarea records of a major in insertion order.
func (s *Store) ListByCarrera(ctx context.Context, carrera string) ([]models.Subarea, error) {
	cur, err := s.c.Find(ctx, bson.M{"carrera_ci": text.Fold(carrera)},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.Subarea{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
