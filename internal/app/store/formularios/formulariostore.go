// internal/app/store/formularios/formulariostore.go
package formulariostore

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
	return &Store{c: db.Collection("formularios")}
}

// Create inserts a form. Preguntas and Respuestas are stored untouched.
func (s *Store) Create(ctx context.Context, f models.Formulario) (models.Formulario, error) {
	f.ID = primitive.NewObjectID()
	f.SubareaCI = text.Fold(f.Subarea)
	f.Descripcion = htmlsanitize.Clean(f.Descripcion)
	if f.Preguntas == nil {
		f.Preguntas = models.OpaqueList{}
	}
	if f.Respuestas == nil {
		f.Respuestas = models.OpaqueList{}
	}
	f.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, f); err != nil {
		return models.Formulario{}, err
	}
	return f, nil
}

// FirstBySubarea returns the earliest form attached to subarea.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) FirstBySubarea(ctx context.Context, subarea string) (models.Formulario, error) {
	var f models.Formulario
	err := s.c.FindOne(ctx, bson.M{"subarea_ci": text.Fold(subarea)},
		options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})).Decode(&f)
	if err != nil {
		return models.Formulario{}, err
	}
	return f, nil
}

// ScoresBySubareas returns the raw resultados values of every form whose
// subarea is in names. Null and missing scores are excluded; any other
// value is returned as decoded so the caller decides what counts as numeric.
func (s *Store) ScoresBySubareas(ctx context.Context, names []string) ([]any, error) {
	if len(names) == 0 {
		return nil, nil
	}
	folded := make([]string, 0, len(names))
	for _, n := range names {
		folded = append(folded, text.Fold(n))
	}

	cur, err := s.c.Find(ctx, bson.M{
		"subarea_ci": bson.M{"$in": folded},
		"resultados": bson.M{"$ne": nil},
	}, options.Find().SetProjection(bson.M{"resultados": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []any
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc["resultados"])
	}
	return out, cur.Err()
}
