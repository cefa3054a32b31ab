package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/vocaguia/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures inserts documents directly, bypassing the stores.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

func (f *Fixtures) DB() *mongo.Database { return f.db }

// CreateCarrera inserts a major with the given sub-areas.
func (f *Fixtures) CreateCarrera(ctx context.Context, nombre, area string, subAreas ...string) models.Carrera {
	f.t.Helper()
	now := time.Now().UTC()
	if subAreas == nil {
		subAreas = []string{}
	}
	c := models.Carrera{
		ID:          primitive.NewObjectID(),
		Nombre:      nombre,
		NombreCI:    text.Fold(nombre),
		Descripcion: "Descripción de " + nombre,
		MainArea:    area,
		Videos:      []string{},
		SubAreas:    subAreas,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("carreras").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test carrera: %v", err)
	}
	return c
}

// CreateFormulario inserts a form for subarea. A nil resultados is stored as null.
func (f *Fixtures) CreateFormulario(ctx context.Context, nombre, subarea string, resultados *float64) models.Formulario {
	f.t.Helper()
	fm := models.Formulario{
		ID:         primitive.NewObjectID(),
		Nombre:     nombre,
		Subarea:    subarea,
		SubareaCI:  text.Fold(subarea),
		Preguntas:  models.OpaqueList{},
		Respuestas: models.OpaqueList{},
		Resultados: resultados,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := f.db.Collection("formularios").InsertOne(ctx, fm); err != nil {
		f.t.Fatalf("failed to create test formulario: %v", err)
	}
	return fm
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
