package subareas_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	apierrors "github.com/dalemusser/vocaguia/internal/app/features/errors"
	"github.com/dalemusser/vocaguia/internal/app/features/subareas"
	"github.com/dalemusser/vocaguia/internal/domain/models"
	"github.com/dalemusser/vocaguia/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type fakeSubareas []models.Subarea

func (f fakeSubareas) GetByNombre(_ context.Context, n string) (models.Subarea, error) {
	for _, s := range f {
		if s.Nombre == n {
			return s, nil
		}
	}
	return models.Subarea{}, mongo.ErrNoDocuments
}

func (f fakeSubareas) NamesByCarrera(_ context.Context, c string) ([]string, error) {
	out := []string{}
	for _, s := range f {
		if strings.EqualFold(s.Carrera, c) {
			out = append(out, s.Nombre)
		}
	}
	return out, nil
}

func (f fakeSubareas) ListByCarrera(_ context.Context, c string) ([]models.Subarea, error) {
	out := []models.Subarea{}
	for _, s := range f {
		if s.Carrera == c {
			out = append(out, s)
		}
	}
	return out, nil
}

func newHandler() *subareas.Handler {
	logger := zap.NewNop()
	return &subareas.Handler{
		Subareas: fakeSubareas{
			{Nombre: "Anatomía", Carrera: "Medicina", Lecciones: []models.Leccion{{Titulo: "Huesos"}}},
			{Nombre: "Fisiología", Carrera: "Medicina"},
			{Nombre: "Derecho Penal", Carrera: "Derecho"},
		},
		Log:    logger,
		ErrLog: apierrors.NewErrorLogger(logger),
	}
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServeNames(t *testing.T) {
	r := subareas.Routes(newHandler())

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{"by carrera", "/?carrera=Medicina", []string{"Anatomía", "Fisiología"}},
		{"case-insensitive", "/?carrera=%20medicina%20", []string{"Anatomía", "Fisiología"}},
		{"no major document needed", "/?carrera=Derecho", []string{"Derecho Penal"}},
		{"unknown carrera", "/?carrera=Arte", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(r, tt.target)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			var names []string
			testutil.DecodeJSON(t, rec, &names)
			if names == nil {
				t.Fatal("expected a JSON array, got null")
			}
			if !reflect.DeepEqual(names, tt.want) {
				t.Errorf("names = %v, want %v", names, tt.want)
			}
		})
	}

	if rec := get(r, "/"); rec.Code != http.StatusBadRequest {
		t.Errorf("missing carrera status = %d, want 400", rec.Code)
	}
}

func TestServeDetalle(t *testing.T) {
	rec := get(subareas.Routes(newHandler()), "/detalle?carrera=Medicina")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var list []map[string]any
	testutil.DecodeJSON(t, rec, &list)
	if len(list) != 2 || list[0]["nombre"] != "Anatomía" {
		t.Errorf("list = %v", list)
	}
}

func TestServeOne(t *testing.T) {
	r := subareas.SingleRoutes(newHandler())

	rec := get(r, "/?nombre=Anatom%C3%ADa")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var sa map[string]any
	testutil.DecodeJSON(t, rec, &sa)
	if lec, _ := sa["lecciones"].([]any); len(lec) != 1 {
		t.Errorf("lecciones = %v", sa["lecciones"])
	}
	if _, leaked := sa["nombre_ci"]; leaked {
		t.Error("internal nombre_ci field leaked")
	}

	if rec := get(r, "/?nombre=Nada"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
