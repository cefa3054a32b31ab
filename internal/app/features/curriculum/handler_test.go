package curriculum_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/dalemusser/vocaguia/internal/app/features/curriculum"
	apierrors "github.com/dalemusser/vocaguia/internal/app/features/errors"
	"github.com/dalemusser/vocaguia/internal/domain/models"
	"github.com/dalemusser/vocaguia/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeEntries struct {
	got []models.MapaCurricular
	err error
}

func (f *fakeEntries) Create(_ context.Context, m models.MapaCurricular) (models.MapaCurricular, error) {
	if f.err != nil {
		return models.MapaCurricular{}, f.err
	}
	m.ID = primitive.NewObjectID()
	f.got = append(f.got, m)
	return m, nil
}

func newHandler(f *fakeEntries) *curriculum.Handler {
	logger := zap.NewNop()
	return &curriculum.Handler{Entries: f, Log: logger, ErrLog: apierrors.NewErrorLogger(logger)}
}

func TestServeCreate(t *testing.T) {
	f := &fakeEntries{}
	r := curriculum.Routes(newHandler(f))

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{
		"nombre":      "  Anatomía I ",
		"descripcion": "Huesos y músculos",
		"carrera":     "Medicina",
	}))
	rec.AssertStatus(t, http.StatusCreated)

	if len(f.got) != 1 || f.got[0].Nombre != "Anatomía I" {
		t.Fatalf("stored = %+v", f.got)
	}
	var body map[string]any
	testutil.DecodeJSON(t, rec.ResponseRecorder, &body)
	if body["carrera"] != "Medicina" || body["id"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestServeCreate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		body   any
		detail string
	}{
		{"missing carrera", map[string]any{"nombre": "x", "descripcion": "y"}, "MissingField: carrera"},
		{"not an object", `[1,2]`, "InvalidType"},
		{"malformed", `{"nombre":`, "malformed JSON body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeEntries{}
			rec := testutil.NewRecorder()
			curriculum.Routes(newHandler(f)).ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", tt.body))
			rec.AssertStatus(t, http.StatusBadRequest)
			rec.AssertContains(t, tt.detail)
			if len(f.got) != 0 {
				t.Error("nothing should be stored")
			}
		})
	}
}

func TestServeCreate_StoreError(t *testing.T) {
	f := &fakeEntries{err: errors.New("write failed")}
	rec := testutil.NewRecorder()
	curriculum.Routes(newHandler(f)).ServeHTTP(rec, testutil.NewJSONRequest(t, http.MethodPost, "/", map[string]any{
		"nombre": "x", "descripcion": "y", "carrera": "z",
	}))
	rec.AssertStatus(t, http.StatusInternalServerError)
	if strings.Contains(rec.Body.String(), "write failed") {
		t.Error("driver error leaked to the client")
	}
}
