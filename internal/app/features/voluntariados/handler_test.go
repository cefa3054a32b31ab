package voluntariados_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "github.com/dalemusser/vocaguia/internal/app/features/errors"
	"github.com/dalemusser/vocaguia/internal/app/features/voluntariados"
	"github.com/dalemusser/vocaguia/internal/domain/models"
	"github.com/dalemusser/vocaguia/internal/testutil"
	"go.uber.org/zap"
)

type fakePostings struct {
	list []models.Voluntariado
	err  error
}

func (f fakePostings) ListByCarrera(context.Context, string) ([]models.Voluntariado, error) {
	return f.list, f.err
}

func serve(p fakePostings, target string) *httptest.ResponseRecorder {
	logger := zap.NewNop()
	r := voluntariados.Routes(&voluntariados.Handler{Postings: p, Log: logger, ErrLog: apierrors.NewErrorLogger(logger)})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServeByCarrera(t *testing.T) {
	rec := serve(fakePostings{list: []models.Voluntariado{{Titulo: "Brigada", Carrera: "Medicina", Salario: 0}}}, "/?carrera=Medicina")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var list []map[string]any
	testutil.DecodeJSON(t, rec, &list)
	if len(list) != 1 || list[0]["titulo"] != "Brigada" {
		t.Errorf("list = %v", list)
	}
}

func TestServeByCarrera_Errors(t *testing.T) {
	if rec := serve(fakePostings{}, "/"); rec.Code != http.StatusBadRequest {
		t.Errorf("missing carrera status = %d", rec.Code)
	}
	if rec := serve(fakePostings{err: errors.New("boom")}, "/?carrera=x"); rec.Code != http.StatusInternalServerError {
		t.Errorf("store error status = %d", rec.Code)
	}
}
