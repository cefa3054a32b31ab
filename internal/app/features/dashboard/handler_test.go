package dashboard_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/vocaguia/internal/app/features/dashboard"
	apierrors "github.com/dalemusser/vocaguia/internal/app/features/errors"
	"github.com/dalemusser/vocaguia/internal/app/store/queries/scorequeries"
	"github.com/dalemusser/vocaguia/internal/testutil"
	"go.uber.org/zap"
)

type fakeAverager struct {
	rows []scorequeries.MajorAverage
	err  error
}

func (f fakeAverager) AverageScoresByMajor(context.Context) ([]scorequeries.MajorAverage, error) {
	return f.rows, f.err
}

func serve(a dashboard.Averager) *httptest.ResponseRecorder {
	logger := zap.NewNop()
	r := dashboard.Routes(&dashboard.Handler{Scores: a, Log: logger, ErrLog: apierrors.NewErrorLogger(logger)})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/formularios/promedio-por-carrera", nil))
	return rec
}

func TestServeAverageByMajor(t *testing.T) {
	rec := serve(fakeAverager{rows: []scorequeries.MajorAverage{
		{Carrera: "Medicina", Promedio: testutil.Float(90)},
		{Carrera: "Derecho"},
	}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var rows []struct {
		Carrera  string   `json:"carrera"`
		Promedio *float64 `json:"promedio"`
	}
	testutil.DecodeJSON(t, rec, &rows)
	if len(rows) != 2 {
		t.Fatalf("rows = %v", rows)
	}
	if rows[0].Carrera != "Medicina" || rows[0].Promedio == nil || *rows[0].Promedio != 90 {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Promedio != nil {
		t.Errorf("row 1 promedio should be null, got %v", *rows[1].Promedio)
	}
}

func TestServeAverageByMajor_Empty(t *testing.T) {
	rec := serve(fakeAverager{})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var rows []any
	testutil.DecodeJSON(t, rec, &rows)
	if rows == nil || len(rows) != 0 {
		t.Errorf("body = %q, want []", rec.Body.String())
	}
}

func TestServeAverageByMajor_StoreError(t *testing.T) {
	rec := serve(fakeAverager{err: errors.New("down")})
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
}
