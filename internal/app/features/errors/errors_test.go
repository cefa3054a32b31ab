package errors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	BadRequest(rec, "carrera is required")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"detail":"carrera is required"}` {
		t.Errorf("body = %s", got)
	}
}

func TestLogServerError(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	el := NewErrorLogger(zap.New(core))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/carreras", nil)
	el.LogServerError(rec, req, "list carreras failed", errors.New("boom"), "Unable to load majors.")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Error("internal error leaked to the client")
	}
	if logs.Len() != 1 || logs.All()[0].Message != "list carreras failed" {
		t.Errorf("logs = %v", logs.All())
	}
}

func TestHandler_NotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler().NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
}
