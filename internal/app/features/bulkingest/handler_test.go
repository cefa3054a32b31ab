package bulkingest_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/vocaguia/internal/app/features/bulkingest"
	apierrors "github.com/dalemusser/vocaguia/internal/app/features/errors"
	"github.com/dalemusser/vocaguia/internal/app/system/bulk"
	"github.com/dalemusser/vocaguia/internal/app/system/ratelimit"
	"github.com/dalemusser/vocaguia/internal/app/system/records"
	"github.com/dalemusser/vocaguia/internal/app/system/schema"
	"github.com/dalemusser/vocaguia/internal/testutil"
	"go.uber.org/zap"
)

// carreraSink keeps carreras in memory keyed by folded nombre.
type carreraSink struct {
	n     int
	byKey map[string]string
}

func (s *carreraSink) Insert(_ context.Context, rec records.Record) (string, error) {
	s.n++
	id := fmt.Sprintf("c%d", s.n)
	s.byKey[rec.NaturalKey()] = id
	return id, nil
}

func (s *carreraSink) FindByKey(_ context.Context, key string) (string, bool, error) {
	id, ok := s.byKey[key]
	return id, ok, nil
}

func (s *carreraSink) Patch(context.Context, string, records.Record) error { return nil }

func newRouter(limit func(http.Handler) http.Handler) (http.Handler, *carreraSink, *bulk.Engine) {
	logger := zap.NewNop()
	sink := &carreraSink{byKey: map[string]string{}}
	engine := bulk.NewEngine(map[schema.Kind]bulk.Sink{schema.Carreras: sink}, logger)
	h := bulkingest.NewHandler(engine, apierrors.NewErrorLogger(logger), logger)
	return bulkingest.Routes(h, limit), sink, engine
}

func post(r http.Handler, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type batchBody struct {
	BatchID string           `json:"batch_id"`
	Created *int             `json:"created"`
	Updated *int             `json:"updated"`
	IDs     []string         `json:"ids"`
	Failed  *int             `json:"failed"`
	Errors  []bulk.ItemError `json:"errors"`
}

func TestServeBatch_AllCreated(t *testing.T) {
	r, _, _ := newRouter(nil)
	rec := post(r, "/carreras", `[
		{"nombre":"Derecho","descripcion":"Leyes"},
		{"nombre":"Medicina","descripcion":"Salud","main_area":" Salud "}
	]`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	var body batchBody
	testutil.DecodeJSON(t, rec, &body)
	if body.Created == nil || *body.Created != 2 || len(body.IDs) != 2 {
		t.Errorf("body = %+v", body)
	}
	if body.Failed != nil || body.Errors != nil {
		t.Errorf("success body should not carry failures: %s", rec.Body.String())
	}
}

func TestServeBatch_Partial(t *testing.T) {
	r, _, _ := newRouter(nil)
	rec := post(r, "/carreras", `[{"nombre":"Derecho","descripcion":"..."},{"nombre":"","descripcion":"x"}]`)
	if rec.Code != http.StatusMultiStatus {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	var body batchBody
	testutil.DecodeJSON(t, rec, &body)
	if *body.Created != 1 || *body.Failed != 1 {
		t.Fatalf("body = %+v", body)
	}
	if len(body.Errors) != 1 || body.Errors[0].Index != 1 || body.Errors[0].Error != "MissingField: nombre" {
		t.Errorf("errors = %+v", body.Errors)
	}
}

func TestServeBatch_ResubmitUpdates(t *testing.T) {
	r, sink, _ := newRouter(nil)
	payload := `[{"nombre":"Derecho","descripcion":"Leyes"}]`
	post(r, "/carreras", payload)
	rec := post(r, "/carreras", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	var body batchBody
	testutil.DecodeJSON(t, rec, &body)
	if *body.Created != 0 || *body.Updated != 1 {
		t.Errorf("body = %+v", body)
	}
	if len(sink.byKey) != 1 {
		t.Errorf("stored %d carreras, want 1", len(sink.byKey))
	}
}

func TestServeBatch_AllFailed(t *testing.T) {
	r, _, _ := newRouter(nil)
	rec := post(r, "/carreras", `[{"descripcion":"x"}, 7]`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var body batchBody
	testutil.DecodeJSON(t, rec, &body)
	if body.Created != nil || *body.Failed != 2 || len(body.Errors) != 2 {
		t.Errorf("body = %s", rec.Body.String())
	}
	if body.Errors[1].Index != 1 {
		t.Errorf("second error index = %d", body.Errors[1].Index)
	}
}

func TestServeBatch_RequestErrors(t *testing.T) {
	r, _, engine := newRouter(nil)
	engine.MaxItems = 1

	tests := []struct {
		name   string
		target string
		body   string
		want   int
		detail string
	}{
		{"not an array", "/carreras", `{"nombre":"x"}`, http.StatusBadRequest, "expected a JSON array"},
		{"malformed", "/carreras", `[{`, http.StatusBadRequest, "malformed JSON body"},
		{"unknown kind", "/planetas", `[]`, http.StatusNotFound, "unknown record kind"},
		{"too many", "/carreras", `[{},{}]`, http.StatusRequestEntityTooLarge, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(r, tt.target, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			var body map[string]string
			testutil.DecodeJSON(t, rec, &body)
			if tt.detail != "" && body["detail"] != tt.detail {
				t.Errorf("detail = %q, want %q", body["detail"], tt.detail)
			}
		})
	}
}

func TestServeBatch_RateLimited(t *testing.T) {
	lim := ratelimit.New(1, time.Minute)
	defer lim.Stop()
	r, _, _ := newRouter(ratelimit.Middleware(lim, "bulk", zap.NewNop()))

	if rec := post(r, "/carreras", `[]`); rec.Code != http.StatusCreated {
		t.Fatalf("first status = %d", rec.Code)
	}
	if rec := post(r, "/carreras", `[]`); rec.Code != http.StatusTooManyRequests {
		t.Errorf("second status = %d, want 429", rec.Code)
	}
}
