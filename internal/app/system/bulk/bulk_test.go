package bulk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/dalemusser/vocaguia/internal/app/system/records"
	"github.com/dalemusser/vocaguia/internal/app/system/schema"
	"go.uber.org/zap"
)

// memSink is an in-memory keyed sink.
type memSink struct {
	next    int
	byID    map[string]records.Record
	byKey   map[string]string
	failAt  map[int]error // insert call number -> error
	calls   int
	patches int
}

func newMemSink() *memSink {
	return &memSink{byID: map[string]records.Record{}, byKey: map[string]string{}, failAt: map[int]error{}}
}

func (m *memSink) Insert(_ context.Context, rec records.Record) (string, error) {
	m.calls++
	if err, ok := m.failAt[m.calls]; ok {
		return "", err
	}
	m.next++
	id := fmt.Sprintf("id-%d", m.next)
	m.byID[id] = rec
	if k := rec.NaturalKey(); k != "" {
		m.byKey[k] = id
	}
	return id, nil
}

func (m *memSink) FindByKey(_ context.Context, key string) (string, bool, error) {
	id, ok := m.byKey[key]
	return id, ok, nil
}

func (m *memSink) Patch(_ context.Context, id string, rec records.Record) error {
	m.patches++
	m.byID[id] = rec
	return nil
}

// plainSink implements only Sink.
type plainSink struct{ inner *memSink }

func (p plainSink) Insert(ctx context.Context, rec records.Record) (string, error) {
	return p.inner.Insert(ctx, rec)
}

func batch(t *testing.T, s string) []any {
	t.Helper()
	items, err := DecodeBatch(strings.NewReader(s))
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}
	return items
}

func engineWith(kind schema.Kind, s Sink) *Engine {
	return NewEngine(map[schema.Kind]Sink{kind: s}, zap.NewNop())
}

func TestRun_AllValid(t *testing.T) {
	sink := newMemSink()
	e := engineWith(schema.Mapas, plainSink{sink})

	res, err := e.Run(context.Background(), schema.Mapas, batch(t, `[
		{"nombre":"Álgebra","descripcion":"d","carrera":"Ingeniería"},
		{"nombre":"Cálculo","descripcion":"d","carrera":"Ingeniería"},
		{"nombre":"Física","descripcion":"d","carrera":"Ingeniería"}
	]`))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Created != 3 || len(res.IDs) != 3 || res.Failed != 0 || len(res.Errors) != 0 {
		t.Errorf("got %+v", res)
	}
	if res.Status() != Success || res.HTTPStatus() != http.StatusCreated {
		t.Errorf("status = %v / %d", res.Status(), res.HTTPStatus())
	}
	if res.BatchID == "" {
		t.Error("missing batch id")
	}
}

func TestRun_PartialSuccessReportsIndex(t *testing.T) {
	sink := newMemSink()
	e := engineWith(schema.Carreras, sink)

	res, _ := e.Run(context.Background(), schema.Carreras, batch(t, `[
		{"nombre":"Derecho","descripcion":"..."},
		{"nombre":"","descripcion":"x"}
	]`))
	if res.Created != 1 || res.Failed != 1 {
		t.Fatalf("got %+v", res)
	}
	if res.Errors[0].Index != 1 || res.Errors[0].Error != "MissingField: nombre" {
		t.Errorf("errors = %+v", res.Errors)
	}
	if res.Status() != Partial || res.HTTPStatus() != http.StatusMultiStatus {
		t.Errorf("status = %v", res.Status())
	}
}

func TestRun_ErrorIndexMatchesInputPosition(t *testing.T) {
	// Invalid items at 0, 2 and 5 among valid ones.
	in := `[
		{"descripcion":"sin nombre","carrera":"c"},
		{"nombre":"a","descripcion":"d","carrera":"c"},
		{"nombre":"b","carrera":"c"},
		{"nombre":"c","descripcion":"d","carrera":"c"},
		{"nombre":"d","descripcion":"d","carrera":"c"},
		"no es objeto"
	]`
	res, _ := engineWith(schema.Mapas, plainSink{newMemSink()}).Run(context.Background(), schema.Mapas, batch(t, in))

	want := []int{0, 2, 5}
	if len(res.Errors) != len(want) {
		t.Fatalf("errors = %+v", res.Errors)
	}
	for i, idx := range want {
		if res.Errors[i].Index != idx {
			t.Errorf("errors[%d].Index = %d, want %d", i, res.Errors[i].Index, idx)
		}
	}
	if res.Created != 3 {
		t.Errorf("Created = %d, want 3", res.Created)
	}
}

func TestRun_AllInvalidIsFailure(t *testing.T) {
	res, _ := engineWith(schema.Escuelas, plainSink{newMemSink()}).Run(context.Background(), schema.Escuelas,
		batch(t, `[{"nombre":"X","ubicacion":[],"type":"publica"}]`))
	if res.Status() != Failure || res.HTTPStatus() != http.StatusBadRequest {
		t.Fatalf("status = %v", res.Status())
	}
	if res.Errors[0].Index != 0 || !strings.Contains(res.Errors[0].Error, "ubicacion") {
		t.Errorf("errors = %+v", res.Errors)
	}
	body := res.Body()
	if _, ok := body["created"]; ok {
		t.Error("failure body should not carry created")
	}
	if body["failed"] != 1 {
		t.Errorf("failed = %v", body["failed"])
	}
}

func TestRun_EmptyBatchIsSuccess(t *testing.T) {
	res, err := engineWith(schema.Mapas, plainSink{newMemSink()}).Run(context.Background(), schema.Mapas, batch(t, `[]`))
	if err != nil {
		t.Fatal(err)
	}
	if res.Status() != Success || res.Created != 0 {
		t.Errorf("got %+v", res)
	}
	if ids, ok := res.Body()["ids"].([]string); !ok || ids == nil {
		t.Errorf("ids should be an empty list, got %#v", res.Body()["ids"])
	}
}

func TestRun_NaturalKeyUpsertIsIdempotent(t *testing.T) {
	sink := newMemSink()
	e := engineWith(schema.Carreras, sink)
	in := `[{"nombre":"Medicina","descripcion":"d1"},{"nombre":"Derecho","descripcion":"d2"}]`

	first, _ := e.Run(context.Background(), schema.Carreras, batch(t, in))
	if first.Created != 2 || first.Updated != 0 {
		t.Fatalf("first = %+v", first)
	}
	stored := len(sink.byID)

	second, _ := e.Run(context.Background(), schema.Carreras, batch(t, in))
	if second.Created != 0 || second.Updated != 2 {
		t.Fatalf("second = %+v", second)
	}
	if len(sink.byID) != stored {
		t.Errorf("stored count changed: %d -> %d", stored, len(sink.byID))
	}
	if second.Status() != Success {
		t.Errorf("unchanged update should still be success, got %v", second.Status())
	}
}

func TestRun_NaturalKeyIsCaseInsensitive(t *testing.T) {
	sink := newMemSink()
	e := engineWith(schema.Usuarios, sink)
	res, _ := e.Run(context.Background(), schema.Usuarios, batch(t, `[
		{"first_name":"Ana","last_name":"R","email":"ana@example.mx"},
		{"first_name":"Ana María","last_name":"R","email":"  ANA@Example.MX "}
	]`))
	if res.Created != 1 || res.Updated != 1 {
		t.Fatalf("got %+v", res)
	}
	if sink.patches != 1 {
		t.Errorf("patches = %d", sink.patches)
	}
}

func TestRun_UnkeyedKindsDuplicate(t *testing.T) {
	sink := newMemSink()
	e := engineWith(schema.Voluntariados, plainSink{sink})
	in := `[{"carrera":"Derecho","titulo":"Asesoría","descripcion":"d"}]`
	_, _ = e.Run(context.Background(), schema.Voluntariados, batch(t, in))
	_, _ = e.Run(context.Background(), schema.Voluntariados, batch(t, in))
	if len(sink.byID) != 2 {
		t.Errorf("stored = %d, want 2 (no natural key)", len(sink.byID))
	}
}

func TestRun_StorageFailureIsPerItem(t *testing.T) {
	sink := newMemSink()
	sink.failAt[2] = errors.New("connection reset")
	e := engineWith(schema.Mapas, plainSink{sink})

	res, _ := e.Run(context.Background(), schema.Mapas, batch(t, `[
		{"nombre":"a","descripcion":"d","carrera":"c"},
		{"nombre":"b","descripcion":"d","carrera":"c"},
		{"nombre":"c","descripcion":"d","carrera":"c"}
	]`))
	if res.Created != 2 || res.Failed != 1 {
		t.Fatalf("got %+v", res)
	}
	if res.Errors[0].Index != 1 || !strings.HasPrefix(res.Errors[0].Error, "StorageFailure") {
		t.Errorf("errors = %+v", res.Errors)
	}
	if !strings.Contains(res.Errors[0].Error, "connection reset") {
		t.Errorf("storage message lost: %q", res.Errors[0].Error)
	}
}

type brokenLookup struct{ *memSink }

func (brokenLookup) FindByKey(context.Context, string) (string, bool, error) {
	return "", false, errors.New("timeout")
}

func TestRun_LookupFailureIsPerItem(t *testing.T) {
	e := engineWith(schema.Carreras, brokenLookup{newMemSink()})
	res, _ := e.Run(context.Background(), schema.Carreras, batch(t, `[{"nombre":"a","descripcion":"d"}]`))
	if res.Failed != 1 || !strings.Contains(res.Errors[0].Error, "lookup") {
		t.Errorf("got %+v", res)
	}
}

func TestRun_MaxItems(t *testing.T) {
	e := engineWith(schema.Mapas, plainSink{newMemSink()})
	e.MaxItems = 1
	_, err := e.Run(context.Background(), schema.Mapas, batch(t, `[{},{}]`))
	if !errors.Is(err, ErrTooManyItems) {
		t.Errorf("err = %v, want ErrTooManyItems", err)
	}
}

func TestRun_NoSink(t *testing.T) {
	e := NewEngine(map[schema.Kind]Sink{}, nil)
	_, err := e.Run(context.Background(), schema.Carreras, nil)
	if !errors.Is(err, ErrNoSink) {
		t.Errorf("err = %v, want ErrNoSink", err)
	}
}

func TestRun_DiscardSink(t *testing.T) {
	e := engineWith(schema.Mapas, Discard{})
	res, _ := e.Run(context.Background(), schema.Mapas, batch(t, `[{"nombre":"a","descripcion":"d","carrera":"c"},{"nombre":"b"}]`))
	if res.Created != 1 || res.Failed != 1 || len(res.IDs) != 0 {
		t.Errorf("got %+v", res)
	}
}

func TestDecodeBatch(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
		n    int
	}{
		{"array", `[{"a":1},{"b":2}]`, nil, 2},
		{"empty array", `[]`, nil, 0},
		{"object", `{"nombre":"x"}`, ErrNotArray, 0},
		{"string", `"x"`, ErrNotArray, 0},
		{"empty body", ``, ErrNotArray, 0},
		{"garbage", `[{"a":`, ErrMalformedJSON, 0},
		{"trailing", `[] []`, ErrMalformedJSON, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := DecodeBatch(strings.NewReader(tt.body))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if len(items) != tt.n {
				t.Errorf("len = %d, want %d", len(items), tt.n)
			}
		})
	}
}
