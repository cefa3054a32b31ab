// Package bulk runs batches of raw records through validation and into
// per-kind sinks, collecting a per-item outcome.
//
// A batch is a fold over its items in input order. An item that fails
// validation or storage is recorded with its index and the batch moves on;
// nothing that happens to one item aborts its siblings. Items commit one at
// a time and earlier writes are never rolled back.
package bulk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/vocaguia/internal/app/system/records"
	"github.com/dalemusser/vocaguia/internal/app/system/schema"
	"github.com/dalemusser/vocaguia/internal/app/system/timeouts"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNotArray is returned when the batch body is not a JSON array.
	ErrNotArray = errors.New("expected a JSON array")
	// ErrMalformedJSON is returned when the body does not parse at all.
	ErrMalformedJSON = errors.New("malformed JSON body")
	// ErrTooManyItems is returned when a batch exceeds Engine.MaxItems.
	ErrTooManyItems = errors.New("batch exceeds the maximum number of items")
	// ErrNoSink is returned when no sink is registered for a kind.
	ErrNoSink = errors.New("no sink registered for kind")
)

// Sink stores new records of one kind and returns the generated id.
type Sink interface {
	Insert(ctx context.Context, rec records.Record) (string, error)
}

// KeyedSink is a Sink for kinds with a natural key. Patch overwrites only
// the fields that are present and non-empty in rec.
type KeyedSink interface {
	Sink
	FindByKey(ctx context.Context, key string) (id string, found bool, err error)
	Patch(ctx context.Context, id string, rec records.Record) error
}

// StorageError wraps a persistence failure for one item.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("StorageFailure: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ItemError reports why the item at Index was not stored.
type ItemError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// Status is the overall outcome of a batch.
type Status int

const (
	Success Status = iota // no item failed (includes the empty batch)
	Partial               // some items stored, some failed
	Failure               // every item failed
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Partial:
		return "partial"
	}
	return "failure"
}

// Result summarizes one batch.
type Result struct {
	BatchID string
	Kind    schema.Kind
	Created int
	IDs     []string
	Updated int
	Failed  int
	Errors  []ItemError
}

// Status derives the batch outcome from the counts.
func (r Result) Status() Status {
	switch {
	case r.Failed == 0:
		return Success
	case r.Created+r.Updated > 0:
		return Partial
	default:
		return Failure
	}
}

// HTTPStatus maps the outcome to a response code.
func (r Result) HTTPStatus() int {
	switch r.Status() {
	case Success:
		return http.StatusCreated
	case Partial:
		return http.StatusMultiStatus
	}
	return http.StatusBadRequest
}

// Body is the JSON response for the batch. Failure bodies carry only the
// failure count and errors; the others always carry created, updated and ids.
func (r Result) Body() map[string]any {
	ids := r.IDs
	if ids == nil {
		ids = []string{}
	}
	body := map[string]any{"batch_id": r.BatchID}
	switch r.Status() {
	case Failure:
		body["failed"] = r.Failed
		body["errors"] = r.Errors
	case Partial:
		body["created"] = r.Created
		body["updated"] = r.Updated
		body["ids"] = ids
		body["failed"] = r.Failed
		body["errors"] = r.Errors
	default:
		body["created"] = r.Created
		body["updated"] = r.Updated
		body["ids"] = ids
	}
	return body
}

// Engine runs batches against a fixed set of sinks.
type Engine struct {
	sinks map[schema.Kind]Sink
	log   *zap.Logger

	// MaxItems caps the batch size; zero means no cap.
	MaxItems int
}

// NewEngine builds an Engine over sinks.
func NewEngine(sinks map[schema.Kind]Sink, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{sinks: sinks, log: logger}
}

// Sink returns the sink registered for kind.
func (e *Engine) Sink(kind schema.Kind) (Sink, bool) {
	s, ok := e.sinks[kind]
	return s, ok
}

// Run processes items sequentially. The returned error is reserved for
// whole-request problems (unknown kind, oversized batch); per-item problems
// only ever appear in Result.Errors.
func (e *Engine) Run(ctx context.Context, kind schema.Kind, items []any) (Result, error) {
	sc, ok := schema.For(kind)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrNoSink, kind)
	}
	sink, ok := e.sinks[kind]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrNoSink, kind)
	}
	if e.MaxItems > 0 && len(items) > e.MaxItems {
		return Result{}, fmt.Errorf("%w (%d > %d)", ErrTooManyItems, len(items), e.MaxItems)
	}

	keyed, _ := sink.(KeyedSink)
	if !sc.Keyed() {
		keyed = nil
	}

	res := Result{
		BatchID: uuid.NewString(),
		Kind:    kind,
		IDs:     []string{},
		Errors:  []ItemError{},
	}
	start := time.Now()

	fail := func(i int, err error) {
		res.Failed++
		res.Errors = append(res.Errors, ItemError{Index: i, Error: err.Error()})
		e.log.Debug("bulk item rejected",
			zap.String("batch_id", res.BatchID),
			zap.String("kind", string(kind)),
			zap.Int("index", i),
			zap.Error(err))
	}

	for i, raw := range items {
		rec, err := records.Decode(kind, raw)
		if err != nil {
			fail(i, err)
			continue
		}

		if keyed != nil {
			id, found, err := e.findByKey(ctx, keyed, rec.NaturalKey())
			if err != nil {
				fail(i, &StorageError{Op: "lookup", Err: err})
				continue
			}
			if found {
				if err := e.patch(ctx, keyed, id, rec); err != nil {
					fail(i, &StorageError{Op: "update", Err: err})
					continue
				}
				res.Updated++
				continue
			}
		}

		id, err := e.insert(ctx, sink, rec)
		if err != nil {
			fail(i, &StorageError{Op: "insert", Err: err})
			continue
		}
		res.Created++
		if id != "" {
			res.IDs = append(res.IDs, id)
		}
	}

	e.log.Info("bulk batch processed",
		zap.String("batch_id", res.BatchID),
		zap.String("kind", string(kind)),
		zap.Int("items", len(items)),
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated),
		zap.Int("failed", res.Failed),
		zap.String("status", res.Status().String()),
		zap.Duration("took", time.Since(start)))

	return res, nil
}

func (e *Engine) findByKey(ctx context.Context, s KeyedSink, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()
	return s.FindByKey(ctx, key)
}

func (e *Engine) patch(ctx context.Context, s KeyedSink, id string, rec records.Record) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()
	return s.Patch(ctx, id, rec)
}

func (e *Engine) insert(ctx context.Context, s Sink, rec records.Record) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()
	return s.Insert(ctx, rec)
}

// Discard is a Sink that stores nothing. It backs validation-only runs.
type Discard struct{}

func (Discard) Insert(context.Context, records.Record) (string, error) { return "", nil }
