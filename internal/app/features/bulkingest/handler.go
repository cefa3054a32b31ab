// internal/app/features/bulkingest/handler.go
package bulkingest

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/dalemusser/vocaguia/internal/app/features/errors"
	"github.com/dalemusser/vocaguia/internal/app/system/bulk"
	"github.com/dalemusser/vocaguia/internal/app/system/limits"
	"github.com/dalemusser/vocaguia/internal/app/system/schema"
	"github.com/dalemusser/vocaguia/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Runner processes one batch of raw records.
type Runner interface {
	Run(ctx context.Context, kind schema.Kind, items []any) (bulk.Result, error)
}

type Handler struct {
	Engine Runner
	Log    *zap.Logger
	ErrLog *apierrors.ErrorLogger
}

func NewHandler(engine *bulk.Engine, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Engine: engine, Log: logger, ErrLog: errLog}
}

// ServeBatch handles POST /api/bulk/{kind}.
//
// The body is a JSON array of raw records. Responses:
//
//	201 {"batch_id":"…","created":2,"updated":0,"ids":["…","…"]}
//	207 {"batch_id":"…","created":1,"updated":0,"ids":["…"],"failed":1,"errors":[{"index":1,"error":"MissingField: nombre"}]}
//	400 {"batch_id":"…","failed":2,"errors":[…]}
//	400 {"detail":"expected a JSON array"}
func (h *Handler) ServeBatch(w http.ResponseWriter, r *http.Request) {
	kind, ok := schema.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		apierrors.NotFound(w, "unknown record kind")
		return
	}

	items, err := bulk.DecodeBatch(http.MaxBytesReader(w, r.Body, limits.MaxBulkBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apierrors.Detail(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		apierrors.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	res, err := h.Engine.Run(ctx, kind, items)
	switch {
	case errors.Is(err, bulk.ErrTooManyItems):
		apierrors.Detail(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "bulk run failed", err, "Unable to process batch.")
		return
	}

	apierrors.JSON(w, res.HTTPStatus(), res.Body())
}
