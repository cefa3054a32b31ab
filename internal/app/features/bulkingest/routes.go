// internal/app/features/bulkingest/routes.go
package bulkingest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes is mounted under /api/bulk. limit wraps every batch endpoint; pass
// nil to leave them unthrottled.
func Routes(h *Handler, limit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	if limit != nil {
		r.Use(limit)
	}
	r.Post("/{kind}", h.ServeBatch)
	return r
}
