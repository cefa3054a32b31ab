// internal/app/features/discovery/routes.go
package discovery

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes is mounted under /api/discovery. limit, when non-nil, throttles
// calls since each one spends Places quota.
func Routes(h *Handler, limit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	if limit != nil {
		r.Use(limit)
	}
	r.Post("/universidades", h.ServeUniversidades)
	return r
}
