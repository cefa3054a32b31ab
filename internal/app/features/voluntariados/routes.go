// internal/app/features/voluntariados/routes.go
package voluntariados

import "github.com/go-chi/chi/v5"

// Routes is mounted under /api/voluntariados.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeByCarrera)
	return r
}
