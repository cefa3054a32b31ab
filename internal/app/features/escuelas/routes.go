// internal/app/features/escuelas/routes.go
package escuelas

import "github.com/go-chi/chi/v5"

// Routes is mounted under /api/escuelas.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeByCarrera)
	return r
}
