// internal/app/features/curriculum/routes.go
package curriculum

import "github.com/go-chi/chi/v5"

// Routes is mounted under /api/mapa-curricular.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ServeCreate)
	return r
}
