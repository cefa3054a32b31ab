// internal/app/features/carreras/routes.go
package carreras

import "github.com/go-chi/chi/v5"

// Routes is mounted under /api/carreras.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeByArea)
	r.Get("/mapa-curricular", h.ServeCurriculum)
	r.Get("/mapa-curricular/descripcion", h.ServeCourse)
	return r
}
