// internal/app/features/formularios/routes.go
package formularios

import "github.com/go-chi/chi/v5"

// Routes is mounted under /api/formulario.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeBySubarea)
	return r
}
