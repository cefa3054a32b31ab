// internal/app/features/subareas/routes.go
package subareas

import "github.com/go-chi/chi/v5"

// Routes is mounted under /api/subareas.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeNames)
	r.Get("/detalle", h.ServeDetalle)
	return r
}

// SingleRoutes is mounted under /api/subarea.
func SingleRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeOne)
	return r
}
