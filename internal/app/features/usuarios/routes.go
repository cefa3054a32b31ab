// internal/app/features/usuarios/routes.go
package usuarios

import (
	"github.com/dalemusser/vocaguia/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes is mounted under /api/usuarios.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/registro", h.ServeRegistro)
	r.With(auth.RequireSignedIn).Get("/me", h.ServeMe)
	return r
}
