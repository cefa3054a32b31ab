// internal/app/features/oauth/routes.go
package oauth

import "github.com/go-chi/chi/v5"

// Routes is mounted under /auth/oauth2. These routes are public.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/start", h.ServeStart)
	r.Get("/callback", h.ServeCallback)
	return r
}
