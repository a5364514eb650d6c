package authgoogle

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the Google OAuth flow (typically at "/auth/google").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeLogin)
	r.Get("/callback", h.ServeCallback)

	return r
}
