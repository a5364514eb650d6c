package authapi

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the auth API under the path where this router is
// mounted (typically "/api/auth" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)

	r.Group(func(pr chi.Router) {
		pr.Use(h.Sessions.RequireSignedIn)
		pr.Get("/session", h.HandleSession)
		pr.Post("/session/refresh", h.HandleSessionRefresh)
	})

	return r
}
