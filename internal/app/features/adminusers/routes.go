package adminusers

import (
	"github.com/go-chi/chi/v5"
)

// Register attaches the user administration routes to r. Bootstrap
// mounts r under /api/admin/users with the signed-in middleware already
// applied; capability checks live in the handlers.
func Register(r chi.Router, h *Handler) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	r.Get("/{id}/actions", h.HandleActions)
}
