package activity

import (
	"github.com/go-chi/chi/v5"
)

// Register attaches the activity endpoints to r. Bootstrap mounts r
// under /api/admin/users, so the full path is
// /api/admin/users/{id}/activities.
func Register(r chi.Router, h *Handler) {
	r.Get("/{id}/activities", h.HandleUserActivities)
}
