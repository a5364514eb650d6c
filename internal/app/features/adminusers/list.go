package adminusers

import (
	"context"
	"net/http"

	userstore "github.com/vantagesoft/vantagehub/internal/app/store/users"
	"github.com/vantagesoft/vantagehub/internal/app/system/authz"
	"github.com/vantagesoft/vantagehub/internal/app/system/httpjson"
	"github.com/vantagesoft/vantagehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleList returns every user as a JSON array sorted by name.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	if !authz.Can(r, authz.CapUsersView) {
		httpjson.Forbidden(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := userstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("list users failed", zap.Error(err))
		httpjson.ServerError(w, "Failed to load users")
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toResponse(u))
	}

	httpjson.OK(w, resp)
}
