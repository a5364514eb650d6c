package adminusers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	userstore "github.com/vantagesoft/vantagehub/internal/app/store/users"
	"github.com/vantagesoft/vantagehub/internal/app/system/auth"
	"github.com/vantagesoft/vantagehub/internal/app/system/authz"
	"github.com/vantagesoft/vantagehub/internal/app/system/httpjson"
	"github.com/vantagesoft/vantagehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type actionsResponse struct {
	Actions []string `json:"actions"`
}

// HandleActions returns the ordered row actions the signed-in user may
// take on the given user, computed from the actor's capabilities. The
// list omits "delete" for the actor's own row and "activities" for
// non-admins.
func (h *Handler) HandleActions(w http.ResponseWriter, r *http.Request) {
	if !authz.Can(r, authz.CapUsersView) {
		httpjson.Forbidden(w)
		return
	}

	actor, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	uid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "Invalid user ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := userstore.New(h.DB).GetByID(ctx, uid); err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.NotFound(w, "User not found")
			return
		}
		h.Log.Error("load user failed", zap.Error(err))
		httpjson.ServerError(w, "Failed to load user")
		return
	}

	actions := authz.RowActions(actor, uid.Hex())
	if actions == nil {
		actions = []string{}
	}

	httpjson.OK(w, actionsResponse{Actions: actions})
}
