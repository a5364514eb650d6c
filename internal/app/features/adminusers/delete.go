package adminusers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	userstore "github.com/vantagesoft/vantagehub/internal/app/store/users"
	"github.com/vantagesoft/vantagehub/internal/app/system/authz"
	"github.com/vantagesoft/vantagehub/internal/app/system/httpjson"
	"github.com/vantagesoft/vantagehub/internal/app/system/timeouts"
	"github.com/vantagesoft/vantagehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleDelete removes a user, enforcing safety guards: the actor can
// never delete their own account, and the last active admin cannot be
// deleted.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if !authz.Can(r, authz.CapUsersDelete) {
		httpjson.Forbidden(w)
		return
	}

	actorRole, _, actorID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	uid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "Invalid user ID")
		return
	}

	if actorID == uid {
		httpjson.BadRequest(w, "You cannot delete your own account")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := userstore.New(h.DB)

	target, err := store.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.NotFound(w, "User not found")
			return
		}
		h.Log.Error("load user failed", zap.Error(err))
		httpjson.ServerError(w, "Failed to delete user")
		return
	}

	if target.Role == models.RoleAdmin && target.IsActive {
		admins, err := store.CountActiveAdmins(ctx)
		if err != nil {
			h.Log.Error("count active admins failed", zap.Error(err))
			httpjson.ServerError(w, "Failed to delete user")
			return
		}
		if admins <= 1 {
			httpjson.BadRequest(w, "You cannot remove the last active admin")
			return
		}
	}

	if _, err := store.Delete(ctx, uid); err != nil {
		h.Log.Error("delete user failed", zap.Error(err))
		httpjson.ServerError(w, "Failed to delete user")
		return
	}

	// The user record is gone; their activity trail goes with it.
	if _, err := h.Activity.DeleteByUser(ctx, uid); err != nil {
		h.Log.Warn("purge activity failed", zap.Error(err), zap.String("user_id", uid.Hex()))
	}

	h.AuditLog.UserDeleted(ctx, r, actorID, uid, actorRole, target.Role, target.Email)
	if err := h.Activity.RecordAdminAction(ctx, actorID, h.Sessions.SessionID(r), map[string]any{
		"action": "user_deleted",
		"target": uid.Hex(),
	}); err != nil {
		h.Log.Warn("record admin action failed", zap.Error(err))
	}

	httpjson.Message(w, "User deleted successfully")
}
