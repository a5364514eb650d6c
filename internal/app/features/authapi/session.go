package authapi

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/vantagesoft/vantagehub/internal/app/store/users"
	"github.com/vantagesoft/vantagehub/internal/app/system/auth"
	"github.com/vantagesoft/vantagehub/internal/app/system/authz"
	"github.com/vantagesoft/vantagehub/internal/app/system/httpjson"
	"github.com/vantagesoft/vantagehub/internal/app/system/timeouts"
	"github.com/vantagesoft/vantagehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// sessionResponse is the wire shape of the signed-in user's claims.
type sessionResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Capabilities []string `json:"capabilities"`
}

func effectiveCaps(u *models.User) []string {
	caps := authz.EffectiveCapabilities(u.Role, u.Permissions)
	if caps == nil {
		caps = []string{}
	}
	return caps
}

// HandleSession returns the current session claims. Claims are already
// fresh because the middleware re-reads the user on every request.
func (h *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	caps := u.Capabilities
	if caps == nil {
		caps = []string{}
	}

	httpjson.OK(w, sessionResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Capabilities: caps,
	})
}

// HandleSessionRefresh re-reads the session user from the store and
// returns the updated claims. Kept for client parity: callers that
// refresh cached claims after a self-edit hit this endpoint.
func (h *Handler) HandleSessionRefresh(w http.ResponseWriter, r *http.Request) {
	id, ok := h.Sessions.SessionUserID(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		httpjson.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := userstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.Unauthorized(w)
			return
		}
		h.Log.Error("session refresh lookup failed", zap.Error(err))
		httpjson.ServerError(w, "Session refresh failed")
		return
	}
	if !u.IsActive {
		httpjson.Unauthorized(w)
		return
	}

	h.AuditLog.SessionRefreshed(ctx, r, u.ID)

	httpjson.OK(w, sessionResponse{
		ID:           u.ID.Hex(),
		Name:         u.FullName,
		Email:        u.Email,
		Role:         u.Role,
		Capabilities: effectiveCaps(u),
	})
}
