package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	userstore "github.com/vantagesoft/vantagehub/internal/app/store/users"
	"github.com/vantagesoft/vantagehub/internal/app/system/httpjson"
	"github.com/vantagesoft/vantagehub/internal/app/system/normalize"
	"github.com/vantagesoft/vantagehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin authenticates with email and password. The response for
// unknown users and wrong passwords is identical so accounts cannot be
// enumerated; the audit trail records the distinction.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}

	email := normalize.Email(payload.Email)
	if email == "" || payload.Password == "" {
		httpjson.BadRequest(w, "Email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := userstore.New(h.DB)
	u, err := store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			h.AuditLog.LoginFailedUserNotFound(ctx, r, email)
			httpjson.Error(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.Log.Error("login lookup failed", zap.Error(err))
		httpjson.ServerError(w, "Login failed")
		return
	}

	if !userstore.VerifyPassword(u, payload.Password) {
		h.AuditLog.LoginFailedWrongPassword(ctx, r, u.ID, email)
		httpjson.Error(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if !u.IsActive {
		h.AuditLog.LoginFailedUserDisabled(ctx, r, u.ID, email)
		httpjson.Error(w, http.StatusForbidden, "Your account has been deactivated")
		return
	}

	sessionID, err := h.Sessions.SignIn(w, r, u.ID.Hex())
	if err != nil {
		h.Log.Error("session save failed", zap.Error(err))
		httpjson.ServerError(w, "Login failed")
		return
	}

	h.AuditLog.LoginSuccess(ctx, r, u.ID, u.AuthMethod, email)
	if err := h.Activity.RecordLogin(ctx, u.ID, sessionID); err != nil {
		h.Log.Warn("record login activity failed", zap.Error(err))
	}

	httpjson.OK(w, sessionResponse{
		ID:           u.ID.Hex(),
		Name:         u.FullName,
		Email:        u.Email,
		Role:         u.Role,
		Capabilities: effectiveCaps(u),
	})
}
