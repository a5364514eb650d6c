package authapi

import (
	"context"
	"net/http"

	"github.com/vantagesoft/vantagehub/internal/app/system/httpjson"
	"github.com/vantagesoft/vantagehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleLogout clears the session. Logging out an anonymous session is
// a no-op success.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	userID, signedIn := h.Sessions.SessionUserID(r)
	sessionID := h.Sessions.SessionID(r)

	if err := h.Sessions.SignOut(w, r); err != nil {
		h.Log.Error("session clear failed", zap.Error(err))
		httpjson.ServerError(w, "Logout failed")
		return
	}

	if signedIn {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		h.AuditLog.Logout(ctx, r, userID)
		if oid, err := primitive.ObjectIDFromHex(userID); err == nil {
			if err := h.Activity.RecordLogout(ctx, oid, sessionID); err != nil {
				h.Log.Warn("record logout activity failed", zap.Error(err))
			}
		}
	}

	httpjson.Message(w, "Signed out")
}
