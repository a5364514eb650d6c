// Package activity exposes the per-user activity log backing the
// admin panel's "View Activities" navigation.
package activity

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	activitystore "github.com/vantagesoft/vantagehub/internal/app/store/activity"
	userstore "github.com/vantagesoft/vantagehub/internal/app/store/users"
	"github.com/vantagesoft/vantagehub/internal/app/system/authz"
	"github.com/vantagesoft/vantagehub/internal/app/system/httpjson"
	"github.com/vantagesoft/vantagehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const defaultLimit = 100

type Handler struct {
	DB     *userstore.Store
	Events *activitystore.Store
	Log    *zap.Logger
}

// NewHandler constructs the activity API handler.
func NewHandler(users *userstore.Store, events *activitystore.Store, logger *zap.Logger) *Handler {
	return &Handler{DB: users, Events: events, Log: logger}
}

type eventResponse struct {
	ID        string         `json:"id"`
	SessionID string         `json:"sessionId,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	EventType string         `json:"eventType"`
	Path      string         `json:"path,omitempty"`
	Method    string         `json:"method,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// HandleUserActivities returns a user's recent activity events, newest
// first. A `session` query parameter narrows the result to one sign-in
// session, in time order. Admin only: the activities capability is
// admin-scoped.
func (h *Handler) HandleUserActivities(w http.ResponseWriter, r *http.Request) {
	if !authz.IsAdmin(r) || !authz.Can(r, authz.CapActivitiesView) {
		httpjson.Forbidden(w)
		return
	}

	uid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "Invalid user ID")
		return
	}

	limit := int64(defaultLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.DB.GetByID(ctx, uid); err != nil {
		httpjson.NotFound(w, "User not found")
		return
	}

	var events []activitystore.Event
	if sid := r.URL.Query().Get("session"); sid != "" {
		all, err := h.Events.GetBySession(ctx, sid)
		if err != nil {
			h.Log.Error("load session activities failed", zap.Error(err))
			httpjson.ServerError(w, "Failed to load activities")
			return
		}
		// Sessions belong to one user, but the path scopes the result.
		for _, e := range all {
			if e.UserID == uid {
				events = append(events, e)
			}
		}
	} else {
		var err error
		events, err = h.Events.GetByUser(ctx, uid, limit)
		if err != nil {
			h.Log.Error("load activities failed", zap.Error(err))
			httpjson.ServerError(w, "Failed to load activities")
			return
		}
	}

	resp := make([]eventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, eventResponse{
			ID:        e.ID.Hex(),
			SessionID: e.SessionID,
			Timestamp: e.Timestamp,
			EventType: e.EventType,
			Path:      e.Path,
			Method:    e.Method,
			Details:   e.Details,
		})
	}

	httpjson.OK(w, resp)
}
