package activity

import (
	"context"
	"net/http"

	activitystore "github.com/vantagesoft/vantagehub/internal/app/store/activity"
	"github.com/vantagesoft/vantagehub/internal/app/system/auth"
	"github.com/vantagesoft/vantagehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// RecordAPICalls records an api_call event for every signed-in request
// passing through it. Recording is best effort: a write failure is
// logged and never affects the response.
func RecordAPICalls(events *activitystore.Store, sm *auth.SessionManager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)

			u, ok := auth.CurrentUser(r)
			if !ok {
				return
			}
			uid, err := primitive.ObjectIDFromHex(u.ID)
			if err != nil {
				return
			}

			// Detached from the request context so a client disconnect
			// does not lose the event.
			ctx, cancel := context.WithTimeout(context.Background(), timeouts.Short())
			defer cancel()

			if err := events.RecordAPICall(ctx, uid, sm.SessionID(r), r.Method, r.URL.Path); err != nil {
				logger.Warn("record api call failed", zap.Error(err))
			}
		})
	}
}
