// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	activityfeature "github.com/vantagesoft/vantagehub/internal/app/features/activity"
	adminusersfeature "github.com/vantagesoft/vantagehub/internal/app/features/adminusers"
	authapifeature "github.com/vantagesoft/vantagehub/internal/app/features/authapi"
	authgooglefeature "github.com/vantagesoft/vantagehub/internal/app/features/authgoogle"
	healthfeature "github.com/vantagesoft/vantagehub/internal/app/features/health"
	activitystore "github.com/vantagesoft/vantagehub/internal/app/store/activity"
	"github.com/vantagesoft/vantagehub/internal/app/store/audit"
	"github.com/vantagesoft/vantagehub/internal/app/store/oauthstate"
	userstore "github.com/vantagesoft/vantagehub/internal/app/store/users"
	"github.com/vantagesoft/vantagehub/internal/app/system/auditlog"
	"github.com/vantagesoft/vantagehub/internal/app/system/auth"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. VantageHub mounts the JSON admin API,
// the auth endpoints, Google sign-in, and the health check.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Fresh user data is fetched on every request, so role changes and
	// deactivations take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db))

	auditLog := auditlog.New(audit.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/healthz", healthfeature.Routes(healthHandler))

	// Session API: login, logout, current session, explicit refresh
	authHandler := authapifeature.NewHandler(db, sessionMgr, auditLog, logger)
	r.Mount("/api/auth", authapifeature.Routes(authHandler))

	// Google sign-in. Redirects to /login with an error when not configured.
	googleHandler := authgooglefeature.NewHandler(
		db, sessionMgr, auditLog, oauthstate.New(db),
		appCfg.GoogleClientID, appCfg.GoogleClientSecret,
		appCfg.BaseURL, appCfg.SessionKey, logger,
	)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	// User administration API. Both features share the subtree so the
	// per-user activities route sits next to the CRUD routes.
	usersHandler := adminusersfeature.NewHandler(db, sessionMgr, auditLog, logger)
	events := activitystore.New(db)
	activityHandler := activityfeature.NewHandler(userstore.New(db), events, logger)
	r.Route("/api/admin/users", func(ur chi.Router) {
		ur.Use(sessionMgr.RequireSignedIn)
		ur.Use(activityfeature.RecordAPICalls(events, sessionMgr, logger))
		adminusersfeature.Register(ur, usersHandler)
		activityfeature.Register(ur, activityHandler)
	})

	return r, nil
}
