// Package authapi is the session provider surface: login, logout,
// current-session read, and explicit session refresh.
package authapi

import (
	"github.com/vantagesoft/vantagehub/internal/app/store/activity"
	"github.com/vantagesoft/vantagehub/internal/app/system/auditlog"
	"github.com/vantagesoft/vantagehub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	AuditLog *auditlog.Logger
	Activity *activity.Store
	Sessions *auth.SessionManager
}

// NewHandler constructs the auth API handler.
func NewHandler(db *mongo.Database, sm *auth.SessionManager, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		AuditLog: audit,
		Activity: activity.New(db),
		Sessions: sm,
	}
}
