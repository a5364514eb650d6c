// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	userstore "github.com/vantagesoft/vantagehub/internal/app/store/users"
	"github.com/vantagesoft/vantagehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.BootstrapAdminEmail != "" {
		if err := ensureBootstrapAdmin(ctx, deps, appCfg, logger); err != nil {
			return err
		}
	}
	return nil
}

// ensureBootstrapAdmin creates the initial admin account when the users
// collection is empty. A populated collection means the deployment is
// already established and the setting is ignored.
func ensureBootstrapAdmin(ctx context.Context, deps DBDeps, appCfg AppConfig, logger *zap.Logger) error {
	count, err := deps.MongoDatabase.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	store := userstore.New(deps.MongoDatabase)
	created, err := store.Create(ctx, models.User{
		FullName: appCfg.BootstrapAdminName,
		Email:    appCfg.BootstrapAdminEmail,
		Role:     models.RoleAdmin,
		IsActive: true,
	}, appCfg.BootstrapAdminPassword)
	if err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	logger.Info("created bootstrap admin",
		zap.String("email", created.Email),
		zap.String("id", created.ID.Hex()))
	return nil
}
