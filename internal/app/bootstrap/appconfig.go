// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings like ports, TLS, and logging; AppConfig is
// everything specific to VantageHub.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: vantagehub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Audit logging routing per category: "all" (db+log), "db", "log", or "off"
	AuditLogAuth  string
	AuditLogAdmin string

	// Google OAuth configuration. Google sign-in is disabled when the
	// client ID or secret is blank.
	GoogleClientID     string
	GoogleClientSecret string

	// Base URL for OAuth callbacks (e.g., "https://hub.vantagesoft.com")
	BaseURL string

	// Bootstrap admin: created on startup when the users collection is
	// empty, so a fresh deployment has a way in.
	BootstrapAdminEmail    string
	BootstrapAdminName     string
	BootstrapAdminPassword string
}
