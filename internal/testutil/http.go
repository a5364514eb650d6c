package testutil

import (
	"net/http"
	"net/http/httptest"

	"github.com/vantagesoft/vantagehub/internal/app/system/auth"
	"github.com/vantagesoft/vantagehub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestUser represents user data for testing HTTP handlers.
type TestUser struct {
	ID           string
	Name         string
	Email        string
	Role         string
	Capabilities []string
}

// AdminUser returns a TestUser with admin role and the admin's default
// capabilities.
func AdminUser() TestUser {
	return TestUser{
		ID:           primitive.NewObjectID().Hex(),
		Name:         "Test Admin",
		Email:        "admin@test.com",
		Role:         "admin",
		Capabilities: authz.EffectiveCapabilities("admin", nil),
	}
}

// BusinessDeveloperUser returns a TestUser with business_developer role.
func BusinessDeveloperUser() TestUser {
	return TestUser{
		ID:           primitive.NewObjectID().Hex(),
		Name:         "Test Business Developer",
		Email:        "bizdev@test.com",
		Role:         "business_developer",
		Capabilities: authz.EffectiveCapabilities("business_developer", nil),
	}
}

// RegularUser returns a TestUser with the plain user role, which
// carries no admin capabilities.
func RegularUser() TestUser {
	return TestUser{
		ID:           primitive.NewObjectID().Hex(),
		Name:         "Test User",
		Email:        "user@test.com",
		Role:         "user",
		Capabilities: authz.EffectiveCapabilities("user", nil),
	}
}

// WithUser adds a user to the request context for testing authenticated handlers.
// This bypasses the session middleware and injects the user directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	sessionUser := &auth.SessionUser{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		Capabilities: user.Capabilities,
	}
	return auth.WithTestUser(r, sessionUser)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}
