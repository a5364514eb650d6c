package testutil

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vantagesoft/vantagehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// presetHash is bcrypt("testpassword"). Fixture users share it so each
// test does not pay for a fresh hash.
var presetHash = mustHash("testpassword")

func mustHash(password string) []byte {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return h
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates an active test user with the given name, email,
// and role. The password for every fixture user is "testpassword".
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     fullName,
		Email:        strings.ToLower(email),
		Role:         role,
		IsActive:     true,
		AuthMethod:   "password",
		PasswordHash: presetHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateAdmin creates an active admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleAdmin)
}

// CreateBusinessDeveloper creates an active business developer user.
func (f *Fixtures) CreateBusinessDeveloper(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleBusinessDeveloper)
}

// CreateInactiveUser creates a deactivated user with the given role.
func (f *Fixtures) CreateInactiveUser(ctx context.Context, fullName, email, role string) models.User {
	f.t.Helper()

	user := f.CreateUser(ctx, fullName, email, role)
	user.IsActive = false

	_, err := f.db.Collection("users").UpdateByID(ctx, user.ID,
		bson.M{"$set": bson.M{"is_active": false}})
	if err != nil {
		f.t.Fatalf("failed to deactivate test user: %v", err)
	}

	return user
}

// CreateUserWithOverrides creates an active user carrying extra
// capability grants beyond the role defaults.
func (f *Fixtures) CreateUserWithOverrides(ctx context.Context, fullName, email, role string, caps []string) models.User {
	f.t.Helper()

	user := f.CreateUser(ctx, fullName, email, role)
	user.Permissions = &models.PermissionOverrides{Capabilities: caps}

	_, err := f.db.Collection("users").UpdateByID(ctx, user.ID,
		bson.M{"$set": bson.M{"permissions": user.Permissions}})
	if err != nil {
		f.t.Fatalf("failed to set test user permissions: %v", err)
	}

	return user
}
