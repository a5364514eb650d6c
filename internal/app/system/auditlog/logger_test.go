package auditlog_test

import (
	"net/http/httptest"
	"testing"

	"github.com/vantagesoft/vantagehub/internal/app/store/audit"
	"github.com/vantagesoft/vantagehub/internal/app/system/auditlog"
	"github.com/vantagesoft/vantagehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestLogger_NilLogger(t *testing.T) {
	// nil logger should be a no-op (not panic)
	var logger *auditlog.Logger
	ctx, cancel := testutil.TestContext()
	defer cancel()
	req := httptest.NewRequest("GET", "/", nil)

	logger.Log(ctx, audit.Event{EventType: "test"})
	logger.LoginSuccess(ctx, req, primitive.NewObjectID(), "password", "test@example.com")
	logger.Logout(ctx, req, primitive.NewObjectID().Hex())
}

func TestLogger_Log_ConfigOff(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{
		Auth:  "off",
		Admin: "off",
	})

	userID := primitive.NewObjectID()
	logger.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		UserID:    &userID,
		Success:   true,
	})

	events, err := store.Query(ctx, audit.QueryFilter{UserID: &userID})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(events) != 0 {
		t.Error("expected no events when config is 'off'")
	}
}

func TestLogger_Log_ConfigDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{
		Auth:  "db",
		Admin: "db",
	})

	userID := primitive.NewObjectID()
	logger.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		UserID:    &userID,
		Success:   true,
	})

	events, err := store.Query(ctx, audit.QueryFilter{UserID: &userID})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 event, got %d", len(events))
	}
}

func TestLogger_Log_ConfigLogOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{
		Auth:  "log",
		Admin: "log",
	})

	userID := primitive.NewObjectID()
	logger.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventUserUpdated,
		UserID:    &userID,
		Success:   true,
	})

	events, err := store.Query(ctx, audit.QueryFilter{UserID: &userID})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(events) != 0 {
		t.Error("expected no stored events when config is 'log'")
	}
}

func TestLogger_UserCreated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{
		Auth:  "db",
		Admin: "db",
	})

	actorID := primitive.NewObjectID()
	targetID := primitive.NewObjectID()
	req := httptest.NewRequest("POST", "/api/admin/users", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.4")

	logger.UserCreated(ctx, req, actorID, targetID, "admin", "user", "new@example.com")

	events, err := store.Query(ctx, audit.QueryFilter{UserID: &targetID})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	got := events[0]
	if got.EventType != audit.EventUserCreated {
		t.Errorf("EventType: got %q, want %q", got.EventType, audit.EventUserCreated)
	}
	if got.ActorID == nil || *got.ActorID != actorID {
		t.Error("expected actor id on event")
	}
	if got.IP != "198.51.100.4" {
		t.Errorf("expected forwarded IP, got %q", got.IP)
	}
	if got.Details["email"] != "new@example.com" {
		t.Errorf("expected email detail, got %+v", got.Details)
	}
}
