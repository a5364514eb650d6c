package activity_test

import (
	"testing"
	"time"

	"github.com/vantagesoft/vantagehub/internal/app/store/activity"
	"github.com/vantagesoft/vantagehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_RecordAndGetByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := activity.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	sessionID := activity.NewSessionID()

	if err := store.RecordLogin(ctx, userID, sessionID); err != nil {
		t.Fatalf("RecordLogin failed: %v", err)
	}
	if err := store.RecordAPICall(ctx, userID, sessionID, "GET", "/api/admin/users"); err != nil {
		t.Fatalf("RecordAPICall failed: %v", err)
	}
	if err := store.RecordLogout(ctx, userID, sessionID); err != nil {
		t.Fatalf("RecordLogout failed: %v", err)
	}

	events, err := store.GetByUser(ctx, userID, 50)
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for _, e := range events {
		if e.Timestamp.IsZero() {
			t.Error("expected timestamp to be set")
		}
		if e.SessionID != sessionID {
			t.Errorf("expected session %q, got %q", sessionID, e.SessionID)
		}
	}
}

func TestStore_GetByUser_Limit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := activity.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	sessionID := activity.NewSessionID()

	for i := 0; i < 5; i++ {
		event := activity.Event{
			UserID:    userID,
			SessionID: sessionID,
			EventType: activity.EventAPICall,
			Timestamp: time.Now().UTC().Add(time.Duration(i) * time.Second),
		}
		if err := store.Create(ctx, event); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	events, err := store.GetByUser(ctx, userID, 2)
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Timestamp.Before(events[1].Timestamp) {
		t.Error("expected newest events first")
	}
}

func TestStore_RecordAdminAction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := activity.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	details := map[string]any{"action": "user_created", "target": "jane@example.com"}

	if err := store.RecordAdminAction(ctx, userID, activity.NewSessionID(), details); err != nil {
		t.Fatalf("RecordAdminAction failed: %v", err)
	}

	events, err := store.GetByUser(ctx, userID, 10)
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].EventType != activity.EventAdminAction {
		t.Errorf("expected event type %q, got %q", activity.EventAdminAction, events[0].EventType)
	}
	if events[0].Details["action"] != "user_created" {
		t.Errorf("expected action detail, got %+v", events[0].Details)
	}
}

func TestStore_DeleteByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := activity.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	other := primitive.NewObjectID()
	sessionID := activity.NewSessionID()

	_ = store.RecordLogin(ctx, userID, sessionID)
	_ = store.RecordLogout(ctx, userID, sessionID)
	_ = store.RecordLogin(ctx, other, activity.NewSessionID())

	deleted, err := store.DeleteByUser(ctx, userID)
	if err != nil {
		t.Fatalf("DeleteByUser failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deleted, got %d", deleted)
	}

	remaining, err := store.GetByUser(ctx, other, 10)
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if len(remaining) != 1 {
		t.Errorf("expected other user's event to survive, got %d", len(remaining))
	}
}
