package activity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	activitystore "github.com/vantagesoft/vantagehub/internal/app/store/activity"
	userstore "github.com/vantagesoft/vantagehub/internal/app/store/users"
	"github.com/vantagesoft/vantagehub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := NewHandler(userstore.New(db), activitystore.New(db), zap.NewNop())
	return h, testutil.NewFixtures(t, db)
}

func TestHandleUserActivitiesReturnsEvents(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Tracked User", "tracked@example.com", "user")

	if err := h.Events.RecordLogin(ctx, user.ID, "sess-1"); err != nil {
		t.Fatalf("record login: %v", err)
	}
	if err := h.Events.RecordAPICall(ctx, user.ID, "sess-1", "GET", "/api/admin/users"); err != nil {
		t.Fatalf("record api call: %v", err)
	}

	r := testutil.NewRequest(http.MethodGet, "/"+user.ID.Hex()+"/activities")
	r = testutil.WithUser(r, testutil.AdminUser())
	r = testutil.WithChiURLParam(r, "id", user.ID.Hex())
	w := httptest.NewRecorder()

	h.HandleUserActivities(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var events []eventResponse
	if err := json.NewDecoder(w.Body).Decode(&events); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	// Newest first.
	if events[0].EventType != activitystore.EventAPICall {
		t.Errorf("events[0].EventType = %q, want %q", events[0].EventType, activitystore.EventAPICall)
	}
	if events[1].EventType != activitystore.EventLogin {
		t.Errorf("events[1].EventType = %q, want %q", events[1].EventType, activitystore.EventLogin)
	}
	if events[0].Path != "/api/admin/users" {
		t.Errorf("events[0].Path = %q", events[0].Path)
	}
	if events[0].SessionID != "sess-1" {
		t.Errorf("events[0].SessionID = %q", events[0].SessionID)
	}
}

func TestHandleUserActivitiesRequiresAdmin(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Tracked User", "tracked@example.com", "user")

	r := testutil.NewRequest(http.MethodGet, "/"+user.ID.Hex()+"/activities")
	r = testutil.WithUser(r, testutil.BusinessDeveloperUser())
	r = testutil.WithChiURLParam(r, "id", user.ID.Hex())
	w := httptest.NewRecorder()

	h.HandleUserActivities(w, r)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestHandleUserActivitiesUnknownUser(t *testing.T) {
	h, _ := newTestHandler(t)

	r := testutil.NewRequest(http.MethodGet, "/aaaaaaaaaaaaaaaaaaaaaaaa/activities")
	r = testutil.WithUser(r, testutil.AdminUser())
	r = testutil.WithChiURLParam(r, "id", "aaaaaaaaaaaaaaaaaaaaaaaa")
	w := httptest.NewRecorder()

	h.HandleUserActivities(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestHandleUserActivitiesInvalidID(t *testing.T) {
	h, _ := newTestHandler(t)

	r := testutil.NewRequest(http.MethodGet, "/not-an-id/activities")
	r = testutil.WithUser(r, testutil.AdminUser())
	r = testutil.WithChiURLParam(r, "id", "not-an-id")
	w := httptest.NewRecorder()

	h.HandleUserActivities(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestHandleUserActivitiesFiltersBySession(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Tracked User", "tracked@example.com", "user")
	other := fx.CreateUser(ctx, "Other User", "other@example.com", "user")

	if err := h.Events.RecordLogin(ctx, user.ID, "sess-1"); err != nil {
		t.Fatalf("record login: %v", err)
	}
	if err := h.Events.RecordLogout(ctx, user.ID, "sess-1"); err != nil {
		t.Fatalf("record logout: %v", err)
	}
	if err := h.Events.RecordLogin(ctx, user.ID, "sess-2"); err != nil {
		t.Fatalf("record login: %v", err)
	}
	if err := h.Events.RecordLogin(ctx, other.ID, "sess-3"); err != nil {
		t.Fatalf("record login: %v", err)
	}

	r := testutil.NewRequest(http.MethodGet, "/"+user.ID.Hex()+"/activities?session=sess-1")
	r = testutil.WithUser(r, testutil.AdminUser())
	r = testutil.WithChiURLParam(r, "id", user.ID.Hex())
	w := httptest.NewRecorder()

	h.HandleUserActivities(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var events []eventResponse
	if err := json.NewDecoder(w.Body).Decode(&events); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	// Session view is chronological.
	if events[0].EventType != activitystore.EventLogin || events[1].EventType != activitystore.EventLogout {
		t.Errorf("got %q, %q; want login then logout", events[0].EventType, events[1].EventType)
	}
	for _, e := range events {
		if e.SessionID != "sess-1" {
			t.Errorf("event session = %q, want sess-1", e.SessionID)
		}
	}
}

func TestHandleUserActivitiesRespectsLimit(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "Busy User", "busy@example.com", "user")
	for i := 0; i < 5; i++ {
		if err := h.Events.RecordAPICall(ctx, user.ID, "sess-1", "GET", "/api/admin/users"); err != nil {
			t.Fatalf("record api call: %v", err)
		}
	}

	r := testutil.NewRequest(http.MethodGet, "/"+user.ID.Hex()+"/activities?limit=3")
	r = testutil.WithUser(r, testutil.AdminUser())
	r = testutil.WithChiURLParam(r, "id", user.ID.Hex())
	w := httptest.NewRecorder()

	h.HandleUserActivities(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var events []eventResponse
	if err := json.NewDecoder(w.Body).Decode(&events); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
}
