package authgoogle_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vantagesoft/vantagehub/internal/app/features/authgoogle"
	"github.com/vantagesoft/vantagehub/internal/app/store/audit"
	"github.com/vantagesoft/vantagehub/internal/app/store/oauthstate"
	"github.com/vantagesoft/vantagehub/internal/app/system/auditlog"
	"github.com/vantagesoft/vantagehub/internal/app/system/auth"
	"github.com/vantagesoft/vantagehub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*authgoogle.Handler, *oauthstate.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "vantagehub-test", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}

	auditLog := auditlog.New(audit.New(db), logger, auditlog.Config{Auth: "db", Admin: "db"})
	stateStore := oauthstate.New(db)
	handler := authgoogle.NewHandler(db, sm, auditLog, stateStore,
		"test-client-id", "test-client-secret", "https://hub.example.com",
		"0123456789abcdef0123456789abcdef", logger)
	return handler, stateStore
}

func TestServeLogin_RedirectsToGoogle(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/auth/google?return=/admin/users", nil)
	rec := httptest.NewRecorder()
	handler.ServeLogin(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d", rec.Code)
	}

	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "accounts.google.com") {
		t.Errorf("expected redirect to Google, got %q", loc)
	}
	if !strings.Contains(loc, "state=") {
		t.Error("expected state parameter in redirect")
	}

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "vh_oauth_state" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected signed state cookie")
	}
}

func TestServeLogin_NotConfigured(t *testing.T) {
	handler, _ := newTestHandler(t)
	handler.ClientID = ""
	handler.ClientSecret = ""

	req := httptest.NewRequest("GET", "/auth/google", nil)
	rec := httptest.NewRecorder()
	handler.ServeLogin(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Location"), "google_not_configured") {
		t.Errorf("expected not-configured redirect, got %q", rec.Header().Get("Location"))
	}
}

func TestServeCallback_MissingState(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/auth/google/callback?code=abc", nil)
	rec := httptest.NewRecorder()
	handler.ServeCallback(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Location"), "invalid_state") {
		t.Errorf("expected invalid_state redirect, got %q", rec.Header().Get("Location"))
	}
}

func TestServeCallback_StateWithoutCookie(t *testing.T) {
	handler, _ := newTestHandler(t)

	// A state that was never bound to this browser must be rejected
	// even before the store is consulted.
	req := httptest.NewRequest("GET", "/auth/google/callback?state=foreign&code=abc", nil)
	rec := httptest.NewRecorder()
	handler.ServeCallback(rec, req)

	if !strings.Contains(rec.Header().Get("Location"), "invalid_state") {
		t.Errorf("expected invalid_state redirect, got %q", rec.Header().Get("Location"))
	}
}

func TestServeCallback_ProviderError(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/auth/google/callback?error=access_denied", nil)
	rec := httptest.NewRecorder()
	handler.ServeCallback(rec, req)

	if !strings.Contains(rec.Header().Get("Location"), "google_denied") {
		t.Errorf("expected google_denied redirect, got %q", rec.Header().Get("Location"))
	}
}
