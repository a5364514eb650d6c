package authapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vantagesoft/vantagehub/internal/app/features/authapi"
	"github.com/vantagesoft/vantagehub/internal/app/store/audit"
	userstore "github.com/vantagesoft/vantagehub/internal/app/store/users"
	"github.com/vantagesoft/vantagehub/internal/app/system/auditlog"
	"github.com/vantagesoft/vantagehub/internal/app/system/auth"
	"github.com/vantagesoft/vantagehub/internal/app/system/authz"
	"github.com/vantagesoft/vantagehub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*authapi.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "vantagehub-test", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	sm.SetUserFetcher(userstore.NewFetcher(db))

	auditLog := auditlog.New(audit.New(db), logger, auditlog.Config{Auth: "db", Admin: "db"})
	handler := authapi.NewHandler(db, sm, auditLog, logger)
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

func loginRequest(t *testing.T, email, password string) *http.Request {
	t.Helper()
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		t.Fatalf("marshal login body: %v", err)
	}
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandleLogin_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateAdmin(ctx, "Login Admin", "login@example.com")

	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, loginRequest(t, "Login@Example.com", "testpassword"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie on login")
	}

	var resp struct {
		Role         string   `json:"role"`
		Capabilities []string `json:"capabilities"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Role != "admin" {
		t.Errorf("role: got %q, want admin", resp.Role)
	}

	found := false
	for _, c := range resp.Capabilities {
		if c == authz.CapUsersDelete {
			found = true
		}
	}
	if !found {
		t.Error("expected admin capabilities in login response")
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateAdmin(ctx, "Login Admin", "wrongpw@example.com")

	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, loginRequest(t, "wrongpw@example.com", "not-the-password"))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "Invalid email or password" {
		t.Errorf("error: got %q", resp.Error)
	}
}

func TestHandleLogin_UnknownUserSameMessage(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, loginRequest(t, "nobody@example.com", "whatever123"))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "Invalid email or password" {
		t.Errorf("unknown user must get the same message, got %q", resp.Error)
	}
}

func TestHandleLogin_DisabledUser(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateInactiveUser(ctx, "Disabled", "disabled@example.com", "user")

	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, loginRequest(t, "disabled@example.com", "testpassword"))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestHandleSession_FreshClaims(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateBusinessDeveloper(ctx, "Biz Dev", "bizdev@example.com")

	actor := testutil.TestUser{
		ID:           u.ID.Hex(),
		Name:         u.FullName,
		Email:        u.Email,
		Role:         u.Role,
		Capabilities: authz.EffectiveCapabilities(u.Role, nil),
	}
	req := testutil.WithUser(testutil.NewRequest("GET", "/api/auth/session"), actor)
	rec := httptest.NewRecorder()
	handler.HandleSession(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != u.ID.Hex() || resp.Role != "business_developer" {
		t.Errorf("unexpected claims: %+v", resp)
	}
}

func TestHandleSessionRefresh_PicksUpEdits(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateAdmin(ctx, "Old Name", "refresh@example.com")

	// Sign in to establish a session cookie.
	loginRec := httptest.NewRecorder()
	handler.HandleLogin(loginRec, loginRequest(t, "refresh@example.com", "testpassword"))
	if loginRec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", loginRec.Code, loginRec.Body.String())
	}

	// Rename the user behind the session's back.
	store := userstore.New(fixtures.DB())
	if err := store.Apply(ctx, u.ID, userstore.Update{
		FullName: "New Name",
		Email:    u.Email,
		Role:     u.Role,
		IsActive: true,
	}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/auth/session/refresh", nil)
	for _, c := range loginRec.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	handler.HandleSessionRefresh(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Name != "New Name" {
		t.Errorf("refresh must return fresh claims, got %q", resp.Name)
	}
}

func TestHandleLogout_Anonymous(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.HandleLogout(rec, httptest.NewRequest("POST", "/api/auth/logout", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("anonymous logout should succeed, got %d", rec.Code)
	}
}
