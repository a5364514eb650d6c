package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey    = "is_authenticated"
	userIDKey    = "user_id"
	sessionIDKey = "session_id"
)

// SessionUser is the per-request view of the authenticated actor. It is
// rebuilt from the user store on every request (via UserFetcher), so role
// and capability changes take effect immediately.
type SessionUser struct {
	ID           string
	Name         string
	Email        string
	Role         string
	Capabilities []string
}

// HasCapability reports whether the user's effective capability set
// contains c.
func (u *SessionUser) HasCapability(c string) bool {
	if u == nil {
		return false
	}
	for _, have := range u.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// UserFetcher loads fresh user data for a session. Returning nil means the
// session should be treated as signed out (user deleted, deactivated, or
// unreadable).
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) *SessionUser
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the session user injected by LoadSessionUser.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects a session user directly into the request context.
// Handler tests use this instead of running the full session middleware.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// SessionManager owns the cookie session store and the middleware that
// resolves sessions to users.
type SessionManager struct {
	store   *sessions.CookieStore
	name    string
	log     *zap.Logger
	fetcher UserFetcher
}

// NewSessionManager builds a cookie-backed session manager. The session
// key must be a strong secret; short keys are allowed in dev but logged.
func NewSessionManager(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide 32+ random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// SetUserFetcher installs the per-request user loader. Without a fetcher,
// sessions resolve to nobody; the fetcher is the single source of truth
// for session claims.
func (sm *SessionManager) SetUserFetcher(f UserFetcher) {
	sm.fetcher = f
}

// SignIn marks the session as authenticated for the given user ID and
// mints a session ID that groups this sign-in's activity events.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, userID string) (string, error) {
	sess, _ := sm.store.Get(r, sm.name)
	sessionID := uuid.NewString()
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = userID
	sess.Values[sessionIDKey] = sessionID
	return sessionID, sess.Save(r, w)
}

// SignOut clears the session.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// SessionUserID returns the raw user ID stored in the session, if any.
// The authapi refresh endpoint uses this to re-read claims explicitly.
func (sm *SessionManager) SessionUserID(r *http.Request) (string, bool) {
	sess, _ := sm.store.Get(r, sm.name)
	if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
		return "", false
	}
	id, _ := sess.Values[userIDKey].(string)
	return id, id != ""
}

// SessionID returns the activity session ID minted at sign-in, or ""
// for anonymous requests.
func (sm *SessionManager) SessionID(r *http.Request) string {
	sess, _ := sm.store.Get(r, sm.name)
	id, _ := sess.Values[sessionIDKey].(string)
	return id
}

// LoadSessionUser injects the user into context if they are signed in.
// The user document is re-fetched on every request so disabled accounts
// and role changes take effect immediately.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := sm.SessionUserID(r)
		if !ok || sm.fetcher == nil {
			next.ServeHTTP(w, r)
			return
		}

		if u := sm.fetcher.FetchUser(r.Context(), id); u != nil {
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context. API callers get a
// plain 401 JSON envelope; there are no HTML redirects on this surface.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			writeJSONError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the signed-in user has one of the allowed roles.
func (sm *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if _, has := set[u.Role]; !has {
				writeJSONError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// writeJSONError is a minimal local copy of the httpjson envelope. auth
// sits below httpjson in the import graph, so it writes the envelope
// itself rather than importing upward.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, "{\"error\":%q}\n", msg)
}
