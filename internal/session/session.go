// Package session holds the process-wide authenticated-user context.
// The session is constructed once at startup, injected into the views
// that read it, and lives for the application's runtime: initialized
// unauthenticated, populated by Login, cleared by Logout.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/zmarolt/catadmin/internal/backend"
	"github.com/zmarolt/catadmin/internal/model"
)

// Session is the current authenticated-user context. The backend
// session cookie itself lives in the backend client's jar; Session
// tracks the identity and the logged-in flag the views read.
type Session struct {
	backend *backend.Client

	mu       sync.RWMutex
	id       string
	user     model.User
	loggedIn bool
}

// New creates an unauthenticated session bound to the backend client.
func New(client *backend.Client) *Session {
	return &Session{backend: client}
}

// Login authenticates against the backend. It returns false for both
// rejected credentials and transport failures; callers only learn
// that the login did not happen. On success a fresh session ID is
// minted, invalidating browser cookies from any previous login.
func (s *Session) Login(ctx context.Context, email, password string) bool {
	user, err := s.backend.Login(ctx, email, password)
	if err != nil {
		slog.Warn("login failed", "error", err)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = uuid.NewString()
	s.user = *user
	if s.user.Email == "" {
		s.user.Email = email
	}
	s.loggedIn = true
	return true
}

// Logout ends the backend session best-effort and clears local state
// unconditionally. It is safe to call when not logged in.
func (s *Session) Logout(ctx context.Context) {
	if err := s.backend.Logout(ctx); err != nil {
		slog.Warn("backend logout failed", "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = ""
	s.user = model.User{}
	s.loggedIn = false
}

// LoggedIn reports whether a login has succeeded and not been logged
// out since.
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

// ID returns the current session identifier, or "" when logged out.
func (s *Session) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// User returns a snapshot of the current identity.
func (s *Session) User() model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetUser replaces the cached identity. Views call this when the
// backend returns a canonical profile record.
func (s *Session) SetUser(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}
