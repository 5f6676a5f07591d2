package session

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/zmarolt/catadmin/internal/backend"
)

func newSession(t *testing.T, handler http.Handler) *Session {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := backend.New(server.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("backend.New: %v", err)
	}
	return New(client)
}

func TestLoginSuccess(t *testing.T) {
	sess := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/user/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		io.WriteString(w, `{"_id":"u1","username":"ana","email":"ana@example.com"}`)
	}))

	if sess.LoggedIn() {
		t.Fatal("new session should start unauthenticated")
	}

	if !sess.Login(context.Background(), "ana@example.com", "pw") {
		t.Fatal("expected login to succeed")
	}
	if !sess.LoggedIn() {
		t.Error("expected LoggedIn after login")
	}
	if sess.ID() == "" {
		t.Error("expected a session ID after login")
	}
	if sess.User().Username != "ana" {
		t.Errorf("expected identity from response, got %+v", sess.User())
	}
}

func TestLoginRejected(t *testing.T) {
	sess := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message":"wrong credentials"}`)
	}))

	if sess.Login(context.Background(), "ana@example.com", "bad") {
		t.Fatal("expected login to fail")
	}
	if sess.LoggedIn() {
		t.Error("session must stay unauthenticated after rejected login")
	}
	if sess.ID() != "" {
		t.Error("no session ID should exist after rejected login")
	}
}

func TestLoginTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client, err := backend.New(server.URL, time.Second)
	if err != nil {
		t.Fatalf("backend.New: %v", err)
	}
	server.Close() // backend unreachable

	sess := New(client)
	if sess.Login(context.Background(), "a@b.c", "pw") {
		t.Fatal("expected login to fail when backend is unreachable")
	}
	if sess.LoggedIn() {
		t.Error("session must stay unauthenticated after transport failure")
	}
}

func TestLoginRotatesSessionID(t *testing.T) {
	sess := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"_id":"u1","email":"a@b.c"}`)
	}))

	sess.Login(context.Background(), "a@b.c", "pw")
	first := sess.ID()
	sess.Login(context.Background(), "a@b.c", "pw")
	second := sess.ID()

	if first == second {
		t.Error("expected a fresh session ID per login")
	}
}

func TestLogoutClearsStateEvenWhenBackendFails(t *testing.T) {
	sess := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/user/login":
			io.WriteString(w, `{"_id":"u1","email":"a@b.c"}`)
		case "/api/user/logout":
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))

	sess.Login(context.Background(), "a@b.c", "pw")
	sess.Logout(context.Background())

	if sess.LoggedIn() {
		t.Error("expected LoggedIn false after logout, regardless of backend response")
	}
	if sess.ID() != "" {
		t.Error("expected session ID cleared after logout")
	}
	if sess.User().Email != "" {
		t.Error("expected identity cleared after logout")
	}
}

func TestLoginFallsBackToSubmittedEmail(t *testing.T) {
	sess := newSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK) // empty body
	}))

	if !sess.Login(context.Background(), "a@b.c", "pw") {
		t.Fatal("expected login to succeed")
	}
	if sess.User().Email != "a@b.c" {
		t.Errorf("expected submitted email as identity fallback, got %q", sess.User().Email)
	}
}
