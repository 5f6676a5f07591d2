package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/zmarolt/catadmin/internal/backend"
	"github.com/zmarolt/catadmin/internal/model"
	"github.com/zmarolt/catadmin/internal/session"
	webembed "github.com/zmarolt/catadmin/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"login.html",
		"items.html",
		"item_detail.html",
		"profile.html",
		"users.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page)
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates. BackendBase is
// the backend base URL, prepended to profile image paths.
type PageData struct {
	Title       string
	LoggedIn    bool
	User        model.User
	BackendBase string
	Error       string
	Success     string
}

// Message is an inline success/error notice scoped to one panel (the
// user edit modal keeps its own, separate from the page banner).
type Message struct {
	Kind string // "success" or "error"
	Text string
}

// Server holds all dependencies and per-view state for page handlers.
type Server struct {
	Backend      *backend.Client
	Session      *session.Session
	Templates    *Templates
	CookieSecret string

	// Image operations on the profile view are serialized by a busy
	// flag; a second concurrent attempt is refused, not queued.
	profileBusy atomic.Bool

	users usersView
}

// usersView is the server-side state of the user management screen:
// the cached list, the edit-modal draft, and the modal's message.
// Mutations patch the cached list in place; only a page load replaces
// it wholesale.
type usersView struct {
	mu      sync.Mutex
	list    []model.User
	loaded  bool
	editing *model.User
	message Message
	busy    atomic.Bool
}

// pageData builds the base template data for the current session.
func (s *Server) pageData(title string) PageData {
	return PageData{
		Title:       title,
		LoggedIn:    s.Session.LoggedIn(),
		User:        s.Session.User(),
		BackendBase: s.Backend.BaseURL(),
	}
}
