package web

import (
	"net/http"

	"github.com/zmarolt/catadmin/internal/backend"
	"github.com/zmarolt/catadmin/internal/session"
	webembed "github.com/zmarolt/catadmin/web"
)

// NewRouter creates the page router with all view routes registered.
// The item views are public, mirroring the backend's open item API;
// the profile and user management views sit behind the cookie check.
func NewRouter(client *backend.Client, sess *session.Session, cookieSecret string) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Backend:      client,
		Session:      sess,
		Templates:    templates,
		CookieSecret: cookieSecret,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(cookieSecret, sess)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	mux.Handle("GET /{$}", http.RedirectHandler("/items", http.StatusSeeOther))

	// Session routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("GET /logout", s.Logout)

	// Item views.
	mux.HandleFunc("GET /items", s.ItemsPage)
	mux.HandleFunc("POST /items", s.ItemCreateSubmit)
	mux.HandleFunc("GET /items/{id}", s.ItemDetailPage)
	mux.HandleFunc("POST /items/{id}", s.ItemUpdateSubmit)
	mux.HandleFunc("POST /items/{id}/delete", s.ItemDeleteSubmit)

	// Profile view.
	mux.Handle("GET /profile", cookieAuth(http.HandlerFunc(s.ProfilePage)))
	mux.Handle("POST /profile", cookieAuth(http.HandlerFunc(s.ProfileUpdateSubmit)))
	mux.Handle("POST /profile/image", cookieAuth(http.HandlerFunc(s.ProfileImageSubmit)))
	mux.Handle("POST /profile/image/delete", cookieAuth(http.HandlerFunc(s.ProfileImageDeleteSubmit)))

	// User management view.
	mux.Handle("GET /users", cookieAuth(http.HandlerFunc(s.UsersPage)))
	mux.Handle("POST /users", cookieAuth(http.HandlerFunc(s.UserCreateSubmit)))
	mux.Handle("GET /users/close", cookieAuth(http.HandlerFunc(s.UserModalClose)))
	mux.Handle("GET /users/{id}/edit", cookieAuth(http.HandlerFunc(s.UserEditOpen)))
	mux.Handle("POST /users/{id}", cookieAuth(http.HandlerFunc(s.UserUpdateSubmit)))
	mux.Handle("POST /users/{id}/delete", cookieAuth(http.HandlerFunc(s.UserDeleteSubmit)))
	mux.Handle("POST /users/{id}/image", cookieAuth(http.HandlerFunc(s.UserImageSubmit)))
	mux.Handle("POST /users/{id}/image/delete", cookieAuth(http.HandlerFunc(s.UserImageDeleteSubmit)))

	return mux, nil
}
