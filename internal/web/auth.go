package web

import (
	"log/slog"
	"net/http"

	"github.com/zmarolt/catadmin/internal/auth"
)

// LoginPage handles GET /login. An already-authenticated browser is
// sent straight to the profile.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	if s.Session.LoggedIn() {
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}
	s.Templates.Render(w, "login.html", &struct{ PageData }{s.pageData("Login")})
}

// LoginSubmit handles POST /login. Rejected credentials and transport
// failures render the same generic message; the distinction is not
// surfaced.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if s.Session.LoggedIn() {
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	if !s.Session.Login(r.Context(), email, password) {
		data := struct{ PageData }{s.pageData("Login")}
		data.Error = "Login incorrect"
		s.Templates.Render(w, "login.html", &data)
		return
	}

	token, err := auth.GenerateToken(s.CookieSecret, s.Session.ID(), email)
	if err != nil {
		slog.Error("failed to generate session token", "error", err)
		s.Session.Logout(r.Context())
		data := struct{ PageData }{s.pageData("Login")}
		data.Error = "Login incorrect"
		s.Templates.Render(w, "login.html", &data)
		return
	}

	setAuthCookie(w, token)
	slog.Info("user logged in", "email", email)
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// Logout handles GET /logout. The backend's answer does not matter:
// local state and the browser cookie are always cleared and the
// browser always lands on /login.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	s.Session.Logout(r.Context())
	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// sessionExpired handles a backend 401 on the profile/user-image
// surface: log out once, clear the browser cookie, and stop
// processing the response.
func (s *Server) sessionExpired(w http.ResponseWriter, r *http.Request) {
	slog.Info("backend session expired, logging out")
	s.Session.Logout(r.Context())
	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
