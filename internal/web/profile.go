package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/zmarolt/catadmin/internal/backend"
	"github.com/zmarolt/catadmin/internal/imaging"
	"github.com/zmarolt/catadmin/internal/model"
)

// profileData is the profile page: the canonical record plus the edit
// form's draft, which tracks the form independently of the record
// until a save succeeds.
type profileData struct {
	PageData
	Profile model.User
	Draft   struct {
		FirstName string
		LastName  string
		Email     string
	}
}

func (s *Server) profileDataFrom(u model.User) *profileData {
	data := &profileData{PageData: s.pageData("Profile"), Profile: u}
	data.Draft.FirstName = u.FirstName
	data.Draft.LastName = u.LastName
	data.Draft.Email = u.Email
	return data
}

// ProfilePage handles GET /profile.
func (s *Server) ProfilePage(w http.ResponseWriter, r *http.Request) {
	user, err := s.Backend.Profile(r.Context())
	if err != nil {
		if backend.IsUnauthorized(err) {
			s.sessionExpired(w, r)
			return
		}
		slog.Error("failed to load profile", "error", err)
		data := s.profileDataFrom(s.Session.User())
		data.Error = "Loading profile failed"
		s.Templates.Render(w, "profile.html", data)
		return
	}

	s.Session.SetUser(*user)
	s.Templates.Render(w, "profile.html", s.profileDataFrom(*user))
}

// ProfileUpdateSubmit handles POST /profile. On success the backend's
// returned record is applied directly, without a refetch.
func (s *Server) ProfileUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	firstname := strings.TrimSpace(r.FormValue("firstname"))
	lastname := strings.TrimSpace(r.FormValue("lastname"))
	email := strings.TrimSpace(r.FormValue("email"))

	updated, err := s.Backend.UpdateProfile(r.Context(), firstname, lastname, email)
	if err != nil {
		if backend.IsUnauthorized(err) {
			s.sessionExpired(w, r)
			return
		}
		slog.Error("failed to update profile", "error", err)
		data := s.profileDataFrom(s.Session.User())
		data.Draft.FirstName = firstname
		data.Draft.LastName = lastname
		data.Draft.Email = email
		data.Error = backend.Message(err, "Failed to update profile.")
		s.Templates.Render(w, "profile.html", data)
		return
	}

	s.Session.SetUser(*updated)
	data := s.profileDataFrom(*updated)
	data.Success = "Profile updated."
	s.Templates.Render(w, "profile.html", data)
}

// ProfileImageSubmit handles POST /profile/image. Invalid files are
// rejected before any backend request; a successful upload refetches
// the canonical profile.
func (s *Server) ProfileImageSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.profileBusy.CompareAndSwap(false, true) {
		s.renderProfileError(w, "Another image operation is in progress.")
		return
	}
	defer s.profileBusy.Store(false)

	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		s.renderProfileError(w, "File too large.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.renderProfileError(w, "Please select an image file.")
		return
	}
	defer file.Close()

	avatar, err := imaging.Prepare(file)
	if err != nil {
		if errors.Is(err, imaging.ErrEmpty) {
			s.renderProfileError(w, "Please select an image file.")
			return
		}
		s.renderProfileError(w, "Only image file types are allowed.")
		return
	}

	if err := s.Backend.UploadProfileImage(r.Context(), header.Filename, avatar.Data); err != nil {
		if backend.IsUnauthorized(err) {
			s.sessionExpired(w, r)
			return
		}
		slog.Error("failed to upload profile image", "error", err)
		s.renderProfileError(w, backend.Message(err, "Failed to update image."))
		return
	}

	s.refetchProfile(w, r, "Profile image updated.")
}

// ProfileImageDeleteSubmit handles POST /profile/image/delete.
func (s *Server) ProfileImageDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.profileBusy.CompareAndSwap(false, true) {
		s.renderProfileError(w, "Another image operation is in progress.")
		return
	}
	defer s.profileBusy.Store(false)

	if err := s.Backend.DeleteProfileImage(r.Context()); err != nil {
		if backend.IsUnauthorized(err) {
			s.sessionExpired(w, r)
			return
		}
		slog.Error("failed to remove profile image", "error", err)
		s.renderProfileError(w, backend.Message(err, "Failed to remove image."))
		return
	}

	s.refetchProfile(w, r, "Profile image removed.")
}

// renderProfileError renders the profile page from the session's
// cached identity, without touching the backend. Used for client-side
// rejections and failure messages.
func (s *Server) renderProfileError(w http.ResponseWriter, msg string) {
	data := s.profileDataFrom(s.Session.User())
	data.Error = msg
	s.Templates.Render(w, "profile.html", data)
}

// refetchProfile fetches the canonical profile after an image
// mutation and renders it with a success message.
func (s *Server) refetchProfile(w http.ResponseWriter, r *http.Request, success string) {
	user, err := s.Backend.Profile(r.Context())
	if err != nil {
		if backend.IsUnauthorized(err) {
			s.sessionExpired(w, r)
			return
		}
		slog.Error("failed to refetch profile", "error", err)
		data := s.profileDataFrom(s.Session.User())
		data.Success = success
		s.Templates.Render(w, "profile.html", data)
		return
	}

	s.Session.SetUser(*user)
	data := s.profileDataFrom(*user)
	data.Success = success
	s.Templates.Render(w, "profile.html", data)
}
