package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zmarolt/catadmin/internal/backend"
	"github.com/zmarolt/catadmin/internal/imaging"
	"github.com/zmarolt/catadmin/internal/model"
)

// usersData is the user management page: the cached list, the create
// form's draft, and the edit modal (open when Editing is non-nil).
type usersData struct {
	PageData
	Users       []model.User
	CreateDraft model.User
	Editing     *model.User
	Modal       Message
}

// usersSnapshot copies the view state under the lock.
func (s *Server) usersSnapshot() ([]model.User, *model.User, Message) {
	s.users.mu.Lock()
	defer s.users.mu.Unlock()

	list := make([]model.User, len(s.users.list))
	copy(list, s.users.list)

	var editing *model.User
	if s.users.editing != nil {
		e := *s.users.editing
		editing = &e
	}
	return list, editing, s.users.message
}

func (s *Server) renderUsers(w http.ResponseWriter, errMsg, successMsg string, draft model.User) {
	list, editing, modal := s.usersSnapshot()
	data := &usersData{
		PageData:    s.pageData("User Management"),
		Users:       list,
		CreateDraft: draft,
		Editing:     editing,
		Modal:       modal,
	}
	data.Error = errMsg
	data.Success = successMsg
	s.Templates.Render(w, "users.html", data)
}

// replaceUserList swaps in a freshly fetched collection.
func (s *Server) replaceUserList(users []model.User) {
	s.users.mu.Lock()
	defer s.users.mu.Unlock()
	s.users.list = users
	s.users.loaded = true
}

// ensureUsersLoaded fetches the collection once if the cache is still
// empty (e.g. the edit URL was opened directly).
func (s *Server) ensureUsersLoaded(ctx context.Context) error {
	s.users.mu.Lock()
	loaded := s.users.loaded
	s.users.mu.Unlock()
	if loaded {
		return nil
	}

	users, err := s.Backend.ListUsers(ctx)
	if err != nil {
		return err
	}
	s.replaceUserList(users)
	return nil
}

// setModalMessage sets the inline message inside the edit modal.
func (s *Server) setModalMessage(kind, text string) {
	s.users.mu.Lock()
	defer s.users.mu.Unlock()
	s.users.message = Message{Kind: kind, Text: text}
}

// resetModalLocked clears all modal state. Caller holds the lock.
func (s *Server) resetModalLocked() {
	s.users.editing = nil
	s.users.message = Message{}
	s.users.busy.Store(false)
}

// UsersPage handles GET /users. Loading replaces the cached list;
// everything else on this view patches the cache in place instead of
// refetching (unlike the items view, deliberately).
func (s *Server) UsersPage(w http.ResponseWriter, r *http.Request) {
	users, err := s.Backend.ListUsers(r.Context())
	if err != nil {
		slog.Error("failed to list users", "error", err)
		s.renderUsers(w, "Loading users failed", "", model.User{})
		return
	}

	s.replaceUserList(users)
	s.renderUsers(w, "", "", model.User{})
}

// UserCreateSubmit handles POST /users. Username, email and password
// are required; an incomplete form never reaches the backend. Success
// is the one user mutation that refetches the full list.
func (s *Server) UserCreateSubmit(w http.ResponseWriter, r *http.Request) {
	draft := model.User{
		Username:  r.FormValue("username"),
		Email:     r.FormValue("email"),
		Password:  r.FormValue("password"),
		FirstName: r.FormValue("firstname"),
		LastName:  r.FormValue("lastname"),
	}

	if draft.Username == "" || draft.Email == "" || draft.Password == "" {
		s.renderUsers(w, "Username, email and password are required", "", draft)
		return
	}

	if err := s.Backend.CreateUser(r.Context(), draft); err != nil {
		slog.Error("failed to create user", "username", draft.Username, "error", err)
		s.renderUsers(w, "Create failed: "+backend.Message(err, "backend unavailable"), "", draft)
		return
	}

	slog.Info("user created", "username", draft.Username)

	users, err := s.Backend.ListUsers(r.Context())
	if err != nil {
		slog.Error("failed to reload users after create", "error", err)
	} else {
		s.replaceUserList(users)
	}
	s.renderUsers(w, "", "User created. They can now log in.", model.User{})
}

// UserDeleteSubmit handles POST /users/{id}/delete. On success the
// entry is removed from the cached list directly, with no refetch,
// and the modal closes if the deleted user was open in it.
func (s *Server) UserDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.Backend.DeleteUser(r.Context(), id); err != nil {
		slog.Error("failed to delete user", "id", id, "error", err)
		s.renderUsers(w, "Failed to delete user", "", model.User{})
		return
	}

	s.users.mu.Lock()
	kept := s.users.list[:0]
	for _, u := range s.users.list {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	s.users.list = kept
	if s.users.editing != nil && s.users.editing.ID == id {
		s.resetModalLocked()
	}
	s.users.mu.Unlock()

	slog.Info("user deleted", "id", id)
	s.renderUsers(w, "", "", model.User{})
}

// UserEditOpen handles GET /users/{id}/edit. The modal draft is a
// shallow copy of the cached entry; edits touch only the draft until
// a save succeeds.
func (s *Server) UserEditOpen(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.ensureUsersLoaded(r.Context()); err != nil {
		slog.Error("failed to list users", "error", err)
		s.renderUsers(w, "Loading users failed", "", model.User{})
		return
	}

	s.users.mu.Lock()
	found := false
	for _, u := range s.users.list {
		if u.ID == id {
			draft := u
			s.users.editing = &draft
			s.users.message = Message{}
			found = true
			break
		}
	}
	s.users.mu.Unlock()

	if !found {
		s.renderUsers(w, "User not found", "", model.User{})
		return
	}
	s.renderUsers(w, "", "", model.User{})
}

// UserModalClose handles GET /users/close: all modal state is reset.
func (s *Server) UserModalClose(w http.ResponseWriter, r *http.Request) {
	s.users.mu.Lock()
	s.resetModalLocked()
	s.users.mu.Unlock()
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// UserUpdateSubmit handles POST /users/{id}. On success the cached
// list entry is patched in place (no refetch) and the modal stays
// open with an inline message either way.
func (s *Server) UserUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	firstname := r.FormValue("firstname")
	lastname := r.FormValue("lastname")
	email := r.FormValue("email")

	s.users.mu.Lock()
	if s.users.editing == nil || s.users.editing.ID != id {
		s.users.mu.Unlock()
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}
	// The draft tracks the form even when the save fails.
	s.users.editing.FirstName = firstname
	s.users.editing.LastName = lastname
	s.users.editing.Email = email
	s.users.mu.Unlock()

	if err := s.Backend.UpdateUser(r.Context(), id, firstname, lastname, email); err != nil {
		slog.Error("failed to update user", "id", id, "error", err)
		s.setModalMessage("error", "Failed to update user. "+backend.Message(err, ""))
		s.renderUsers(w, "", "", model.User{})
		return
	}

	s.users.mu.Lock()
	for i := range s.users.list {
		if s.users.list[i].ID == id {
			s.users.list[i].FirstName = firstname
			s.users.list[i].LastName = lastname
			s.users.list[i].Email = email
			break
		}
	}
	s.users.message = Message{Kind: "success", Text: "User updated successfully."}
	s.users.mu.Unlock()

	slog.Info("user updated", "id", id)
	s.renderUsers(w, "", "", model.User{})
}

// UserImageSubmit handles POST /users/{id}/image. Mirrors the profile
// image flow but patches the cached list entry with the returned
// image path instead of refetching.
func (s *Server) UserImageSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.modalOpenFor(id) {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	if !s.users.busy.CompareAndSwap(false, true) {
		s.setModalMessage("error", "Another image operation is in progress.")
		s.renderUsers(w, "", "", model.User{})
		return
	}
	defer s.users.busy.Store(false)

	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		s.setModalMessage("error", "File too large.")
		s.renderUsers(w, "", "", model.User{})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.setModalMessage("error", "Please select an image file first.")
		s.renderUsers(w, "", "", model.User{})
		return
	}
	defer file.Close()

	avatar, err := imaging.Prepare(file)
	if err != nil {
		if errors.Is(err, imaging.ErrEmpty) {
			s.setModalMessage("error", "Please select an image file first.")
		} else {
			s.setModalMessage("error", "Only image file types are allowed.")
		}
		s.renderUsers(w, "", "", model.User{})
		return
	}

	imageURL, err := s.Backend.UploadUserImage(r.Context(), id, header.Filename, avatar.Data)
	if err != nil {
		if backend.IsUnauthorized(err) {
			s.sessionExpired(w, r)
			return
		}
		slog.Error("failed to upload user image", "id", id, "error", err)
		s.setModalMessage("error", backend.Message(err, "Failed to update image."))
		s.renderUsers(w, "", "", model.User{})
		return
	}

	s.patchUserImage(id, imageURL)
	s.setModalMessage("success", "Image updated successfully.")
	s.renderUsers(w, "", "", model.User{})
}

// UserImageDeleteSubmit handles POST /users/{id}/image/delete.
func (s *Server) UserImageDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.modalOpenFor(id) {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	if !s.users.busy.CompareAndSwap(false, true) {
		s.setModalMessage("error", "Another image operation is in progress.")
		s.renderUsers(w, "", "", model.User{})
		return
	}
	defer s.users.busy.Store(false)

	if err := s.Backend.DeleteUserImage(r.Context(), id); err != nil {
		if backend.IsUnauthorized(err) {
			s.sessionExpired(w, r)
			return
		}
		slog.Error("failed to remove user image", "id", id, "error", err)
		s.setModalMessage("error", backend.Message(err, "Failed to remove image."))
		s.renderUsers(w, "", "", model.User{})
		return
	}

	s.patchUserImage(id, "")
	s.setModalMessage("success", "Image removed successfully.")
	s.renderUsers(w, "", "", model.User{})
}

// modalOpenFor reports whether the edit modal is open for this user.
func (s *Server) modalOpenFor(id string) bool {
	s.users.mu.Lock()
	defer s.users.mu.Unlock()
	return s.users.editing != nil && s.users.editing.ID == id
}

// patchUserImage updates the image path on both the modal draft and
// the cached list entry.
func (s *Server) patchUserImage(id, imageURL string) {
	s.users.mu.Lock()
	defer s.users.mu.Unlock()
	if s.users.editing != nil && s.users.editing.ID == id {
		s.users.editing.ProfileImage = imageURL
	}
	for i := range s.users.list {
		if s.users.list[i].ID == id {
			s.users.list[i].ProfileImage = imageURL
			break
		}
	}
}
