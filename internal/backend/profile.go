package backend

import (
	"context"
	"net/http"

	"github.com/zmarolt/catadmin/internal/model"
)

// Login authenticates against the backend. On success the session
// cookie is retained by the client's jar and the returned record
// holds whatever identity data the backend included in the response.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	body := map[string]string{"email": email, "password": password}
	user := &model.User{}
	if err := c.doJSON(ctx, http.MethodPost, "/api/user/login", body, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout ends the backend session.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/user/logout", nil, nil)
}

// Profile fetches the current user's profile on the session cookie.
func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	user := &model.User{}
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/profile", nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile patches the current user's name and email and returns
// the backend's updated record.
func (c *Client) UpdateProfile(ctx context.Context, firstname, lastname, email string) (*model.User, error) {
	body := map[string]string{
		"firstname": firstname,
		"lastname":  lastname,
		"email":     email,
	}
	user := &model.User{}
	if err := c.doJSON(ctx, http.MethodPatch, "/api/user/profile", body, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadProfileImage replaces the current user's profile image.
// Callers refetch the profile afterwards rather than trusting the
// upload response.
func (c *Client) UploadProfileImage(ctx context.Context, filename string, data []byte) error {
	_, err := c.uploadImage(ctx, "/api/user/profile/image", filename, data)
	return err
}

// DeleteProfileImage removes the current user's profile image.
func (c *Client) DeleteProfileImage(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/user/profile/image", nil, nil)
}
