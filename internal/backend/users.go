package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/zmarolt/catadmin/internal/model"
)

// ListUsers returns all user accounts.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/user", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser creates an account. This is the only call that sends a
// password; the backend never returns one.
func (c *Client) CreateUser(ctx context.Context, u model.User) error {
	return c.doJSON(ctx, http.MethodPost, "/api/user", u, nil)
}

// UpdateUser patches a user's name and email.
func (c *Client) UpdateUser(ctx context.Context, id, firstname, lastname, email string) error {
	body := map[string]string{
		"firstname": firstname,
		"lastname":  lastname,
		"email":     email,
	}
	return c.doJSON(ctx, http.MethodPatch, "/api/user/"+url.PathEscape(id), body, nil)
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/user/"+url.PathEscape(id), nil, nil)
}

// UploadUserImage replaces a user's profile image and returns the new
// image path the backend assigned.
func (c *Client) UploadUserImage(ctx context.Context, id, filename string, data []byte) (string, error) {
	return c.uploadImage(ctx, "/api/user/"+url.PathEscape(id)+"/image", filename, data)
}

// DeleteUserImage removes a user's profile image.
func (c *Client) DeleteUserImage(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/user/"+url.PathEscape(id)+"/image", nil, nil)
}
