package model

import "strings"

// User is a backend user account. Password is write-only: it is sent
// when creating an account and the backend never echoes it back, so
// it must not be rendered anywhere.
type User struct {
	ID           string `json:"_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password,omitempty"`
	FirstName    string `json:"firstname"`
	LastName     string `json:"lastname"`
	Status       string `json:"status,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// FullName returns the user's display name, trimmed.
func (u User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// Initial returns the single-letter avatar fallback.
func (u User) Initial() string {
	for _, source := range []string{u.FirstName, u.Username} {
		if source != "" {
			return strings.ToUpper(source[:1])
		}
	}
	return "U"
}

// StatusOrDefault returns the account status, defaulting to ACTIVE
// for older records that predate the status field.
func (u User) StatusOrDefault() string {
	if u.Status == "" {
		return "ACTIVE"
	}
	return u.Status
}
