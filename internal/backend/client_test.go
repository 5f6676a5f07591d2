package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(server.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestNewRejectsBadURL(t *testing.T) {
	if _, err := New("not a url", time.Second); err == nil {
		t.Error("expected error for invalid URL")
	}
	if _, err := New("ftp://example.com", time.Second); err == nil {
		t.Error("expected error for non-http scheme")
	}
}

func TestListItems(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/item" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `[
			{"_id":"1","itemName":"Pen","itemCategory":"Stationary","itemPrice":"10"},
			{"_id":"2","itemName":"Kettle","itemCategory":"Appliance","itemPrice":35}
		]`)
	}))

	items, err := client.ListItems(context.Background())
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Name != "Pen" || items[0].Price.String() != "10" {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[1].Price.String() != "35" {
		t.Errorf("expected numeric price decoded as '35', got %q", items[1].Price)
	}
}

func TestCreateItemPayload(t *testing.T) {
	var got map[string]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/item" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	}))

	err := client.CreateItem(context.Background(), "Pen", "Stationary", "10")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if got["itemName"] != "Pen" || got["itemCategory"] != "Stationary" || got["itemPrice"] != "10" {
		t.Errorf("unexpected create payload: %v", got)
	}
}

func TestUpdateItemPayload(t *testing.T) {
	var got map[string]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/item/42" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
	}))

	err := client.UpdateItem(context.Background(), "42", "Pen", "Stationary", "12")
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	// Partial updates use different field names than creates.
	if got["name"] != "Pen" || got["category"] != "Stationary" || got["price"] != "12" {
		t.Errorf("unexpected update payload: %v", got)
	}
}

func TestErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message field", http.StatusBadRequest, `{"message":"name taken"}`, "name taken"},
		{"error field", http.StatusConflict, `{"error":"duplicate"}`, "duplicate"},
		{"plain text", http.StatusBadRequest, "missing fields", "missing fields"},
		{"empty body", http.StatusInternalServerError, "", "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))

			err := client.DeleteItem(context.Background(), "1")
			var se *StatusError
			if !errors.As(err, &se) {
				t.Fatalf("expected StatusError, got %v", err)
			}
			if se.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, se.Status)
			}
			if se.Message != tt.want {
				t.Errorf("expected message %q, got %q", tt.want, se.Message)
			}
		})
	}
}

func TestIsUnauthorized(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.Profile(context.Background())
	if !IsUnauthorized(err) {
		t.Errorf("expected IsUnauthorized for 401, got %v", err)
	}

	if IsUnauthorized(errors.New("plain error")) {
		t.Error("IsUnauthorized should be false for non-status errors")
	}
	if IsUnauthorized(nil) {
		t.Error("IsUnauthorized should be false for nil")
	}
}

func TestMessageHelper(t *testing.T) {
	err := &StatusError{Status: 400, Message: "bad input"}
	if got := Message(err, "fallback"); got != "bad input" {
		t.Errorf("expected backend message, got %q", got)
	}
	if got := Message(errors.New("dial tcp: refused"), "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
}

func TestLoginKeepsSessionCookie(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/user/login":
			http.SetCookie(w, &http.Cookie{Name: "sid", Value: "abc123", Path: "/"})
			io.WriteString(w, `{"_id":"u1","username":"ana","email":"ana@example.com"}`)
		case "/api/user/profile":
			cookie, err := r.Cookie("sid")
			if err != nil || cookie.Value != "abc123" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			io.WriteString(w, `{"_id":"u1","username":"ana","email":"ana@example.com"}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	user, err := client.Login(context.Background(), "ana@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Username != "ana" {
		t.Errorf("expected username 'ana', got %q", user.Username)
	}

	// The session cookie from login must ride along on later calls.
	profile, err := client.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile after login: %v", err)
	}
	if profile.ID != "u1" {
		t.Errorf("expected profile u1, got %+v", profile)
	}
}

func TestUploadUserImage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/user/u1/image" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("expected 'file' field: %v", err)
		}
		defer file.Close()
		if header.Filename != "avatar.jpg" {
			t.Errorf("expected filename avatar.jpg, got %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "jpegbytes" {
			t.Errorf("unexpected file content %q", data)
		}
		io.WriteString(w, `{"imageUrl":"/images/u1.jpg"}`)
	}))

	imageURL, err := client.UploadUserImage(context.Background(), "u1", "avatar.jpg", []byte("jpegbytes"))
	if err != nil {
		t.Fatalf("UploadUserImage: %v", err)
	}
	if imageURL != "/images/u1.jpg" {
		t.Errorf("expected /images/u1.jpg, got %q", imageURL)
	}
}

func TestEmptyResponseBodyTolerated(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Login decodes into a user but some backends return no body.
	if _, err := client.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Errorf("expected empty body to be tolerated, got %v", err)
	}
}
