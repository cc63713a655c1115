package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.Client())
	client.uploadURL = server.URL
	return client
}

func TestCreateSession(t *testing.T) {
	var gotReq *http.Request
	var gotBody map[string]any

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(r.Context())
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Location", "https://upload.example.com/session/abc")
		w.WriteHeader(http.StatusOK)
	}))

	meta := Metadata{
		Title:       "My Video",
		Description: "A description",
		Tags:        []string{"go", "", "devlog", ""},
		Privacy:     "unlisted",
	}

	session, err := client.CreateSession(context.Background(), "tok-123", meta, 17825792, "video/mp4")
	if err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}

	if session.URL != "https://upload.example.com/session/abc" {
		t.Errorf("session.URL = %q, want session locator from Location header", session.URL)
	}
	if session.Size != 17825792 {
		t.Errorf("session.Size = %d, want 17825792", session.Size)
	}
	if session.ContentType != "video/mp4" {
		t.Errorf("session.ContentType = %q, want video/mp4", session.ContentType)
	}

	if gotReq.Method != http.MethodPost {
		t.Errorf("method = %q, want POST", gotReq.Method)
	}
	query := gotReq.URL.Query()
	if query.Get("uploadType") != "resumable" {
		t.Errorf("uploadType = %q, want resumable", query.Get("uploadType"))
	}
	if query.Get("part") != "snippet,status" {
		t.Errorf("part = %q, want snippet,status", query.Get("part"))
	}
	if got := gotReq.Header.Get("Authorization"); got != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", got)
	}
	if got := gotReq.Header.Get("X-Upload-Content-Length"); got != "17825792" {
		t.Errorf("X-Upload-Content-Length = %q, want 17825792", got)
	}
	if got := gotReq.Header.Get("X-Upload-Content-Type"); got != "video/mp4" {
		t.Errorf("X-Upload-Content-Type = %q, want video/mp4", got)
	}

	snippet, _ := gotBody["snippet"].(map[string]any)
	if snippet["title"] != "My Video" {
		t.Errorf("snippet.title = %v, want My Video", snippet["title"])
	}
	if snippet["categoryId"] != categoryID {
		t.Errorf("snippet.categoryId = %v, want %s", snippet["categoryId"], categoryID)
	}
	tags, _ := snippet["tags"].([]any)
	if len(tags) != 2 || tags[0] != "go" || tags[1] != "devlog" {
		t.Errorf("snippet.tags = %v, want empty entries discarded", tags)
	}

	status, _ := gotBody["status"].(map[string]any)
	if status["privacyStatus"] != "unlisted" {
		t.Errorf("status.privacyStatus = %v, want unlisted", status["privacyStatus"])
	}
	kids, present := status["selfDeclaredMadeForKids"]
	if !present || kids != false {
		t.Errorf("status.selfDeclaredMadeForKids = %v (present=%v), want explicit false", kids, present)
	}
	if _, present := status["publishAt"]; present {
		t.Error("status.publishAt should be omitted when no schedule is set")
	}
}

func TestCreateSessionWithSchedule(t *testing.T) {
	var gotBody map[string]any

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Location", "https://upload.example.com/session/xyz")
		w.WriteHeader(http.StatusOK)
	}))

	publishAt := time.Date(2026, 9, 15, 18, 30, 0, 0, time.UTC)
	meta := Metadata{Title: "Scheduled", Privacy: "private", PublishAt: publishAt}

	if _, err := client.CreateSession(context.Background(), "tok", meta, 1024, "video/mp4"); err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}

	status, _ := gotBody["status"].(map[string]any)
	if status["publishAt"] != "2026-09-15T18:30:00Z" {
		t.Errorf("status.publishAt = %v, want 2026-09-15T18:30:00Z", status["publishAt"])
	}
}

func TestCreateSessionRejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("quota exceeded"))
	}))

	_, err := client.CreateSession(context.Background(), "tok", Metadata{Title: "t"}, 1024, "video/mp4")

	var sessionErr *SessionError
	if !errors.As(err, &sessionErr) {
		t.Fatalf("CreateSession() error = %v, want *SessionError", err)
	}
	if sessionErr.Status != http.StatusForbidden {
		t.Errorf("SessionError.Status = %d, want 403", sessionErr.Status)
	}
	if sessionErr.Body != "quota exceeded" {
		t.Errorf("SessionError.Body = %q, want quota exceeded", sessionErr.Body)
	}
}

func TestCreateSessionMissingLocation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	_, err := client.CreateSession(context.Background(), "tok", Metadata{Title: "t"}, 1024, "video/mp4")

	var sessionErr *SessionError
	if !errors.As(err, &sessionErr) {
		t.Fatalf("CreateSession() error = %v, want *SessionError", err)
	}
	if !errors.Is(err, ErrNoLocation) {
		t.Errorf("CreateSession() error = %v, want ErrNoLocation to distinguish it from a rejection", err)
	}
	if sessionErr.Status != http.StatusOK {
		t.Errorf("SessionError.Status = %d, want 200", sessionErr.Status)
	}
}

func TestFilterTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want int
	}{
		{"dropsEmpty", []string{"a", "", "b"}, 2},
		{"allEmpty", []string{"", ""}, 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filterTags(tt.in); len(got) != tt.want {
				t.Errorf("filterTags(%v) = %v, want %d entries", tt.in, got, tt.want)
			}
		})
	}
}
