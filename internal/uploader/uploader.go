// Package uploader composes credential acquisition, session negotiation and
// the chunked transfer into the single operation "publish this video".
package uploader

import (
	"context"
	"io"
	"time"

	ytapi "google.golang.org/api/youtube/v3"

	"clipcast/internal/youtube"
)

type Visibility string

const (
	VisibilityPrivate  Visibility = "private"
	VisibilityUnlisted Visibility = "unlisted"
	VisibilityPublic   Visibility = "public"
)

// Request describes one upload attempt. Size must be the payload's exact
// byte length and the payload must not change once the upload starts: the
// remote session is sized against it.
type Request struct {
	Payload     io.ReaderAt
	Size        int64
	ContentType string

	Title       string
	Description string
	Tags        []string
	Visibility  Visibility
	PublishAt   time.Time // zero means publish per visibility, unscheduled
}

// Result identifies the created video.
type Result struct {
	ID  string
	URL string
}

// Status is a coarse human-readable upload phase, distinct from the
// fine-grained transfer percentage.
type Status string

const (
	StatusAuthorizing     Status = "requesting token"
	StatusCreatingSession Status = "creating session"
	StatusUploading       Status = "uploading"
	StatusCompleted       Status = "completed"
)

type StatusFunc func(Status)

type ProgressFunc = youtube.ProgressFunc

// TokenProvider yields a valid bearer token, performing an interactive grant
// when none is cached.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Client is the resumable upload protocol surface the orchestrator drives.
type Client interface {
	CreateSession(ctx context.Context, token string, meta youtube.Metadata, size int64, contentType string) (*youtube.Session, error)
	Transfer(ctx context.Context, session *youtube.Session, payload io.ReaderAt, onProgress youtube.ProgressFunc) (*ytapi.Video, error)
}
