// Package youtube implements a resumable upload client for the YouTube Data
// API: interactive OAuth credential handling, upload session negotiation, and
// the chunked transfer loop that drives a video payload to completion.
package youtube

import (
	"net/http"
	"time"
)

const (
	uploadURL  = "https://www.googleapis.com/upload/youtube/v3/videos"
	categoryID = "22" // People & Blogs

	// chunkSize balances per-request overhead against the memory held by a
	// window in flight. The final window is simply total-offset.
	chunkSize = 8 * 1024 * 1024
)

// Metadata describes the video a session is opened for.
type Metadata struct {
	Title       string
	Description string
	Tags        []string
	Privacy     string
	PublishAt   time.Time // zero means no scheduled publication
}

// Session is a provider-allocated resumable upload session, addressed by an
// opaque locator and sized to an exact byte count. It belongs to a single
// upload attempt and is never reused or persisted.
type Session struct {
	URL         string
	Size        int64
	ContentType string
}

// Client talks the resumable upload protocol. It holds no per-upload state.
type Client struct {
	httpClient *http.Client
	uploadURL  string
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		uploadURL:  uploadURL,
	}
}
