package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	ytapi "google.golang.org/api/youtube/v3"

	"clipcast/pkg/httputil"
)

// CreateSession negotiates a resumable upload session sized to exactly size
// bytes. The declared size and content type travel as transport-level hints
// separate from the metadata body so the provider can preallocate the
// session before any payload bytes arrive. The returned session locator
// comes from the Location response header.
func (c *Client) CreateSession(ctx context.Context, token string, meta Metadata, size int64, contentType string) (*Session, error) {
	video := &ytapi.Video{
		Snippet: &ytapi.VideoSnippet{
			Title:       meta.Title,
			Description: meta.Description,
			Tags:        filterTags(meta.Tags),
			CategoryId:  categoryID,
		},
		Status: &ytapi.VideoStatus{
			PrivacyStatus:           meta.Privacy,
			SelfDeclaredMadeForKids: false,
			ForceSendFields:         []string{"SelfDeclaredMadeForKids"},
		},
	}
	// publishAt is omitted entirely when unset; an explicit empty value
	// would mean something different to the provider.
	if !meta.PublishAt.IsZero() {
		video.Status.PublishAt = meta.PublishAt.UTC().Format(time.RFC3339)
	}

	body, err := json.Marshal(video)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	url := fmt.Sprintf("%s?uploadType=resumable&part=snippet,status", c.uploadURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create session request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("X-Upload-Content-Length", strconv.FormatInt(size, 10))
	req.Header.Set("X-Upload-Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request upload session: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !httputil.IsSuccess(resp.StatusCode) {
		return nil, &SessionError{Status: resp.StatusCode, Body: httputil.ErrorBody(resp)}
	}

	location := resp.Header.Get("Location")
	httputil.Drain(resp.Body)
	if location == "" {
		return nil, &SessionError{Status: resp.StatusCode, Err: ErrNoLocation}
	}

	return &Session{
		URL:         location,
		Size:        size,
		ContentType: contentType,
	}, nil
}

func filterTags(tags []string) []string {
	var filtered []string
	for _, tag := range tags {
		if tag != "" {
			filtered = append(filtered, tag)
		}
	}
	return filtered
}
