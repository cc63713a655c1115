package uploader

import (
	"context"
	"fmt"
	"log/slog"

	"clipcast/internal/youtube"
)

// Service runs uploads end to end: token, session, transfer. The three steps
// run strictly in sequence; a failure at any step terminates the attempt and
// a fresh attempt starts over from token acquisition.
type Service struct {
	tokens TokenProvider
	client Client
}

func NewService(tokens TokenProvider, client Client) *Service {
	return &Service{
		tokens: tokens,
		client: client,
	}
}

// Upload publishes one video. Callers must supply a non-empty payload and
// title; both callbacks are optional. The returned error preserves the most
// specific failure available from the step that broke.
func (s *Service) Upload(ctx context.Context, req Request, onStatus StatusFunc, onProgress ProgressFunc) (*Result, error) {
	emit := func(status Status) {
		if onStatus != nil {
			onStatus(status)
		}
	}

	emit(StatusAuthorizing)
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize: %w", err)
	}

	emit(StatusCreatingSession)
	meta := youtube.Metadata{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Privacy:     string(req.Visibility),
		PublishAt:   req.PublishAt,
	}
	session, err := s.client.CreateSession(ctx, token, meta, req.Size, req.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload session: %w", err)
	}

	emit(StatusUploading)
	slog.Info("uploading video", "title", req.Title, "size", req.Size)
	video, err := s.client.Transfer(ctx, session, req.Payload, onProgress)
	if err != nil {
		return nil, fmt.Errorf("failed to upload video: %w", err)
	}

	emit(StatusCompleted)
	return &Result{
		ID:  video.Id,
		URL: fmt.Sprintf("https://youtube.com/watch?v=%s", video.Id),
	}, nil
}
