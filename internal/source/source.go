// Package source resolves upload payloads from client storage: local files
// and Cloud Storage objects. A payload's size and content are fixed once
// opened; the upload session is sized against them.
package source

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// Payload is an opened upload payload with a known, fixed byte length.
type Payload struct {
	io.ReaderAt

	Name        string
	Size        int64
	ContentType string

	closer io.Closer
}

func (p *Payload) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

var videoContentTypes = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".avi":  "video/x-msvideo",
}

// ContentType guesses a media type from the file extension, falling back to
// an opaque binary type the provider sniffs server-side.
func ContentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := videoContentTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

func openLocal(path string) (*Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open video file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat video file: %w", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%s is a directory, not a video file", path)
	}

	return &Payload{
		ReaderAt:    f,
		Name:        filepath.Base(path),
		Size:        info.Size(),
		ContentType: ContentType(path),
		closer:      f,
	}, nil
}
