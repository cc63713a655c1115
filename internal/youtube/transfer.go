package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	ytapi "google.golang.org/api/youtube/v3"

	"clipcast/pkg/httputil"
)

// ProgressFunc receives an integer upload percentage from 0 to 100. Values
// are monotonically non-decreasing within one transfer and reach 100 exactly
// when the transfer succeeds.
type ProgressFunc func(percent int)

type transferState int

const (
	stateTransferring transferState = iota
	stateCompleted
	stateFailed
)

// Transfer drives the payload to the session locator in windows of at most
// chunkSize bytes, one in flight at a time. The offset only ever advances on
// the provider's acknowledgment, never on the client's own arithmetic. A 308
// response means "more bytes expected"; any other 2xx carries the created
// video resource and ends the transfer.
func (c *Client) Transfer(ctx context.Context, session *Session, payload io.ReaderAt, onProgress ProgressFunc) (*ytapi.Video, error) {
	var (
		offset  int64
		state   = stateTransferring
		video   *ytapi.Video
		failure error
		lastPct = -1
	)

	report := func() {
		if onProgress == nil {
			return
		}
		pct := int(offset * 100 / session.Size)
		if pct > lastPct {
			lastPct = pct
			onProgress(pct)
		}
	}

	for state == stateTransferring {
		if offset >= session.Size {
			// The final chunk must answer with a success status. Running out
			// of bytes without one is a provider contract violation, not a
			// completed upload.
			state = stateFailed
			failure = &ProtocolError{Msg: "upload ended without a completion response"}
			break
		}

		window := session.Size - offset
		if window > chunkSize {
			window = chunkSize
		}

		slog.Debug("uploading chunk", "offset", offset, "length", window, "total", session.Size)

		chunk := io.NewSectionReader(payload, offset, window)
		next, done, err := c.putChunk(ctx, session, chunk, offset, window)
		switch {
		case err != nil:
			state = stateFailed
			failure = err
		case done != nil:
			state = stateCompleted
			video = done
			offset = session.Size
			report()
		case next <= offset:
			state = stateFailed
			failure = &ProtocolError{Msg: fmt.Sprintf("session did not advance past offset %d", offset)}
		default:
			offset = next
			// 100 is reserved for the success response; an acknowledged
			// final chunk without one is still not a completed upload.
			if offset < session.Size {
				report()
			}
		}
	}

	if state == stateFailed {
		return nil, failure
	}
	return video, nil
}

// putChunk submits one window. It returns the next acknowledged offset on a
// resume response, the finished video resource on a success response, or an
// error for anything else.
func (c *Client) putChunk(ctx context.Context, session *Session, chunk io.Reader, offset, length int64) (int64, *ytapi.Video, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, session.URL, chunk)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create chunk request: %w", err)
	}

	req.ContentLength = length
	req.Header.Set("Content-Type", session.ContentType)
	req.Header.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", offset, offset+length-1, session.Size))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to upload chunk: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusPermanentRedirect:
		// Resume requested: chunk accepted, more bytes expected.
		next := ackedOffset(resp.Header.Get("Range"), offset+length)
		httputil.Drain(resp.Body)
		return next, nil, nil

	case httputil.IsSuccess(resp.StatusCode):
		var video ytapi.Video
		if err := json.NewDecoder(resp.Body).Decode(&video); err != nil {
			return 0, nil, fmt.Errorf("failed to decode upload response: %w", err)
		}
		return session.Size, &video, nil

	default:
		return 0, nil, &TransferError{Status: resp.StatusCode, Body: httputil.ErrorBody(resp)}
	}
}

// ackedOffset parses a "Range: bytes=0-N" acknowledgment header. The
// provider's view of what it persisted wins over the window the client sent;
// fallback is used when no acknowledgment is present.
func ackedOffset(header string, fallback int64) int64 {
	end, ok := strings.CutPrefix(header, "bytes=0-")
	if !ok {
		return fallback
	}
	n, err := strconv.ParseInt(end, 10, 64)
	if err != nil {
		return fallback
	}
	return n + 1
}
