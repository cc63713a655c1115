package httputil

import (
	"io"
	"net/http"
	"strings"
)

// Error bodies are capped so a misbehaving server cannot balloon an error
// message; 64 KiB is far more than any API error payload needs.
const maxErrorBody = 64 * 1024

// IsSuccess reports whether status is any 2xx status code.
func IsSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

// ErrorBody reads a capped, trimmed response body for use in error messages.
func ErrorBody(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(body))
}

// Drain discards the remainder of a response body so the underlying
// connection can be reused.
func Drain(body io.Reader) {
	_, _ = io.Copy(io.Discard, body)
}
