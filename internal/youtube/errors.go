package youtube

import (
	"errors"
	"fmt"
)

// ErrNoLocation marks a successful negotiation response that carried no
// session locator header.
var ErrNoLocation = errors.New("response missing session location header")

// AuthError reports that no bearer credential could be obtained: the client
// is not configured, the consent flow failed, or the user denied access.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return "authorization failed: " + e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// SessionError reports a rejected or malformed session negotiation response.
type SessionError struct {
	Status int
	Body   string
	Err    error
}

func (e *SessionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("session negotiation failed with status %d: %s", e.Status, e.Err)
	}
	return fmt.Sprintf("session negotiation failed with status %d: %s", e.Status, e.Body)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// TransferError reports a chunk upload rejected by the provider.
type TransferError struct {
	Status int
	Body   string
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("chunk upload failed with status %d: %s", e.Status, e.Body)
}

// ProtocolError reports a provider response sequence that violates the
// resumable upload contract.
type ProtocolError struct {
	Msg string
}

func (e *ProtocolError) Error() string {
	return "protocol violation: " + e.Msg
}
