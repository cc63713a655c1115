package youtube

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/sync/singleflight"
)

// Scopes are the two OAuth scopes required to upload and manage videos.
var Scopes = []string{
	"https://www.googleapis.com/auth/youtube.upload",
	"https://www.googleapis.com/auth/youtube",
}

// GrantFunc runs an interactive consent flow and returns the granted token.
// force requests a consent prompt even if the user approved before.
type GrantFunc func(ctx context.Context, config *oauth2.Config, force bool) (*oauth2.Token, error)

// Auth holds the bearer credential for one application session. The
// credential lives in memory only; persisting a granted token across runs is
// the caller's business, via SetToken and Credential.
type Auth struct {
	config *oauth2.Config
	grant  GrantFunc
	group  singleflight.Group

	mu     sync.Mutex
	token  *oauth2.Token
	source oauth2.TokenSource
}

func NewAuth(clientID, clientSecret, redirectURL string, grant GrantFunc) *Auth {
	return &Auth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       Scopes,
			RedirectURL:  redirectURL,
		},
		grant: grant,
	}
}

// Ready reports whether an interactive grant can be attempted at all.
// Callers should disable upload actions while Ready is false.
func (a *Auth) Ready() bool {
	return a.config.ClientID != "" && a.config.ClientSecret != "" && a.grant != nil
}

// SetToken seeds the credential, e.g. from a token saved by a previous grant.
// The credential is replaced wholesale, never mutated in place.
func (a *Auth) SetToken(token *oauth2.Token) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
	a.source = a.config.TokenSource(context.Background(), token)
}

// Credential returns the current token, or nil if none has been granted.
func (a *Auth) Credential() *oauth2.Token {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

// Token returns a valid bearer token. A cached valid credential is returned
// as is. Once any grant has happened the token is refreshed silently;
// otherwise an interactive consent flow runs, with a forced approval prompt.
// Concurrent callers share a single in-flight grant so the user is never
// asked to consent twice.
func (a *Auth) Token(ctx context.Context) (string, error) {
	if !a.Ready() {
		return "", &AuthError{Err: errors.New("identity client not configured")}
	}

	a.mu.Lock()
	if a.token != nil && a.token.Valid() {
		access := a.token.AccessToken
		a.mu.Unlock()
		return access, nil
	}
	source := a.source
	a.mu.Unlock()

	if source != nil {
		token, err := source.Token()
		if err != nil {
			return "", &AuthError{Err: fmt.Errorf("failed to refresh token: %w", err)}
		}
		a.SetToken(token)
		return token.AccessToken, nil
	}

	v, err, _ := a.group.Do("grant", func() (any, error) {
		token, err := a.grant(ctx, a.config, true)
		if err != nil {
			return nil, err
		}
		a.SetToken(token)
		return token, nil
	})
	if err != nil {
		return "", &AuthError{Err: err}
	}

	return v.(*oauth2.Token).AccessToken, nil
}
