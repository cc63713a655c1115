package youtube

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/pkg/browser"
	"golang.org/x/oauth2"
)

const consentTimeout = 5 * time.Minute

// BrowserGrant returns a GrantFunc that opens the provider's consent page in
// a browser and captures the authorization code on a localhost callback
// server at addr.
func BrowserGrant(addr string) GrantFunc {
	return func(ctx context.Context, config *oauth2.Config, force bool) (*oauth2.Token, error) {
		codeChan := make(chan string, 1)
		errChan := make(chan error, 1)

		listener, err := net.Listen("tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("failed to start callback server: %w", err)
		}

		server := &http.Server{
			ReadHeaderTimeout: 10 * time.Second,
		}

		server.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/callback" {
				http.NotFound(w, r)
				return
			}

			code := r.URL.Query().Get("code")
			if code == "" {
				errChan <- fmt.Errorf("consent denied: %s", r.URL.Query().Get("error"))
				_, _ = fmt.Fprintf(w, "<html><body><h1>Error</h1><p>No authorization code received.</p></body></html>")
				return
			}

			codeChan <- code
			_, _ = fmt.Fprintf(w, "<html><body><h1>Success!</h1><p>You can close this window and return to the terminal.</p></body></html>")
		})

		go func() {
			if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
				errChan <- err
			}
		}()

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()

		opts := []oauth2.AuthCodeOption{oauth2.AccessTypeOffline}
		if force {
			opts = append(opts, oauth2.ApprovalForce)
		}

		authURL := config.AuthCodeURL("state-token", opts...)
		fmt.Println("\nOpening browser for YouTube authentication...")
		fmt.Println("If the browser doesn't open, visit:\n" + authURL)

		_ = browser.OpenURL(authURL)

		select {
		case code := <-codeChan:
			token, err := config.Exchange(ctx, code)
			if err != nil {
				return nil, fmt.Errorf("failed to exchange code: %w", err)
			}
			return token, nil

		case err := <-errChan:
			return nil, err

		case <-ctx.Done():
			return nil, ctx.Err()

		case <-time.After(consentTimeout):
			return nil, fmt.Errorf("authentication timed out")
		}
	}
}
