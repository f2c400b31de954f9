package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

// DefaultCallbackAddr is where the consent redirect lands.
const DefaultCallbackAddr = "localhost:8080"

// OAuth2Config holds OAuth2 configuration.
type OAuth2Config struct {
	ClientID     string
	ClientSecret string
	// TokenFile caches the token between runs. Empty disables caching.
	TokenFile string
	// CallbackAddr defaults to DefaultCallbackAddr.
	CallbackAddr string
	// OpenURL presents the consent URL to the user.
	OpenURL func(url string)
}

func oauthConfig(clientID, clientSecret string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{sheets.SpreadsheetsScope},
	}
}

// AuthenticateOAuth2Interactive runs the consent flow through a local
// callback server and returns a token with a refresh token.
func AuthenticateOAuth2Interactive(ctx context.Context, config OAuth2Config) (*oauth2.Token, error) {
	addr := config.CallbackAddr
	if addr == "" {
		addr = DefaultCallbackAddr
	}
	oc := oauthConfig(config.ClientID, config.ClientSecret)
	oc.RedirectURL = "http://" + addr + "/callback"
	state := uuid.NewString()

	type result struct {
		code string
		err  error
	}
	results := make(chan result, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var res result
		switch {
		case q.Get("state") != state:
			res.err = errors.New("oauth callback state mismatch")
		case q.Get("code") == "":
			res.err = fmt.Errorf("no authorization code received: %s", q.Get("error"))
		default:
			res.code = q.Get("code")
		}
		msg := "Authentication successful. You can close this window."
		if res.err != nil {
			msg = "Authentication failed: " + res.err.Error()
		}
		_, _ = fmt.Fprintf(w, "<html><body><p>%s</p></body></html>", html.EscapeString(msg))
		select {
		case results <- res:
		default:
		}
	})

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start callback server: %w", err)
	}
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() { _ = server.Serve(ln) }()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	authURL := oc.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	if config.OpenURL != nil {
		config.OpenURL(authURL)
	} else {
		slog.Info("Visit this URL to authorize Google Sheets access", "url", authURL)
	}

	var res result
	select {
	case res = <-results:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(5 * time.Minute):
		return nil, errors.New("authentication timeout - no response received within 5 minutes")
	}
	if res.err != nil {
		return nil, res.err
	}

	token, err := oc.Exchange(ctx, res.code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if config.TokenFile != "" {
		if err := SaveToken(config.TokenFile, token); err != nil {
			slog.Warn("Failed to save token to file", "error", err, "file", config.TokenFile)
		}
	}
	return token, nil
}

// LoadToken loads a token from file.
func LoadToken(tokenFile string) (*oauth2.Token, error) {
	data, err := os.ReadFile(tokenFile) // #nosec G304
	if err != nil {
		return nil, err
	}
	token := &oauth2.Token{}
	if err := json.Unmarshal(data, token); err != nil {
		return nil, fmt.Errorf("parsing token file: %w", err)
	}
	return token, nil
}

// SaveToken atomically writes token to path with owner-only permissions.
func SaveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return os.Chmod(path, 0600)
}

// GetOrCreateToken returns the cached token, refreshed if needed, or runs
// the consent flow.
func GetOrCreateToken(ctx context.Context, config OAuth2Config) (*oauth2.Token, error) {
	if config.TokenFile != "" {
		token, err := LoadToken(config.TokenFile)
		if err == nil {
			return refreshIfNeeded(ctx, config, token)
		}
		slog.Debug("No cached sheets token", "error", err)
	}
	return AuthenticateOAuth2Interactive(ctx, config)
}

func refreshIfNeeded(ctx context.Context, config OAuth2Config, token *oauth2.Token) (*oauth2.Token, error) {
	if token.Valid() {
		return token, nil
	}

	fresh, err := oauthConfig(config.ClientID, config.ClientSecret).TokenSource(ctx, token).Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	if config.TokenFile != "" {
		if err := SaveToken(config.TokenFile, fresh); err != nil {
			slog.Warn("Failed to save refreshed token", "error", err)
		}
	}
	return fresh, nil
}
