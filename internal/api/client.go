// Package api is the HTTP client for the shop back-office REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adroitalarm/shopdesk/internal/common"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://shop.adroitalarm.com.au/api"

// loginPath is exempt from token checks and session-expiry handling.
const loginPath = "/login"

// TokenSource supplies the bearer token for each request. An empty token
// means the user is signed out.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource for a fixed token.
type StaticToken string

// Token implements TokenSource.
func (s StaticToken) Token(context.Context) (string, error) {
	return string(s), nil
}

// Client talks to the back-office API.
type Client struct {
	baseURL        *url.URL
	httpClient     *http.Client
	tokens         TokenSource
	logger         *slog.Logger
	onUnauthorized func()
	retry          common.RetryOptions
	newRequestID   func() string

	mu           sync.Mutex
	unauthorized bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithUnauthorizedHandler registers the session-expiry hook. It runs once
// for every request the server rejects with 401, except /login.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// WithRetry configures retries for idempotent requests.
func WithRetry(opts common.RetryOptions) Option {
	return func(c *Client) {
		c.retry = opts
	}
}

// NewClient creates a client for baseURL. An empty baseURL selects
// DefaultBaseURL.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid api.base_url %q: %w", common.ErrInvalidConfig, baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: api.base_url must be http or https, got %q", common.ErrInvalidConfig, baseURL)
	}
	if tokens == nil {
		tokens = StaticToken("")
	}

	c := &Client{
		baseURL: u,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
		logger: slog.Default(),
		retry: common.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 250 * time.Millisecond,
			MaxDelay:     5 * time.Second,
			Multiplier:   2,
		},
		newRequestID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "api")
	return c, nil
}

// SessionExpired reports whether any request has been rejected with 401
// since the last successful login.
func (c *Client) SessionExpired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unauthorized
}

// ResetSession clears the expired flag after a new login.
func (c *Client) ResetSession() {
	c.mu.Lock()
	c.unauthorized = false
	c.mu.Unlock()
}

// envelope captures the success/message wrapper most endpoints use.
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

// do performs a request and decodes a successful JSON body into out. GETs
// are retried on transport errors, 429 and 5xx.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	token := ""
	if path != loginPath {
		t, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("reading credentials: %w", err)
		}
		if t == "" {
			return common.ErrMissingToken
		}
		token = t
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	attempt := func() error {
		return c.roundTrip(ctx, method, path, query, token, payload, out)
	}
	if method != http.MethodGet {
		return unwrapAttempt(attempt())
	}
	return unwrapAttempt(common.WithRetry(ctx, attempt, c.retry))
}

// unwrapAttempt strips the retry classification from a final error.
func unwrapAttempt(err error) error {
	if retryable, ok := err.(*common.RetryableError); ok {
		return retryable.Err
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, token string, payload []byte, out any) error {
	u := *c.baseURL
	u.Path = u.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return &common.RetryableError{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	requestID := c.newRequestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return &common.RetryableError{Err: ctx.Err()}
		}
		return &common.RetryableError{
			Err:       fmt.Errorf("%w: %s %s: %w", common.ErrRequestFailed, method, path, err),
			Retryable: true,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &common.RetryableError{
			Err:       fmt.Errorf("%w: reading response: %w", common.ErrRequestFailed, err),
			Retryable: true,
		}
	}

	c.logger.Debug("API request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized && path != loginPath {
		c.expireSession(method, path)
		return &common.RetryableError{Err: fmt.Errorf("%s %s: %w", method, path, common.ErrUnauthorized)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newError(method, path, resp.StatusCode, requestID, data)
		return &common.RetryableError{Err: apiErr, Retryable: apiErr.Temporary()}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Success != nil && !*env.Success {
		return &common.RetryableError{Err: &Error{
			Method:    method,
			Path:      path,
			Status:    resp.StatusCode,
			Message:   env.Message,
			RequestID: requestID,
		}}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &common.RetryableError{Err: fmt.Errorf("%w: decoding %s response: %w", common.ErrRequestFailed, path, err)}
	}
	return nil
}

func (c *Client) expireSession(method, path string) {
	c.mu.Lock()
	c.unauthorized = true
	c.mu.Unlock()

	c.logger.Warn("Session rejected by server", "method", method, "path", path)
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}
