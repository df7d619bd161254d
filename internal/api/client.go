// Package api provides the HTTP client for the MoneyTrackr REST API. It
// attaches the bearer token to every request and recovers a single 401 per
// request via the token refresh coordinator.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"moneytrack/internal/auth"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

// ErrUnauthorized indicates the server rejected the request's credentials
// even after a refresh attempt.
var ErrUnauthorized = errors.New("api: unauthorized")

// ServerError is a non-2xx response with a structured error body.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: server returned %d", e.Status)
}

// Client talks to the MoneyTrackr API.
type Client struct {
	baseURL   string
	http      *http.Client
	tokens    *auth.Store
	refresher *auth.Refresher
	timeout   time.Duration
	log       *logrus.Logger
	validate  *validator.Validate
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the debug logger.
func WithLogger(log *logrus.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithHTTPClient swaps the underlying transport, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a client for the given base URL and credential store.
// The client owns its refresh coordinator: concurrent 401s across any of
// its requests collapse into one refresh call.
func NewClient(baseURL string, tokens *auth.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{},
		tokens:   tokens,
		timeout:  defaultTimeout,
		log:      logrus.StandardLogger(),
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.refresher = auth.NewRefresher(tokens, func(ctx context.Context, refreshToken string) (string, error) {
		return c.Refresh(ctx, refreshToken)
	}, c.log)
	return c
}

// Refresher exposes the coordinator for callers that want to validate the
// session up front.
func (c *Client) Refresher() *auth.Refresher { return c.refresher }

// do sends one JSON request and decodes the response into out (which may
// be nil). On a 401 that has not yet been retried it obtains a fresh token
// and replays the identical request exactly once; a second 401 propagates.
// Every other failure propagates untouched.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encoding request: %w", err)
		}
	}

	retried := false
	token := c.tokens.Access()
	for {
		status, respBody, err := c.send(ctx, method, path, payload, token)
		if err != nil {
			return err
		}

		if status == http.StatusUnauthorized && !retried {
			retried = true
			newToken, refreshErr := c.refresher.ForceRefresh(ctx)
			if refreshErr != nil {
				// Session is gone; propagate the original failure.
				c.log.WithField("path", path).Debug("refresh failed, propagating 401")
				return fmt.Errorf("%w: %s", ErrUnauthorized, serverMessage(respBody))
			}
			token = newToken
			continue
		}
		if status == http.StatusUnauthorized {
			return fmt.Errorf("%w: %s", ErrUnauthorized, serverMessage(respBody))
		}

		if status < 200 || status >= 300 {
			return &ServerError{Status: status, Message: serverMessage(respBody)}
		}

		if out != nil {
			if err := json.Unmarshal(respBody, out); err != nil {
				return fmt.Errorf("api: decoding response: %w", err)
			}
		}
		return nil
	}
}

// send performs one HTTP round trip. The token is passed explicitly so the
// retry uses the refreshed one, not a racy re-read of the store.
func (c *Client) send(ctx context.Context, method, path string, payload []byte, token string) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("api: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.WithFields(logrus.Fields{"method": method, "path": path}).Debug("sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("api: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return 0, nil, fmt.Errorf("api: reading response: %w", err)
	}

	c.log.WithFields(logrus.Fields{"path": path, "status": resp.StatusCode}).Debug("response received")
	return resp.StatusCode, respBody, nil
}

func jsonBody(v interface{}) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("api: encoding request: %w", err)
	}
	return payload, nil
}

func unmarshalBody(body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("api: decoding response: %w", err)
	}
	return nil
}

// serverMessage pulls the human-readable message out of an error body.
// The server is inconsistent about the key it uses.
func serverMessage(body []byte) string {
	var m struct {
		Error   string `json:"error"`
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &m); err != nil {
		return ""
	}
	switch {
	case m.Error != "":
		return m.Error
	case m.Detail != "":
		return m.Detail
	default:
		return m.Message
	}
}
