// Package api wraps the BakedBliss REST backend with a thin JSON client.
// Every request carries the stored bearer token when one exists; a 401
// from any non-auth endpoint invalidates the session.
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

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

var (
	// ErrNetwork marks transport-level failures (timeouts included).
	ErrNetwork = errors.New("network error")

	// ErrSessionExpired is returned when a non-auth endpoint answers 401.
	ErrSessionExpired = errors.New("session expired")
)

// APIError carries a server-reported business error.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// CredentialSource yields the current bearer token, "" when signed out.
type CredentialSource interface {
	Token() string
}

type Client struct {
	baseURL        string
	httpClient     *http.Client
	creds          CredentialSource
	onUnauthorized func()
	limiter        *rate.Limiter
	logger         zerolog.Logger
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client; tests use this.
	HTTPClient  *http.Client
	Credentials CredentialSource
	// OnUnauthorized runs when a non-auth endpoint answers 401,
	// before ErrSessionExpired is returned to the caller.
	OnUnauthorized func()
	Logger         zerolog.Logger
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("BaseURL is required")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:     httpClient,
		creds:          cfg.Credentials,
		onUnauthorized: cfg.OnUnauthorized,
		limiter:        rate.NewLimiter(rate.Limit(20), 40),
		logger:         cfg.Logger,
	}, nil
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodDelete, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		if token := c.creds.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().
			Str("request_id", requestID).
			Str("method", method).
			Str("path", path).
			Err(err).
			Msg("Request failed")
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrNetwork, err)
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Request completed")

	if resp.StatusCode == http.StatusUnauthorized && !strings.Contains(path, "/auth/") {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrSessionExpired
	}

	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Message: extractMessage(raw)}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// extractMessage pulls the human-readable message out of an error body:
// response.message first, then the first entry of response.errors.
func extractMessage(raw []byte) string {
	var body struct {
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	if len(body.Errors) > 0 {
		return body.Errors[0]
	}
	return ""
}
