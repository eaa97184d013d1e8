// Package client translates typed domain calls into HTTP requests against
// the school administration API and decodes typed responses. It performs
// no retries and no caching (dropdown option lists excepted); every
// failure surfaces exactly once as a domain error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/simp-lee/schoolkit/internal/domain"
)

// TokenSource supplies the bearer token attached to every request.
// An empty token means "not logged in" and is not an error at this layer;
// authorization is enforced server-side.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client is the base HTTP client shared by all resources.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTokenSource sets the bearer token source.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithTimeout sets the request timeout on the underlying http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the structured logger used for request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Client for the given API base URL (including the
// versioned base path, e.g. "http://host:8080/api/v1").
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base url is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetJSON issues a GET against path and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any, fallback string) error {
	return c.do(ctx, http.MethodGet, path, nil, nil, "", fallback, out)
}

// PostJSON issues a POST with a JSON body and decodes the response into
// out (out may be nil).
func (c *Client) PostJSON(ctx context.Context, path string, body, out any, fallback string) error {
	b, err := json.Marshal(body)
	if err != nil {
		return domain.NewAppError(domain.CodeInternal, fallback, err)
	}
	return c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(b), "application/json", fallback, out)
}

// errorBody is the error payload shape returned by the API.
type errorBody struct {
	Message string `json:"message"`
}

// do issues one HTTP request and decodes the JSON response into out
// (out may be nil for operations without a response body, or a
// *json.RawMessage when the caller needs to sniff the shape).
//
// Any non-2xx status is classified into a domain error carrying the
// server-provided message when present, else fallback.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType, fallback string, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return domain.NewAppError(domain.CodeInternal, fallback, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return domain.NewAppError(domain.CodeInternal, fallback, err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return domain.NewAppError(domain.CodeRequest, fallback, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fallback
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil && strings.TrimSpace(eb.Message) != "" {
			msg = eb.Message
		}
		return domain.FromHTTPStatus(resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewAppError(domain.CodeRequest, fallback, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return domain.NewAppError(domain.CodeInternal, fallback, err)
	}
	return nil
}
