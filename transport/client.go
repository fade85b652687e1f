// Package transport is the shared HTTP client the portal services speak
// through: three verbs (Get, Post, Put) over a JSON envelope carrying a
// success flag, an optional message, and a per-endpoint payload member.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenSource supplies the bearer token attached to requests. An empty
// return means the request goes out unauthenticated.
type TokenSource func() string

// Client is the REST client for the portal backend.
type Client struct {
	base   *url.URL
	httpc  *http.Client
	token  TokenSource
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		if httpc != nil {
			c.httpc = httpc
		}
	}
}

// WithTokenSource sets the bearer-token supplier, typically session.Token.
func WithTokenSource(src TokenSource) Option {
	return func(c *Client) {
		c.token = src
	}
}

// WithTimeout bounds each request. The zero default leaves requests without
// a deadline; a pending request then blocks only its own caller.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpc.Timeout = d
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Client for the given base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, &RequestError{Message: "invalid base URL", Err: err}
	}

	c := &Client{
		base:   base,
		httpc:  &http.Client{},
		logger: slog.Default().With("component", "transport"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get issues a GET request and unmarshals the named payload member into out.
func (c *Client) Get(ctx context.Context, path string, params url.Values, payloadKey string, out any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, payloadKey, out)
}

// Post issues a POST request with a JSON body and unmarshals the named
// payload member into out. out may be nil when the caller only needs the
// success/failure outcome.
func (c *Client) Post(ctx context.Context, path string, body any, payloadKey string, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, payloadKey, out)
}

// Put issues a PUT request with a JSON body and unmarshals the named payload
// member into out.
func (c *Client) Put(ctx context.Context, path string, body any, payloadKey string, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, payloadKey, out)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any, payloadKey string, out any) error {
	target := c.base.JoinPath(strings.Split(strings.Trim(path, "/"), "/")...)
	if len(params) > 0 {
		target.RawQuery = params.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Message: "encode request body", Err: err}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return &RequestError{Message: "build request", Err: err}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Error("request failed", "method", method, "path", path, "error", err)
		return &RequestError{Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Prefer the server's own message when the error body is an
		// envelope; callers surface it verbatim.
		msg := ""
		if env, envErr := decodeEnvelope(payload); envErr == nil {
			msg = env.message
		}
		c.logger.Error("request rejected", "method", method, "path", path, "status", resp.StatusCode)
		return &RequestError{Status: resp.StatusCode, Message: msg}
	}

	env, err := decodeEnvelope(payload)
	if err != nil {
		return &RequestError{Status: resp.StatusCode, Err: err}
	}

	if !env.success {
		return &APIError{Status: resp.StatusCode, Message: env.message}
	}

	if out == nil {
		return nil
	}

	found, err := env.extract(payloadKey, out)
	if err != nil {
		return &RequestError{Status: resp.StatusCode, Err: err}
	}
	if !found {
		// success=true with the payload missing is still a failed call
		// from the consumer's point of view.
		return &APIError{Status: resp.StatusCode, Message: env.message}
	}

	c.logger.Debug("request completed", "method", method, "path", path, "status", resp.StatusCode)
	return nil
}
