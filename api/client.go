// Package api is the single request pipeline every console call passes
// through. It owns the authentication contract: a bearer token is attached on
// the way out, and a 401 on the way back triggers at most one refresh and
// replay. The command layer never handles tokens directly.
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

	"golang.org/x/time/rate"

	"github.com/propdesk/propdesk/session"
)

// Client talks to the property-management API. All requests flow through the
// interceptor pipeline; use New to construct one.
type Client struct {
	baseURL    string
	store      session.Store
	boundary   Boundary
	limiter    *rate.Limiter
	base       http.RoundTripper
	timeout    time.Duration
	httpClient *http.Client
	bareClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBoundary sets the terminal-auth-outcome receiver.
func WithBoundary(b Boundary) Option {
	return func(c *Client) { c.boundary = b }
}

// WithLimiter paces outgoing requests.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithTransport replaces the base transport (primarily for tests).
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.base = rt }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New builds a Client over the given session store. baseURL includes the API
// prefix, e.g. "http://localhost:8000/api".
func New(baseURL string, store session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		store:    store,
		boundary: noopBoundary{},
		base:     http.DefaultTransport,
		timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	// Login and refresh exchanges bypass the auth pipeline but keep the
	// instrumentation and request-ID stages.
	c.bareClient = &http.Client{
		Timeout:   c.timeout,
		Transport: Chain(c.base, Instrument(), RequestID()),
	}

	refresher := NewRefresher(c.baseURL, c.bareClient)

	c.httpClient = &http.Client{
		Timeout: c.timeout,
		Transport: Chain(c.base,
			Instrument(),
			RequestID(),
			Throttle(c.limiter),
			RefreshRetry(c.store, refresher, c.boundary),
			BearerAuth(c.store),
		),
	}

	return c
}

// Store exposes the session store the client was built over.
func (c *Client) Store() session.Store {
	return c.store
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, in, out)
}

func (c *Client) patch(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPatch, path, in, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, SessionExpiredErr) {
			return SessionExpiredErr
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Method: method, Path: path, Body: string(raw)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
