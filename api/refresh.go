package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/propdesk/propdesk/session"
)

// Boundary receives terminal authentication outcomes. It is the console's
// stand-in for the browser's hard redirect to the login page; the CLI wires it
// to user-facing messaging, tests wire it to assertions.
type Boundary interface {
	SessionExpired()
}

// BoundaryFunc adapts a plain function to the Boundary interface.
type BoundaryFunc func()

func (f BoundaryFunc) SessionExpired() { f() }

type noopBoundary struct{}

func (noopBoundary) SessionExpired() {}

// Refresher exchanges a refresh token for a new access token against
// POST /token/refresh/. It deliberately owns a bare transport: the refresh
// call itself must never pass back through the auth pipeline.
type Refresher struct {
	refreshURL string
	client     *http.Client
}

func NewRefresher(baseURL string, client *http.Client) *Refresher {
	if client == nil {
		client = &http.Client{}
	}
	return &Refresher{refreshURL: baseURL + "/token/refresh/", client: client}
}

// Refresh returns a new access token. The refresh token is not rotated by the
// server; the caller keeps using the one it already holds.
func (r *Refresher) Refresh(ctx context.Context, refreshToken string) (string, error) {
	payload, err := json.Marshal(map[string]string{"refresh": refreshToken})
	if err != nil {
		return "", fmt.Errorf("encode refresh payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.refreshURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("refresh call: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("refresh rejected with status %d", resp.StatusCode)
	}

	var body struct {
		Access string `json:"access"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}
	if body.Access == "" {
		return "", fmt.Errorf("refresh response missing access token")
	}
	return body.Access, nil
}

// RefreshRetry handles the expired-token contract: the first 401 seen for a
// request triggers exactly one refresh and, on success, one replay of the
// original request. The caller only ever observes the settled outcome, never
// the intermediate 401 or the refresh mechanics.
//
// Concurrent 401s each run their own refresh; the last successful one wins in
// the store. The stage sits outside BearerAuth, so the replay picks up the
// freshly stored token on its way back through the pipeline.
func RefreshRetry(store session.Store, refresher *Refresher, boundary Boundary) Middleware {
	if boundary == nil {
		boundary = noopBoundary{}
	}
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripFunc(func(req *http.Request) (*http.Response, error) {
			resp, err := next.RoundTrip(req)
			if err != nil || resp.StatusCode != http.StatusUnauthorized {
				return resp, err
			}

			// A request whose body cannot be re-issued cannot be replayed.
			if req.Body != nil && req.GetBody == nil {
				return resp, nil
			}

			refreshToken, ok := store.Get(session.KeyRefreshToken)
			if !ok || refreshToken == "" {
				drainAndClose(resp.Body)
				expireSession(store, boundary)
				return nil, SessionExpiredErr
			}

			access, refreshErr := refresher.Refresh(req.Context(), refreshToken)
			if refreshErr != nil {
				log.Warn().Err(refreshErr).Msg("Token refresh failed, session terminated")
				refreshTotal.WithLabelValues("failure").Inc()
				drainAndClose(resp.Body)
				expireSession(store, boundary)
				return nil, fmt.Errorf("%w: %s", SessionExpiredErr, refreshErr)
			}
			refreshTotal.WithLabelValues("success").Inc()

			// Persist the new access token before the replay; the refresh
			// token is left untouched (the server does not rotate it).
			if err := store.Set(access, refreshToken); err != nil {
				drainAndClose(resp.Body)
				return nil, fmt.Errorf("persist refreshed token: %w", err)
			}

			drainAndClose(resp.Body)
			replaysTotal.Inc()

			replay := req.Clone(req.Context())
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, fmt.Errorf("rewind request body: %w", err)
				}
				replay.Body = body
			}
			replay.Header.Set("Authorization", "Bearer "+access)
			return next.RoundTrip(replay)
		})
	}
}

func expireSession(store session.Store, boundary Boundary) {
	if err := store.Clear(); err != nil {
		log.Err(err).Msg("Failed to clear session store")
	}
	boundary.SessionExpired()
}

func drainAndClose(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
