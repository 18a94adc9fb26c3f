package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/propdesk/propdesk/session"
	"github.com/propdesk/propdesk/token"
)

type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login exchanges credentials for a token pair against POST /token/ and
// persists the pair plus a cached username/role attribute. Any non-2xx answer
// maps to CredentialsRejectedErr with no session state change.
func (c *Client) Login(ctx context.Context, username, password string) (*token.Claims, error) {
	payload, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return nil, fmt.Errorf("encode login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token/", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.bareClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login call: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, CredentialsRejectedErr
	}

	var pair tokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		return nil, fmt.Errorf("login response missing token pair")
	}

	claims, err := token.Decode(pair.Access)
	if err != nil {
		return nil, fmt.Errorf("issued access token unreadable: %w", err)
	}

	if err := c.store.Set(pair.Access, pair.Refresh); err != nil {
		return nil, fmt.Errorf("persist token pair: %w", err)
	}
	attrs := session.UserAttributes{Username: claims.Username, Role: claims.Role.String()}
	if attrs.Username == "" {
		attrs.Username = username
	}
	if err := c.store.SetUserAttributes(attrs); err != nil {
		return nil, fmt.Errorf("persist user attributes: %w", err)
	}

	log.Info().Str("username", attrs.Username).Str("role", claims.Role.String()).Msg("Logged in")
	return claims, nil
}

// Logout clears the whole session. It never fails against an already-empty
// store.
func (c *Client) Logout() error {
	return c.store.Clear()
}
