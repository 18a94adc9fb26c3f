package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/propdesk/propdesk/api"
	"github.com/propdesk/propdesk/session"
	"github.com/propdesk/propdesk/session/storefake"
	"github.com/propdesk/propdesk/token"
)

func signedToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

// countingBoundary records session-expired notifications.
type countingBoundary struct {
	calls atomic.Int64
}

func (b *countingBoundary) SessionExpired() { b.calls.Add(1) }

func TestClient_AttachesStoredToken(t *testing.T) {
	var seenAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]api.Property{})
	}))
	defer srv.Close()

	store := storefake.NewFakeStore()
	require.NoError(t, store.Set("the-access-token", "the-refresh-token"))
	client := api.New(srv.URL, store)

	_, err := client.Properties().List(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer the-access-token", seenAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var sawAuthHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuthHeader = r.Header["Authorization"]
		_ = json.NewEncoder(w).Encode([]api.Property{})
	}))
	defer srv.Close()

	client := api.New(srv.URL, storefake.NewFakeStore())

	_, err := client.Properties().List(context.Background())
	require.NoError(t, err)
	require.False(t, sawAuthHeader)
}

func TestClient_SetsRequestID(t *testing.T) {
	var requestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-ID")
		_ = json.NewEncoder(w).Encode([]api.Unit{})
	}))
	defer srv.Close()

	client := api.New(srv.URL, storefake.NewFakeStore())
	_, err := client.Units().List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, requestID)
}

func TestClient_RefreshAndReplayOn401(t *testing.T) {
	var propertyCalls, refreshCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/properties/", func(w http.ResponseWriter, r *http.Request) {
		propertyCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer new-access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode([]api.Property{{ID: 1, Name: "Marina Tower"}})
	})
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		// The refresh exchange skips the auth stages but still carries the
		// request-ID header like every other outgoing call.
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		var body struct {
			Refresh string `json:"refresh"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "refresh-1", body.Refresh)
		_ = json.NewEncoder(w).Encode(map[string]string{"access": "new-access"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := storefake.NewFakeStore()
	require.NoError(t, store.Set("stale-access", "refresh-1"))
	boundary := &countingBoundary{}
	client := api.New(srv.URL, store, api.WithBoundary(boundary))

	// The caller sees the replay's result, never the intermediate 401.
	properties, err := client.Properties().List(context.Background())
	require.NoError(t, err)
	require.Len(t, properties, 1)
	require.Equal(t, "Marina Tower", properties[0].Name)

	require.EqualValues(t, 2, propertyCalls.Load())
	require.EqualValues(t, 1, refreshCalls.Load())
	require.EqualValues(t, 0, boundary.calls.Load())

	// New access token persisted, refresh token untouched.
	access, _ := store.Get(session.KeyAccessToken)
	refresh, _ := store.Get(session.KeyRefreshToken)
	require.Equal(t, "new-access", access)
	require.Equal(t, "refresh-1", refresh)

	// Subsequent requests ride the refreshed token.
	_, err = client.Properties().List(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 3, propertyCalls.Load())
	require.EqualValues(t, 1, refreshCalls.Load())
}

func TestClient_NoRetryStormWhenReplayStillUnauthorized(t *testing.T) {
	var propertyCalls, refreshCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/properties/", func(w http.ResponseWriter, r *http.Request) {
		propertyCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]string{"access": "new-access"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := storefake.NewFakeStore()
	require.NoError(t, store.Set("stale-access", "refresh-1"))
	client := api.New(srv.URL, store)

	_, err := client.Properties().List(context.Background())

	// At most one refresh and one replay per original request; the replay's
	// 401 is surfaced untouched.
	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	require.EqualValues(t, 2, propertyCalls.Load())
	require.EqualValues(t, 1, refreshCalls.Load())
}

func TestClient_ReplayResendsRequestBody(t *testing.T) {
	var createCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/tenants/", func(w http.ResponseWriter, r *http.Request) {
		createCalls.Add(1)
		var in api.Tenant
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, "Fatima", in.Name)

		if r.Header.Get("Authorization") != "Bearer new-access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		in.ID = 5
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(in)
	})
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"access": "new-access"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := storefake.NewFakeStore()
	require.NoError(t, store.Set("stale-access", "refresh-1"))
	client := api.New(srv.URL, store)

	created, err := client.Tenants().Create(context.Background(), api.Tenant{Name: "Fatima", Phone: "050", Email: "f@example.com"})
	require.NoError(t, err)
	require.Equal(t, 5, created.ID)
	require.EqualValues(t, 2, createCalls.Load())
}

func TestClient_RefreshFailureClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cheques/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := storefake.NewFakeStore()
	require.NoError(t, store.Set("stale-access", "dead-refresh"))
	boundary := &countingBoundary{}
	client := api.New(srv.URL, store, api.WithBoundary(boundary))

	_, err := client.Cheques().List(context.Background())
	require.ErrorIs(t, err, api.SessionExpiredErr)
	require.Zero(t, store.Len())
	require.EqualValues(t, 1, boundary.calls.Load())
}

func TestClient_MissingRefreshTokenIsTerminal(t *testing.T) {
	var refreshCalls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/units/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := storefake.NewFakeStore()
	require.NoError(t, store.Set("stale-access", ""))
	boundary := &countingBoundary{}
	client := api.New(srv.URL, store, api.WithBoundary(boundary))

	_, err := client.Units().List(context.Background())
	require.ErrorIs(t, err, api.SessionExpiredErr)
	require.Zero(t, store.Len())
	require.EqualValues(t, 0, refreshCalls.Load())
	require.EqualValues(t, 1, boundary.calls.Load())
}

func TestClient_NonAuthFailuresPassThrough(t *testing.T) {
	var refreshCalls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/maintenance/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := storefake.NewFakeStore()
	require.NoError(t, store.Set("access", "refresh"))
	client := api.New(srv.URL, store)

	_, err := client.Maintenance().List(context.Background())
	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	require.EqualValues(t, 0, refreshCalls.Load())

	// Session untouched.
	access, _ := store.Get(session.KeyAccessToken)
	require.Equal(t, "access", access)
}

func TestClient_Login(t *testing.T) {
	accessToken := signedToken(t, jwtlib.MapClaims{
		"user_id":  float64(3),
		"username": "alice",
		"role":     "MANAGER",
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/token/", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds["username"] != "alice" || creds["password"] != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access": accessToken, "refresh": "refresh-1"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	t.Run("valid credentials", func(t *testing.T) {
		store := storefake.NewFakeStore()
		client := api.New(srv.URL, store)

		claims, err := client.Login(context.Background(), "alice", "pw")
		require.NoError(t, err)
		require.Equal(t, token.RoleManager, claims.Role)
		require.Equal(t, "alice", claims.Username)

		access, _ := store.Get(session.KeyAccessToken)
		refresh, _ := store.Get(session.KeyRefreshToken)
		username, _ := store.Get(session.KeyUsername)
		require.Equal(t, accessToken, access)
		require.Equal(t, "refresh-1", refresh)
		require.Equal(t, "alice", username)
	})

	t.Run("rejected credentials leave no state", func(t *testing.T) {
		store := storefake.NewFakeStore()
		client := api.New(srv.URL, store)

		_, err := client.Login(context.Background(), "alice", "wrong")
		require.ErrorIs(t, err, api.CredentialsRejectedErr)
		require.Zero(t, store.Len())
	})
}

func TestClient_Logout(t *testing.T) {
	store := storefake.NewFakeStore()
	require.NoError(t, store.Set("a", "r"))
	client := api.New("http://unused", store)

	require.NoError(t, client.Logout())
	require.Zero(t, store.Len())
	require.NoError(t, client.Logout())
}
