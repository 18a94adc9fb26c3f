package gate_test

import (
	"testing"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/propdesk/propdesk/gate"
	"github.com/propdesk/propdesk/session"
	"github.com/propdesk/propdesk/session/storefake"
	"github.com/propdesk/propdesk/token"
)

func storeWithRole(t *testing.T, role string) *storefake.FakeStore {
	t.Helper()
	claims := jwtlib.MapClaims{"user_id": float64(1), "username": "test"}
	if role != "" {
		claims["role"] = role
	}
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	store := storefake.NewFakeStore()
	require.NoError(t, store.Set(signed, "refresh-token"))
	return store
}

func TestGate_NoToken(t *testing.T) {
	g := gate.New(storefake.NewFakeStore(), gate.Routes())

	outcome := g.Evaluate("/dashboard")
	require.Equal(t, gate.StateNoToken, outcome.State)
	require.Equal(t, gate.RedirectLogin, outcome.Decision)
}

func TestGate_CorruptTokenClearsStore(t *testing.T) {
	store := storefake.NewFakeStore()
	require.NoError(t, store.Set("tampered-garbage", "refresh-token"))
	g := gate.New(store, gate.Routes())

	outcome := g.Evaluate("/properties")
	require.Equal(t, gate.StateTokenInvalid, outcome.State)
	require.Equal(t, gate.RedirectLogin, outcome.Decision)
	require.Zero(t, store.Len())
}

func TestGate_RoleAllowLists(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		route    string
		decision gate.Decision
	}{
		{"manager renders manager dashboard", "MANAGER", "/manager/dashboard", gate.Render},
		{"manager renders admin tenants screen", "MANAGER", "/tenants", gate.Render},
		{"manager denied tenant area", "MANAGER", "/tenant/payments", gate.RedirectUnauthorized},
		{"tenant renders tenant payments", "TENANT", "/tenant/payments", gate.Render},
		{"tenant denied admin dashboard", "TENANT", "/dashboard", gate.RedirectUnauthorized},
		{"tenant denied units", "TENANT", "/units", gate.RedirectUnauthorized},
		{"owner renders finance", "OWNER", "/finance", gate.Render},
		{"technician renders tech dashboard", "MAINTENANCE", "/tech/dashboard", gate.Render},
		{"technician denied manager area", "MAINTENANCE", "/manager/dashboard", gate.RedirectUnauthorized},
		{"missing role claim defaults to tenant", "", "/tenant/profile", gate.Render},
		{"missing role claim denied admin area", "", "/dashboard", gate.RedirectUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := gate.New(storeWithRole(t, tc.role), gate.Routes())
			require.Equal(t, tc.decision, g.Evaluate(tc.route).Decision)
		})
	}
}

func TestGate_SuperAdminBypassesEveryList(t *testing.T) {
	g := gate.New(storeWithRole(t, "SUPER_ADMIN"), gate.Routes())

	for _, route := range []string{"/dashboard", "/tenant/payments", "/manager/dashboard", "/tech/dashboard", "/units"} {
		outcome := g.Evaluate(route)
		require.Equal(t, gate.Render, outcome.Decision, route)
		require.Equal(t, token.RoleSuperAdmin, outcome.Role)
	}
}

func TestGate_PublicRoutesSkipSession(t *testing.T) {
	g := gate.New(storefake.NewFakeStore(), gate.Routes())

	require.Equal(t, gate.Render, g.Evaluate("/login").Decision)
	require.Equal(t, gate.Render, g.Evaluate("/unauthorized").Decision)
}

func TestGate_UnrestrictedRouteRendersWhenAuthenticated(t *testing.T) {
	store := storeWithRole(t, "TENANT")
	g := gate.New(store, gate.Routes())

	// No spec covers /settings; any authenticated session renders.
	require.Equal(t, gate.Render, g.Evaluate("/settings").Decision)

	// But it still demands a session.
	require.NoError(t, store.Clear())
	require.Equal(t, gate.RedirectLogin, g.Evaluate("/settings").Decision)
}

func TestGate_PrefixMatchesOnSegmentBoundary(t *testing.T) {
	g := gate.New(storeWithRole(t, "TENANT"), gate.Routes())

	// Sub-paths of an admin screen stay restricted.
	require.Equal(t, gate.RedirectUnauthorized, g.Evaluate("/properties/5").Decision)

	// A route that merely shares the prefix text is not covered by the
	// admin spec; it falls back to the unrestricted default.
	require.Equal(t, gate.Render, g.Evaluate("/propertiesX").Decision)
	require.Equal(t, gate.Render, g.Evaluate("/tenants-report").Decision)
}

func TestGate_DeniedLeavesSessionIntact(t *testing.T) {
	store := storeWithRole(t, "TENANT")
	g := gate.New(store, gate.Routes())

	require.Equal(t, gate.RedirectUnauthorized, g.Evaluate("/dashboard").Decision)
	_, ok := store.Get(session.KeyAccessToken)
	require.True(t, ok)
}
