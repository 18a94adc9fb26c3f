package token_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/propdesk/propdesk/token"
)

func signToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestDecode(t *testing.T) {
	t.Run("full claim set", func(t *testing.T) {
		exp := time.Now().Add(5 * time.Minute).Truncate(time.Second)
		raw := signToken(t, jwtlib.MapClaims{
			"user_id":         float64(42),
			"username":        "alice",
			"role":            "MANAGER",
			"organization_id": float64(7),
			"exp":             exp.Unix(),
		})

		claims, err := token.Decode(raw)
		require.NoError(t, err)
		require.Equal(t, "42", claims.Subject)
		require.Equal(t, "alice", claims.Username)
		require.Equal(t, token.RoleManager, claims.Role)
		require.Equal(t, "7", claims.OrganizationID)
		require.Equal(t, exp.Unix(), claims.ExpiresAt.Unix())
	})

	t.Run("sub claim preferred over user_id", func(t *testing.T) {
		raw := signToken(t, jwtlib.MapClaims{"sub": "user-9", "role": "OWNER"})
		claims, err := token.Decode(raw)
		require.NoError(t, err)
		require.Equal(t, "user-9", claims.Subject)
	})

	t.Run("missing role defaults to tenant", func(t *testing.T) {
		raw := signToken(t, jwtlib.MapClaims{"user_id": float64(1)})
		claims, err := token.Decode(raw)
		require.NoError(t, err)
		require.Equal(t, token.RoleTenant, claims.Role)
	})

	t.Run("unknown role is preserved", func(t *testing.T) {
		raw := signToken(t, jwtlib.MapClaims{"role": "JANITOR"})
		claims, err := token.Decode(raw)
		require.NoError(t, err)
		require.Equal(t, token.Role("JANITOR"), claims.Role)
		require.False(t, claims.Role.Known())
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := token.Decode("")
		require.ErrorIs(t, err, token.MalformedTokenErr)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := token.Decode("not-a-token")
		require.ErrorIs(t, err, token.MalformedTokenErr)
	})

	t.Run("truncated token", func(t *testing.T) {
		raw := signToken(t, jwtlib.MapClaims{"role": "TENANT"})
		_, err := token.Decode(raw[:len(raw)/2])
		require.ErrorIs(t, err, token.MalformedTokenErr)
	})
}

func TestParseRole(t *testing.T) {
	require.Equal(t, token.DefaultRole, token.ParseRole(""))
	require.Equal(t, token.RoleSuperAdmin, token.ParseRole("SUPER_ADMIN"))
	require.True(t, token.RoleMaintenance.Known())
	require.False(t, token.Role("INTERN").Known())
}
