// Package session holds the console's persisted authentication state: the
// access/refresh token pair and a couple of cached display attributes. It is
// the single shared mutable resource of the client; everything else derives
// from it.
package session

// Keys under which session state is persisted.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUsername     = "username"
	KeyRole         = "role"
)

// UserAttributes is a convenience cache of display attributes captured at
// login. It is never authoritative: the role used for authorization decisions
// is always re-derived from the access token.
type UserAttributes struct {
	Username string
	Role     string
}

// Store is the narrow interface over the persisted session state. A Set
// replaces both tokens together; a state holding only one of the pair is
// corrupt and must be cleared.
type Store interface {
	// Set persists both tokens, overwriting prior values. No validation is
	// performed on either token.
	Set(accessToken, refreshToken string) error

	// Get returns the value stored under key, if any.
	Get(key string) (string, bool)

	// SetUserAttributes caches non-authoritative display attributes.
	SetUserAttributes(attrs UserAttributes) error

	// Clear removes every session key. It is idempotent and safe to call on an
	// already-empty store.
	Clear() error
}
