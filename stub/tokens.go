package stub

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

var invalidTokenErr = errors.New("token not valid")

// TokenIssuer mints and verifies the HS256 token pairs the stub hands out.
// The claim layout mirrors the real API's token serializer: user_id, username,
// role, organization_id on top of the registered claims.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenIssuer(secret []byte, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (i *TokenIssuer) mint(u *User, tokenType string, ttl time.Duration) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"token_type":      tokenType,
		"jti":             uuid.NewString(),
		"user_id":         u.ID,
		"username":        u.Username,
		"role":            u.Role.String(),
		"organization_id": u.OrganizationID,
		"iat":             now.Unix(),
		"exp":             now.Add(ttl).Unix(),
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// IssuePair mints a fresh access/refresh pair for the user.
func (i *TokenIssuer) IssuePair(u *User) (access, refresh string, err error) {
	if access, err = i.mint(u, "access", i.accessTTL); err != nil {
		return "", "", err
	}
	if refresh, err = i.mint(u, "refresh", i.refreshTTL); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// IssueAccess mints an access token with an explicit TTL. Negative TTLs are
// allowed so tests can hand out already-expired tokens.
func (i *TokenIssuer) IssueAccess(u *User, ttl time.Duration) (string, error) {
	return i.mint(u, "access", ttl)
}

func (i *TokenIssuer) verify(raw, wantType string) (jwtlib.MapClaims, error) {
	parsed, err := jwtlib.ParseWithClaims(raw, jwtlib.MapClaims{}, func(t *jwtlib.Token) (any, error) {
		if t.Method != jwtlib.SigningMethodHS256 {
			return nil, invalidTokenErr
		}
		return i.secret, nil
	}, jwtlib.WithTimeFunc(func() time.Time { return NowTimeFunc() }))
	if err != nil || !parsed.Valid {
		return nil, invalidTokenErr
	}
	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, invalidTokenErr
	}
	if tokenType, _ := claims["token_type"].(string); tokenType != wantType {
		return nil, invalidTokenErr
	}
	return claims, nil
}

// VerifyAccess validates an access token and returns its claims.
func (i *TokenIssuer) VerifyAccess(raw string) (jwtlib.MapClaims, error) {
	return i.verify(raw, "access")
}

// VerifyRefresh validates a refresh token and returns the user id it was
// minted for.
func (i *TokenIssuer) VerifyRefresh(raw string) (int, error) {
	claims, err := i.verify(raw, "refresh")
	if err != nil {
		return 0, err
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, invalidTokenErr
	}
	return int(id), nil
}
