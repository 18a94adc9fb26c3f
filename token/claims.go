package token

import (
	"strconv"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Claims holds the subset of access-token claims the console reads. The token
// is treated as an opaque credential everywhere else; only the role (and a few
// display attributes) are ever decoded out of it.
type Claims struct {
	Subject        string    // user id ("sub" or simplejwt's "user_id")
	Username       string    // custom claim added by the API's token serializer
	Role           Role      // custom claim; DefaultRole when absent
	OrganizationID string    // custom claim, may be empty
	ExpiresAt      time.Time // zero when the claim is absent
	IssuedAt       time.Time // zero when the claim is absent
}

// Decode parses a raw access token into its claims without verifying the
// signature. Verification is the issuing server's responsibility; the result
// is a UI routing hint, never an authorization proof.
func Decode(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, MalformedTokenErr
	}

	parsed, _, err := jwtlib.NewParser().ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return nil, MalformedTokenErr
	}

	mapClaims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, MalformedTokenErr
	}

	c := &Claims{}

	if sub, ok := mapClaims["sub"].(string); ok {
		c.Subject = sub
	} else if id, ok := mapClaims["user_id"].(float64); ok {
		c.Subject = strconv.FormatInt(int64(id), 10)
	}

	if username, ok := mapClaims["username"].(string); ok {
		c.Username = username
	}

	roleClaim, _ := mapClaims["role"].(string)
	c.Role = ParseRole(roleClaim)

	switch org := mapClaims["organization_id"].(type) {
	case string:
		c.OrganizationID = org
	case float64:
		c.OrganizationID = strconv.FormatInt(int64(org), 10)
	}

	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}

	return c, nil
}
