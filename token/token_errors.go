package token

import "errors"

var (
	MalformedTokenErr = errors.New("malformed access token")
)
