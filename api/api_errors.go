package api

import (
	"errors"
	"fmt"
)

var (
	// CredentialsRejectedErr is returned when the login exchange is refused.
	CredentialsRejectedErr = errors.New("invalid username or password")

	// SessionExpiredErr is the terminal auth failure: a 401 whose refresh
	// attempt failed (or could not be attempted). The session store has been
	// cleared by the time a caller sees it.
	SessionExpiredErr = errors.New("session expired")
)

// StatusError is any non-2xx API response outside the 401-refresh path. It is
// passed through to the calling command unchanged; display is the caller's
// concern.
type StatusError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}
