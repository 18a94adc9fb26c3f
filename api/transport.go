package api

import (
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/propdesk/propdesk/session"
)

// Middleware is one stage of the request pipeline. Stages compose into a
// single http.RoundTripper, so the attach and retry behavior is applied
// uniformly to every request and each stage stays unit-testable on its own.
type Middleware func(next http.RoundTripper) http.RoundTripper

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Chain wraps base with the given stages. The first stage is outermost: it
// sees the request first and the settled response last.
func Chain(base http.RoundTripper, stages ...Middleware) http.RoundTripper {
	rt := base
	for i := len(stages) - 1; i >= 0; i-- {
		rt = stages[i](rt)
	}
	return rt
}

// RequestID tags every outgoing request with an X-Request-ID header unless the
// caller already set one.
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("X-Request-ID") == "" {
				req = cloneWithHeader(req, "X-Request-ID", uuid.NewString())
			}
			return next.RoundTrip(req)
		})
	}
}

// Throttle paces outgoing requests through the limiter. A nil limiter
// disables pacing.
func Throttle(limiter *rate.Limiter) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if limiter != nil {
				if err := limiter.Wait(req.Context()); err != nil {
					return nil, err
				}
			}
			return next.RoundTrip(req)
		})
	}
}

// BearerAuth attaches the currently stored access token as a bearer
// credential. When no token is stored the request goes out unauthenticated and
// the server's 401 is handled upstream like any other expiry.
func BearerAuth(store session.Store) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if access, ok := store.Get(session.KeyAccessToken); ok && access != "" {
				req = cloneWithHeader(req, "Authorization", "Bearer "+access)
			}
			return next.RoundTrip(req)
		})
	}
}

// cloneWithHeader shallow-clones the request before mutating headers, per the
// RoundTripper contract.
func cloneWithHeader(req *http.Request, key, value string) *http.Request {
	clone := req.Clone(req.Context())
	clone.Header.Set(key, value)
	return clone
}
