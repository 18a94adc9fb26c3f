// Package gate decides whether the current session may render a given route.
// It is the client-side counterpart of the API's own authorization checks and
// is only ever a routing hint; the server re-checks every request.
package gate

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/propdesk/propdesk/session"
	"github.com/propdesk/propdesk/token"
)

// State is the result of inspecting the stored token against a route.
type State int

const (
	StateNoToken State = iota
	StateTokenInvalid
	StateRoleAllowed
	StateRoleDenied
)

// Decision tells the navigation layer what to do with the target route.
type Decision int

const (
	Render Decision = iota
	RedirectLogin
	RedirectUnauthorized
)

func (d Decision) String() string {
	switch d {
	case Render:
		return "render"
	case RedirectLogin:
		return "redirect:/login"
	case RedirectUnauthorized:
		return "redirect:/unauthorized"
	}
	return "unknown"
}

// RouteSpec is the static, per-route authorization declaration. An empty
// AllowedRoles means any authenticated session may render; Public routes skip
// the session check entirely.
type RouteSpec struct {
	Prefix       string
	AllowedRoles []token.Role
	Public       bool
}

// Outcome carries the evaluated state, the resulting decision, and the role
// that was read from the token (zero value unless the token decoded).
type Outcome struct {
	State    State
	Decision Decision
	Role     token.Role
}

// Gate evaluates route access against the session store. Evaluate is pure
// given (stored token, route table) and must be re-run on every navigation;
// nothing is cached between calls.
type Gate struct {
	store  session.Store
	routes []RouteSpec
}

func New(store session.Store, routes []RouteSpec) *Gate {
	return &Gate{store: store, routes: routes}
}

// Evaluate runs the route-guard state machine for a navigation target.
//
// No token → redirect to login. Token present but undecodable → clear the
// whole session and redirect to login silently (treated as logged out, never
// surfaced as an error). Token decodes → render when the route is
// unrestricted, the role is allow-listed, or the role is SUPER_ADMIN;
// otherwise redirect to the unauthorized boundary with the session intact.
func (g *Gate) Evaluate(route string) Outcome {
	spec := g.match(route)
	if spec != nil && spec.Public {
		return Outcome{State: StateRoleAllowed, Decision: Render}
	}

	access, ok := g.store.Get(session.KeyAccessToken)
	if !ok || access == "" {
		return Outcome{State: StateNoToken, Decision: RedirectLogin}
	}

	claims, err := token.Decode(access)
	if err != nil {
		log.Warn().Str("route", route).Msg("Stored access token undecodable, clearing session")
		if clearErr := g.store.Clear(); clearErr != nil {
			log.Err(clearErr).Msg("Failed to clear session store")
		}
		return Outcome{State: StateTokenInvalid, Decision: RedirectLogin}
	}

	role := claims.Role
	if spec == nil || len(spec.AllowedRoles) == 0 {
		return Outcome{State: StateRoleAllowed, Decision: Render, Role: role}
	}
	if role == token.RoleSuperAdmin {
		return Outcome{State: StateRoleAllowed, Decision: Render, Role: role}
	}
	for _, allowed := range spec.AllowedRoles {
		if role == allowed {
			return Outcome{State: StateRoleAllowed, Decision: Render, Role: role}
		}
	}
	return Outcome{State: StateRoleDenied, Decision: RedirectUnauthorized, Role: role}
}

// match returns the longest-prefix route spec for the target, or nil when no
// spec covers it.
func (g *Gate) match(route string) *RouteSpec {
	var best *RouteSpec
	for i := range g.routes {
		spec := &g.routes[i]
		if !coversRoute(route, spec.Prefix) {
			continue
		}
		if best == nil || len(spec.Prefix) > len(best.Prefix) {
			best = spec
		}
	}
	return best
}

// coversRoute reports whether prefix matches route on a path-segment
// boundary, so "/properties" covers "/properties/5" but not "/propertiesX".
func coversRoute(route, prefix string) bool {
	if !strings.HasPrefix(route, prefix) {
		return false
	}
	if len(route) == len(prefix) || strings.HasSuffix(prefix, "/") {
		return true
	}
	return route[len(prefix)] == '/'
}
