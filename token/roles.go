package token

// Role represents the coarse-grained permission label carried in the access
// token's "role" claim. It gates client-side routing only; the API re-checks
// authorization on every request.
type Role string

const (
	RoleSuperAdmin  Role = "SUPER_ADMIN"
	RoleOwner       Role = "OWNER"
	RoleManager     Role = "MANAGER"
	RoleTenant      Role = "TENANT"
	RoleMaintenance Role = "MAINTENANCE"
)

// DefaultRole is applied whenever a token carries no role claim. Defaulting to
// the least-privileged role is a deliberate fail-safe.
const DefaultRole = RoleTenant

// ParseRole maps a raw role claim to a Role. An empty claim falls back to
// DefaultRole; unknown values are preserved so route allow-lists simply never
// match them.
func ParseRole(raw string) Role {
	if raw == "" {
		return DefaultRole
	}
	return Role(raw)
}

// Known reports whether the role is one of the fixed set the API issues.
func (r Role) Known() bool {
	switch r {
	case RoleSuperAdmin, RoleOwner, RoleManager, RoleTenant, RoleMaintenance:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
