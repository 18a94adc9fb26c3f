package gate

import "github.com/propdesk/propdesk/token"

// Routes is the console's route → allowed-roles table. Admin screens are open
// to SUPER_ADMIN, OWNER and MANAGER; the role-specific areas each have a
// single role (SUPER_ADMIN bypasses every list).
func Routes() []RouteSpec {
	adminRoles := []token.Role{token.RoleSuperAdmin, token.RoleOwner, token.RoleManager}

	return []RouteSpec{
		{Prefix: "/login", Public: true},
		{Prefix: "/unauthorized", Public: true},

		{Prefix: "/dashboard", AllowedRoles: adminRoles},
		{Prefix: "/properties", AllowedRoles: adminRoles},
		{Prefix: "/tenants", AllowedRoles: adminRoles},
		{Prefix: "/finance", AllowedRoles: adminRoles},
		{Prefix: "/maintenance", AllowedRoles: adminRoles},
		{Prefix: "/units", AllowedRoles: adminRoles},

		{Prefix: "/tenant/", AllowedRoles: []token.Role{token.RoleTenant}},
		{Prefix: "/manager/", AllowedRoles: []token.Role{token.RoleManager}},
		{Prefix: "/tech/", AllowedRoles: []token.Role{token.RoleMaintenance}},
	}
}
