package stub

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/propdesk/propdesk/token"
)

// User is a seed account the stub can authenticate.
type User struct {
	ID             int
	Username       string
	Email          string
	PasswordHash   string
	Role           token.Role
	OrganizationID int
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func mustHash(password string) string {
	h, err := HashPassword(password)
	if err != nil {
		panic(err)
	}
	return h
}

// seedUsers covers one account per role; passwords match usernames with a
// "123" suffix (development only).
func seedUsers() []User {
	return []User{
		{ID: 1, Username: "admin", Email: "admin@propdesk.local", PasswordHash: mustHash("admin123"), Role: token.RoleSuperAdmin, OrganizationID: 1},
		{ID: 2, Username: "owner", Email: "owner@propdesk.local", PasswordHash: mustHash("owner123"), Role: token.RoleOwner, OrganizationID: 1},
		{ID: 3, Username: "manager", Email: "manager@propdesk.local", PasswordHash: mustHash("manager123"), Role: token.RoleManager, OrganizationID: 1},
		{ID: 4, Username: "tenant", Email: "tenant@propdesk.local", PasswordHash: mustHash("tenant123"), Role: token.RoleTenant, OrganizationID: 1},
		{ID: 5, Username: "tech", Email: "tech@propdesk.local", PasswordHash: mustHash("tech123"), Role: token.RoleMaintenance, OrganizationID: 1},
	}
}
