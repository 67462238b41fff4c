package identity

import "github.com/google/uuid"

// Role is an admin user role.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleFinance    Role = "finance"
	RoleSupport    Role = "support"
	RoleClient     Role = "client"
)

// User is an operator account. Users are provisioned through configuration
// and loaded once at startup; there is no user write path.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
}

// UserStore is the read-only lookup port used by the login flow.
type UserStore interface {
	FindByEmail(email string) (*User, bool)
}
