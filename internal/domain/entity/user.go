package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleSales = "sales"
)

// ValidRole indica si el rol existe.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleSales
}

// User usuario del panel de reportes.
type User struct {
	ID                  string
	Email               string
	PasswordHash        string // bcrypt hash
	Name                string
	Role                string
	IsActive            bool
	FailedLoginAttempts int
	LockedUntil         *time.Time
	LastLogin           *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsLocked indica si la cuenta sigue bloqueada en now.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}
