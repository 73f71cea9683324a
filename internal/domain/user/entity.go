package user

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"    // Manages employees, approves requests
	RoleEmployee Role = "EMPLOYEE" // Regular employee
)

// ParseRole maps an untrusted role string onto the closed enum.
// Anything unknown is rejected rather than passed through.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleEmployee:
		return Role(s), true
	}
	return "", false
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash *string
	Role         Role
	Department   *string
	Phone        *string
	JoiningDate  *time.Time
	OAuthGoogle  *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user can manage employees and approve requests
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
