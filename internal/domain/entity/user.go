package entity

import "time"

// Role identifies what a user is allowed to do in the claim workflow.
type Role string

const (
	RoleLecturer    Role = "Lecturer"
	RoleCoordinator Role = "Coordinator"
	RoleManager     Role = "Manager"
)

// IsValid returns true if the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleLecturer, RoleCoordinator, RoleManager:
		return true
	}
	return false
}

// CanApprove reports whether the role may act on pending claims.
func (r Role) CanApprove() bool {
	return r == RoleCoordinator || r == RoleManager
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// User is an account in the claim system. Immutable after creation in this
// scope; authentication flows live outside the core.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
