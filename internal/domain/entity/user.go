package entity

import "time"

// Valid roles for User.
const (
	RoleTeacher    = "teacher"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Valid statuses for User. Accounts are never hard-deleted.
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

// User an educator or administrator.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash
	FullName     string
	Role         string
	Status       string
	School       string
	County       string
	Subjects     []string
	LastLogin    *time.Time
	LoginCount   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds an administrative role.
func (u *User) IsAdmin() bool {
	return IsAdminRole(u.Role)
}

// IsAdminRole reports whether role is admin or super_admin.
func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleTeacher, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// ValidUserStatus reports whether status is one of the known statuses.
func ValidUserStatus(status string) bool {
	switch status {
	case UserStatusActive, UserStatusInactive, UserStatusSuspended:
		return true
	}
	return false
}
