package dto

import "time"

// RegisterRequest input for self-registration. Role is always teacher.
type RegisterRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	FullName string   `json:"full_name"`
	School   string   `json:"school"`
	County   string   `json:"county"`
	Subjects []string `json:"subjects"`
}

// UserResponse a user without credentials.
type UserResponse struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	Role       string     `json:"role"`
	Status     string     `json:"status"`
	School     string     `json:"school"`
	County     string     `json:"county"`
	Subjects   []string   `json:"subjects"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	LoginCount int        `json:"login_count"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// LoginRequest credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token plus the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateProfileRequest editable profile fields. Nil pointers leave the field untouched.
type UpdateProfileRequest struct {
	FullName *string  `json:"full_name"`
	School   *string  `json:"school"`
	County   *string  `json:"county"`
	Subjects []string `json:"subjects"`
}

// ChangeRoleRequest admin input for PUT /api/admin/users/:id/role.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// ChangeStatusRequest admin input for PUT /api/admin/users/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// UserListResponse paged users.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
