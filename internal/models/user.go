package models

import "strings"

const (
	UserTypeDeveloper = "Developer"
	UserTypeClient    = "Client"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// User is the identity record cached in the session after login or registration.
type User struct {
	ID       int64    `json:"id"`
	FullName string   `json:"fullName"`
	Email    string   `json:"email"`
	UserType string   `json:"userType"`
	Role     UserRole `json:"role,omitempty"`
	Username string   `json:"username,omitempty"`
}

// IsAdmin reports the role the backend assigned. It is a display hint, not an access check.
func (u *User) IsAdmin() bool {
	return u != nil && strings.EqualFold(string(u.Role), string(RoleAdmin))
}

func (u *User) FirstName() string {
	if u == nil {
		return ""
	}
	if first, _, ok := strings.Cut(strings.TrimSpace(u.FullName), " "); ok {
		return first
	}
	return strings.TrimSpace(u.FullName)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User    *User  `json:"user,omitempty"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}
