package domain

import "time"

// Role enumerates the account roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User represents a platform account. Every per-tenant entity hangs off a
// user via user_id with ON DELETE CASCADE.
type User struct {
	ID            string    `json:"id" db:"id"`
	Email         string    `json:"email" db:"email"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	Name          string    `json:"name" db:"name"`
	Role          Role      `json:"role" db:"role"`
	IsDeactivated bool      `json:"is_deactivated" db:"is_deactivated"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// PublicUser is the client-safe projection of a User.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Public strips credential and lifecycle fields for API responses.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// AdminPermissions gates access to the admin panel per capability.
type AdminPermissions struct {
	ViewUsers         bool `json:"view_users"`
	ViewSubscriptions bool `json:"view_subscriptions"`
}

// DefaultAdminPermissions returns the permission set granted when an admin
// row is first created.
func DefaultAdminPermissions() AdminPermissions {
	return AdminPermissions{ViewUsers: true, ViewSubscriptions: false}
}

// UserAdmin grants admin-panel capability to a user.
type UserAdmin struct {
	ID          string           `json:"id" db:"id"`
	UserID      string           `json:"user_id" db:"user_id"`
	Permissions AdminPermissions `json:"permissions" db:"permissions"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}
