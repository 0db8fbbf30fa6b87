// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/allisson/accounts/internal/errors"
)

// Role identifies the privilege level of a user account.
type Role string

// Available user roles.
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsValid reports whether the role is one of the known values.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents a user account in the system.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FullName     *string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUsernameAlreadyExists indicates a user with the same username already exists.
	ErrUsernameAlreadyExists = errors.Wrap(errors.ErrConflict, "username already exists")

	// ErrEmailAlreadyExists indicates a user with the same email already exists.
	ErrEmailAlreadyExists = errors.Wrap(errors.ErrConflict, "email already exists")

	// ErrInvalidRole indicates the role is not one of the known values.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid role")
)
