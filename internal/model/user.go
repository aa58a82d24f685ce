package model

import (
	"errors"
	"time"
)

// User represents an account in the system.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	Email          *string   `db:"email" json:"email"`
	PasswordHashed string    `db:"password_hashed" json:"-"` // "-" hides from JSON output
	IsStaff        bool      `db:"is_staff" json:"-"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"date_joined"`
	UpdatedAt      time.Time `db:"updated_at" json:"-"`

	// Joined field (profiles table)
	Profile *Profile `json:"profile,omitempty"`
}

// Profile holds the display fields attached 1:1 to a user. A profile row is
// created in the same transaction as its user, so every account has one.
type Profile struct {
	UserID    int64  `db:"user_id" json:"-"`
	Avatar    string `db:"avatar" json:"avatar"`
	Signature string `db:"signature" json:"signature"`
}

// RegisterRequest represents the data needed to register a new user.
type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=30"`
	Password string  `json:"password" validate:"required,min=8"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

// LoginRequest represents the data needed to log in.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateMeRequest is a partial update of the current user and their profile.
type UpdateMeRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=30"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Avatar    *string `json:"avatar"`
	Signature *string `json:"signature"`
}

// ChangePasswordRequest is the request body for changing the password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when attempting to create a user with a taken username
	ErrUsernameExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrWrongPassword is returned when the old password check fails
	ErrWrongPassword = errors.New("old password is incorrect")

	// ErrUserDisabled is returned when a deactivated account tries to log in
	ErrUserDisabled = errors.New("account is disabled")
)
