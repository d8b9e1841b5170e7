package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials covers both an unknown login name and a wrong
	// password so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrForbidden          = errors.New("access forbidden")
)

// User is the persistent identity record. PasswordHash is the only credential
// artifact ever stored; the plaintext password never reaches a repository.
type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	FullName     string     `json:"full_name,omitempty"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	City         string     `json:"city,omitempty"`
	Gender       string     `json:"gender,omitempty"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
