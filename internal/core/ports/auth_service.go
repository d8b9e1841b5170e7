package ports

import (
	"context"

	"github.com/hospitalhq/records-system/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration. Role is the
// requested role name; an unknown or empty value falls back to Client.
type RegisterInput struct {
	Name     string
	Password string
	Email    string
	Phone    string
	FullName string
	Role     string
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token string
	Role  domain.Role
}

type AuthService interface {
	Login(ctx context.Context, name, password string) (*LoginResult, error)
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
}

// LoginLimiter throttles repeated login failures per login name.
type LoginLimiter interface {
	// Allow reports whether another attempt for name is permitted right now.
	Allow(ctx context.Context, name string) (bool, error)
	// RecordFailure counts a failed attempt against name.
	RecordFailure(ctx context.Context, name string) error
	// Reset clears the failure count for name after a successful login.
	Reset(ctx context.Context, name string) error
}
