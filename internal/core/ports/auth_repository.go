package ports

import (
	"context"

	"github.com/hospitalhq/records-system/internal/core/domain"
)

// UserRepository is the credential store: user identity, password hash and
// role reference. Lookup and persistence only; all policy lives upstream.
type UserRepository interface {
	FindByName(ctx context.Context, name string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, userID int64, hash string) error
}
