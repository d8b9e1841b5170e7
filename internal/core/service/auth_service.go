package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/hospitalhq/records-system/internal/auth/password"
	"github.com/hospitalhq/records-system/internal/auth/token"
	"github.com/hospitalhq/records-system/internal/core/domain"
	"github.com/hospitalhq/records-system/internal/core/ports"
)

// AuthService implements registration and login over the credential store,
// the password hasher and the token issuer.
type AuthService struct {
	repo    ports.UserRepository
	hasher  *password.Hasher
	issuer  *token.Issuer
	limiter ports.LoginLimiter // nil disables login throttling
	logger  zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher *password.Hasher, issuer *token.Issuer, limiter ports.LoginLimiter, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, issuer: issuer, limiter: limiter, logger: logger}
}

// Login verifies the credentials and issues a token. An unknown login name
// and a wrong password both return ErrInvalidCredentials; the response never
// reveals which of the two happened.
func (s *AuthService) Login(ctx context.Context, name, plaintext string) (*ports.LoginResult, error) {
	if name == "" || plaintext == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, name)
		if err != nil {
			// The limiter is a best-effort guard; if it is unreachable the
			// login path stays available.
			s.logger.Warn().Err(err).Str("user", name).Msg("login limiter unavailable")
		} else if !allowed {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, name)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	result, err := s.hasher.Verify(user.PasswordHash, plaintext)
	if err != nil {
		// A corrupt stored hash fails the login like a wrong password and
		// counts toward the lockout window the same way.
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("stored password hash is unreadable")
		s.recordFailure(ctx, name)
		return nil, domain.ErrInvalidCredentials
	}

	switch result {
	case password.NoMatch:
		s.recordFailure(ctx, name)
		return nil, domain.ErrInvalidCredentials
	case password.RehashNeeded:
		s.upgradeHash(ctx, user, plaintext)
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, name); err != nil {
			s.logger.Warn().Err(err).Str("user", name).Msg("failed to reset login attempts")
		}
	}

	tok, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("role", user.Role.String()).Msg("user logged in")
	return &ports.LoginResult{Token: tok, Role: user.Role}, nil
}

// upgradeHash re-hashes the password with current parameters and persists the
// result. Failures are swallowed: the original hash still verifies, so the
// login succeeds and the upgrade is retried on a future login.
func (s *AuthService) upgradeHash(ctx context.Context, user *domain.User, plaintext string) {
	newHash, err := s.hasher.Hash(plaintext)
	if err != nil {
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("password rehash failed")
		return
	}
	if err := s.repo.UpdatePasswordHash(ctx, user.ID, newHash); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to persist upgraded password hash")
		return
	}
	user.PasswordHash = newHash
	s.logger.Info().Int64("user_id", user.ID).Msg("password hash upgraded")
}

func (s *AuthService) recordFailure(ctx context.Context, name string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, name); err != nil {
		s.logger.Warn().Err(err).Str("user", name).Msg("failed to record login failure")
	}
}

// Register creates a user with a hashed credential. A requested role outside
// the closed role set falls back to Client; registration never fails solely
// because of an invalid role request.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Name == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	role, ok := domain.ParseRole(input.Role)
	if !ok {
		role = domain.RoleClient
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		FullName:     input.FullName,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("role", created.Role.String()).Msg("user registered")
	return created, nil
}
