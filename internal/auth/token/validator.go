package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hospitalhq/records-system/internal/core/domain"
)

// ErrInvalidToken is returned for any token that fails validation: bad
// signature, expired, wrong issuer or audience, malformed structure, or a
// role claim outside the closed role set. Callers treat all of these the
// same way: the request is anonymous.
var ErrInvalidToken = errors.New("token: invalid token")

// Validator checks inbound tokens against the shared signing configuration.
// Issuer, audience and lifetime are all enforced with zero clock-skew
// tolerance; a token is valid strictly before its expiry instant and rejected
// at or after it.
type Validator struct {
	cfg Config
	now func() time.Time
}

// NewValidator creates a Validator. cfg must already be validated.
func NewValidator(cfg Config) *Validator {
	return &Validator{cfg: cfg, now: time.Now}
}

// Validate parses and verifies raw and returns the identity it carries.
func (v *Validator) Validate(raw string) (*domain.Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, v.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.cfg.Issuer),
		jwt.WithAudience(v.cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	role, ok := domain.ParseRole(claims.Role)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &domain.Identity{
		UserID: userID,
		Name:   claims.Name,
		Email:  claims.Email,
		Role:   role,
	}, nil
}

func (v *Validator) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("token: unexpected signing method %s", t.Method.Alg())
	}
	return []byte(v.cfg.Secret), nil
}
