// Package token issues and validates the signed JWTs that carry a user's
// identity between requests. Tokens are stateless: there is no revocation
// list, validity is decided purely by signature and embedded timestamps.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hospitalhq/records-system/internal/core/domain"
)

// tokenTTL is the fixed lifetime of an issued token.
const tokenTTL = 2 * time.Hour

// Config holds the signing settings shared by issuer and validator. All three
// fields are mandatory; a missing one is a startup error, never a per-request
// one.
type Config struct {
	Secret   string
	Issuer   string
	Audience string
}

// Validate reports the first missing field.
func (c Config) Validate() error {
	if c.Secret == "" {
		return errors.New("token: signing secret is required")
	}
	if c.Issuer == "" {
		return errors.New("token: issuer is required")
	}
	if c.Audience == "" {
		return errors.New("token: audience is required")
	}
	return nil
}

// Claims is the typed claim set embedded in every token.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// ExtractToken pulls a raw token out of a header value. A case-insensitive
// "Bearer " prefix is stripped and the remainder trimmed of surrounding
// whitespace; a value without any space character is taken as a bare token.
// Anything else carries no token and the request proceeds as anonymous.
func ExtractToken(headerValue string) (string, bool) {
	const prefix = "Bearer "
	if len(headerValue) >= len(prefix) && strings.EqualFold(headerValue[:len(prefix)], prefix) {
		raw := strings.TrimSpace(headerValue[len(prefix):])
		return raw, raw != ""
	}
	if headerValue != "" && !strings.ContainsRune(headerValue, ' ') {
		return headerValue, true
	}
	return "", false
}

// Issuer builds signed, time-bounded tokens.
type Issuer struct {
	cfg Config
	now func() time.Time
}

// NewIssuer creates an Issuer. cfg must already be validated.
func NewIssuer(cfg Config) *Issuer {
	return &Issuer{cfg: cfg, now: time.Now}
}

// Issue signs a token for user, valid from now until now + 2h.
func (i *Issuer) Issue(user *domain.User) (string, error) {
	now := i.now().UTC()

	claims := Claims{
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			Issuer:    i.cfg.Issuer,
			Audience:  jwt.ClaimStrings{i.cfg.Audience},
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(i.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}
