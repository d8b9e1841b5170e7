// Package password hashes and verifies user credentials.
//
// New hashes use argon2id with the configured parameters and a random salt,
// encoded in the self-describing PHC format:
//
//	$argon2id$v=19$m=MEMORY,t=TIME,p=THREADS$SALT$HASH
//
// Verification also accepts legacy bcrypt hashes; a successful match against
// a bcrypt hash, or against an argon2id hash produced with weaker parameters
// than the current policy, reports RehashNeeded so the caller can upgrade the
// stored hash.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// VerifyResult is the outcome of comparing a plaintext password to a hash.
type VerifyResult int

const (
	// NoMatch means the password does not match. It is a normal outcome,
	// not an error.
	NoMatch VerifyResult = iota
	// Match means the password matches a hash produced with current parameters.
	Match
	// RehashNeeded means the password matches but the hash was produced with
	// an outdated scheme or weaker parameters; the caller should re-hash.
	RehashNeeded
)

// ErrUnknownFormat is returned when a stored hash is in no recognised format.
var ErrUnknownFormat = errors.New("password: unrecognised hash format")

// Params are the argon2id cost parameters for newly produced hashes.
type Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

// DefaultParams follow the OWASP recommendation: 64 MiB, 1 pass, 4 lanes.
func DefaultParams() Params {
	return Params{
		Time:    1,
		Memory:  64 * 1024,
		Threads: 4,
		KeyLen:  32,
		SaltLen: 16,
	}
}

// Hasher produces and verifies password hashes. It is stateless and safe for
// concurrent use.
type Hasher struct {
	params Params
}

// NewHasher creates a Hasher with the given parameters; zero-valued fields
// fall back to DefaultParams.
func NewHasher(p Params) *Hasher {
	def := DefaultParams()
	if p.Time == 0 {
		p.Time = def.Time
	}
	if p.Memory == 0 {
		p.Memory = def.Memory
	}
	if p.Threads == 0 {
		p.Threads = def.Threads
	}
	if p.KeyLen == 0 {
		p.KeyLen = def.KeyLen
	}
	if p.SaltLen == 0 {
		p.SaltLen = def.SaltLen
	}
	return &Hasher{params: p}
}

// Hash returns a salted argon2id hash of password. Two calls with the same
// password produce different outputs because the salt is random.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory, h.params.Time, h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Verify compares password against encodedHash. A wrong password yields
// NoMatch with a nil error; errors are reserved for malformed hashes.
func (h *Hasher) Verify(encodedHash, password string) (VerifyResult, error) {
	switch {
	case strings.HasPrefix(encodedHash, "$argon2id$"):
		return h.verifyArgon2id(encodedHash, password)
	case strings.HasPrefix(encodedHash, "$2a$"),
		strings.HasPrefix(encodedHash, "$2b$"),
		strings.HasPrefix(encodedHash, "$2y$"):
		return h.verifyBcrypt(encodedHash, password)
	default:
		return NoMatch, ErrUnknownFormat
	}
}

func (h *Hasher) verifyArgon2id(encodedHash, password string) (VerifyResult, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return NoMatch, ErrUnknownFormat
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return NoMatch, fmt.Errorf("password: parse argon2id version: %w", err)
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return NoMatch, fmt.Errorf("password: parse argon2id params: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return NoMatch, fmt.Errorf("password: decode salt: %w", err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return NoMatch, fmt.Errorf("password: decode hash: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(expected)))
	if subtle.ConstantTimeCompare(key, expected) != 1 {
		return NoMatch, nil
	}

	if h.weakerThanPolicy(version, memory, time, threads, uint32(len(expected))) {
		return RehashNeeded, nil
	}
	return Match, nil
}

func (h *Hasher) verifyBcrypt(encodedHash, password string) (VerifyResult, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)); err != nil {
		return NoMatch, nil
	}
	// Correct password, legacy scheme: always upgrade to argon2id.
	return RehashNeeded, nil
}

// weakerThanPolicy reports whether stored argon2id parameters fall below the
// hasher's current policy on any axis.
func (h *Hasher) weakerThanPolicy(version int, memory, time uint32, threads uint8, keyLen uint32) bool {
	return version < argon2.Version ||
		memory < h.params.Memory ||
		time < h.params.Time ||
		threads < h.params.Threads ||
		keyLen < h.params.KeyLen
}
