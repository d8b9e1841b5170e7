package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hospitalhq/records-system/internal/auth/password"
	"github.com/hospitalhq/records-system/internal/auth/token"
	"github.com/hospitalhq/records-system/internal/core/domain"
	"github.com/hospitalhq/records-system/internal/core/ports"
)

var testTokenConfig = token.Config{
	Secret:   "service-test-secret",
	Issuer:   "hospital-records",
	Audience: "hospital-clients",
}

type stubUserRepo struct {
	users         map[string]*domain.User
	nextID        int64
	updateHashErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByName(_ context.Context, name string) (*domain.User, error) {
	u, ok := r.users[name]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Name]; exists {
		return nil, domain.ErrUserExists
	}
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.nextID++
	r.users[stored.Name] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, userID int64, hash string) error {
	if r.updateHashErr != nil {
		return r.updateHashErr
	}
	for _, u := range r.users {
		if u.ID == userID {
			u.PasswordHash = hash
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type stubLimiter struct {
	allowed  bool
	failures []string
	resets   []string
}

func (l *stubLimiter) Allow(_ context.Context, _ string) (bool, error) { return l.allowed, nil }
func (l *stubLimiter) RecordFailure(_ context.Context, name string) error {
	l.failures = append(l.failures, name)
	return nil
}
func (l *stubLimiter) Reset(_ context.Context, name string) error {
	l.resets = append(l.resets, name)
	return nil
}

func newTestAuthService(repo ports.UserRepository, limiter ports.LoginLimiter) *AuthService {
	hasher := password.NewHasher(password.Params{Time: 1, Memory: 8 * 1024, Threads: 1})
	issuer := token.NewIssuer(testTokenConfig)
	return NewAuthService(repo, hasher, issuer, limiter, zerolog.Nop())
}

func TestAuthService_Register_DefaultsToClientRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "alice",
		Password: "p1",
		Email:    "a@x.com",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleClient {
		t.Fatalf("expected Client role by default, got %s", user.Role)
	}
	if user.PasswordHash == "p1" || user.PasswordHash == "" {
		t.Fatalf("plaintext must never be persisted, got %q", user.PasswordHash)
	}
	if !strings.HasPrefix(user.PasswordHash, "$argon2id$") {
		t.Fatalf("expected argon2id hash, got %q", user.PasswordHash)
	}
}

func TestAuthService_Register_UnknownRoleFallsBack(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "bob",
		Password: "pw",
		Role:     "Superuser",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleClient {
		t.Fatalf("unknown role must fall back to Client, got %s", user.Role)
	}
}

func TestAuthService_Register_KeepsValidRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "dr-grey",
		Password: "pw",
		Role:     "Doctor",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleDoctor {
		t.Fatalf("expected Doctor, got %s", user.Role)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "alice", Password: "p1"}); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "alice", Password: "p2"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Password: "pw"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for missing name, got %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "x"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for missing password, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "alice", Password: "p1", Email: "a@x.com"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "alice", "p1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a token")
	}
	if result.Role != domain.RoleClient {
		t.Fatalf("expected Client role, got %s", result.Role)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(result.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testTokenConfig.Secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims["role"] != "Client" {
		t.Fatalf("expected role claim Client, got %v", claims["role"])
	}
	if claims["name"] != "alice" {
		t.Fatalf("expected name claim alice, got %v", claims["name"])
	}
}

func TestAuthService_Login_GenericFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "alice", Password: "p1"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, wrongPassErr := svc.Login(context.Background(), "alice", "wrong")
	_, unknownUserErr := svc.Login(context.Background(), "nobody", "whatever")

	if !errors.Is(wrongPassErr, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassErr)
	}
	// Same error value for both cases so responses cannot enumerate users.
	if wrongPassErr != unknownUserErr {
		t.Fatalf("wrong-password and unknown-user must be indistinguishable: %v vs %v", wrongPassErr, unknownUserErr)
	}
}

func TestAuthService_Login_UpgradesLegacyHash(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	legacy, err := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	repo.users["carol"] = &domain.User{ID: 9, Name: "carol", PasswordHash: string(legacy), Role: domain.RoleNurse}

	result, err := svc.Login(context.Background(), "carol", "old-pass")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Role != domain.RoleNurse {
		t.Fatalf("unexpected role: %s", result.Role)
	}
	if !strings.HasPrefix(repo.users["carol"].PasswordHash, "$argon2id$") {
		t.Fatalf("expected stored hash to be upgraded, got %q", repo.users["carol"].PasswordHash)
	}
}

func TestAuthService_Login_RehashFailureIsSwallowed(t *testing.T) {
	repo := newStubUserRepo()
	repo.updateHashErr = errors.New("write timeout")
	svc := newTestAuthService(repo, nil)

	legacy, err := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	repo.users["dave"] = &domain.User{ID: 3, Name: "dave", PasswordHash: string(legacy), Role: domain.RoleClient}

	result, err := svc.Login(context.Background(), "dave", "old-pass")
	if err != nil {
		t.Fatalf("login must succeed even when persisting the upgrade fails: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a token")
	}
	if repo.users["dave"].PasswordHash != string(legacy) {
		t.Fatalf("hash must be unchanged after a failed upgrade")
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{allowed: false}
	svc := newTestAuthService(repo, limiter)

	if _, err := svc.Login(context.Background(), "alice", "pw"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_RecordsFailuresAndResets(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{allowed: true}
	svc := newTestAuthService(repo, limiter)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "eve", Password: "pw"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _ = svc.Login(context.Background(), "eve", "bad")
	_, _ = svc.Login(context.Background(), "ghost", "bad")
	if len(limiter.failures) != 2 {
		t.Fatalf("expected 2 recorded failures, got %d", len(limiter.failures))
	}

	if _, err := svc.Login(context.Background(), "eve", "pw"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if len(limiter.resets) != 1 || limiter.resets[0] != "eve" {
		t.Fatalf("expected reset for eve, got %v", limiter.resets)
	}
}

func TestAuthService_Login_UnreadableHashCountsAsFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.users["mallory"] = &domain.User{
		ID:           9,
		Name:         "mallory",
		PasswordHash: "not-a-recognised-hash",
		Role:         domain.RoleClient,
	}
	limiter := &stubLimiter{allowed: true}
	svc := newTestAuthService(repo, limiter)

	_, err := svc.Login(context.Background(), "mallory", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(limiter.failures) != 1 || limiter.failures[0] != "mallory" {
		t.Fatalf("expected one recorded failure for mallory, got %v", limiter.failures)
	}
}
