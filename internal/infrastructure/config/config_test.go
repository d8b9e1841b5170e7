package config

import (
	"context"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ISSUER", "hospital-records")
	t.Setenv("JWT_AUDIENCE", "hospital-clients")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.JWT.Header != "X-MyCustomToken" {
		t.Fatalf("expected custom token header default, got %q", cfg.JWT.Header)
	}
	if cfg.Lockout.AttemptLimit != 5 || cfg.Lockout.AttemptWindow != 15*time.Minute {
		t.Fatalf("unexpected lockout defaults: %+v", cfg.Lockout)
	}
	if cfg.Mongo.Database != "hospital_records" {
		t.Fatalf("unexpected mongo database default: %q", cfg.Mongo.Database)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("AUTH_TOKEN_HEADER", "X-Other-Token")
	t.Setenv("LOGIN_ATTEMPT_LIMIT", "3")
	t.Setenv("LOGIN_ATTEMPT_WINDOW", "5m")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.JWT.Header != "X-Other-Token" {
		t.Fatalf("expected overridden header, got %q", cfg.JWT.Header)
	}
	if cfg.Lockout.AttemptLimit != 3 || cfg.Lockout.AttemptWindow != 5*time.Minute {
		t.Fatalf("unexpected lockout overrides: %+v", cfg.Lockout)
	}
}

func TestValidate_MissingSigningConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing secret", Config{JWT: JWTConfig{Issuer: "i", Audience: "a"}}},
		{"missing issuer", Config{JWT: JWTConfig{Secret: "s", Audience: "a"}}},
		{"missing audience", Config{JWT: JWTConfig{Secret: "s", Issuer: "i"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
