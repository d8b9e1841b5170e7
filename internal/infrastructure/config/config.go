package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT     JWTConfig
	Lockout LockoutConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

// JWTConfig is the signing configuration shared by token issuer and
// validator. Secret, issuer and audience are mandatory; the process refuses
// to start without them.
type JWTConfig struct {
	Secret   string `env:"JWT_SECRET"`
	Issuer   string `env:"JWT_ISSUER"`
	Audience string `env:"JWT_AUDIENCE"`
	// Header is the request header tokens are read from. The custom default
	// is intentional; it is not the standard Authorization header.
	Header string `env:"AUTH_TOKEN_HEADER, default=X-MyCustomToken"`
}

// LockoutConfig throttles repeated login failures per login name.
type LockoutConfig struct {
	AttemptLimit  int           `env:"LOGIN_ATTEMPT_LIMIT,  default=5"`
	AttemptWindow time.Duration `env:"LOGIN_ATTEMPT_WINDOW, default=15m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=hospital_records"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: load: %w", err)
	}
	return &cfg, nil
}

// Validate enforces the mandatory signing configuration. A missing value is
// a fatal startup error, never a per-request one.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.JWT.Issuer == "" {
		return errors.New("config: JWT_ISSUER is required")
	}
	if c.JWT.Audience == "" {
		return errors.New("config: JWT_AUDIENCE is required")
	}
	return nil
}
