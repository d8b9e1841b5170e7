package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultAttemptLimit  = 5
	defaultAttemptWindow = 15 * time.Minute
)

// LoginLimiter throttles repeated login failures per login name using a
// fixed-window counter in Redis. Key format: login_attempts:<name>.
type LoginLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewLoginLimiter creates a LoginLimiter. Non-positive limit or window fall
// back to 5 attempts per 15 minutes.
func NewLoginLimiter(client *redis.Client, limit int, window time.Duration) *LoginLimiter {
	if limit <= 0 {
		limit = defaultAttemptLimit
	}
	if window <= 0 {
		window = defaultAttemptWindow
	}
	return &LoginLimiter{client: client, limit: limit, window: window}
}

// Allow reports whether another login attempt for name is permitted.
func (l *LoginLimiter) Allow(ctx context.Context, name string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(name)).Int()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("login attempts check: %w", err)
	}
	return n < l.limit, nil
}

// RecordFailure counts a failed attempt. The window starts at the first
// failure and is not extended by later ones.
func (l *LoginLimiter) RecordFailure(ctx context.Context, name string) error {
	key := l.key(name)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("set attempts window: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, name string) error {
	if err := l.client.Del(ctx, l.key(name)).Err(); err != nil {
		return fmt.Errorf("reset login attempts: %w", err)
	}
	return nil
}

func (l *LoginLimiter) key(name string) string {
	return "login_attempts:" + name
}
