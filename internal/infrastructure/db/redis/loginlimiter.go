package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

// LoginLimiter provides a fixed-window failed-attempt throttle backed by
// Redis. Key format: login:fail:<username>. The counter expires with the
// window, so a quiet account resets itself.
type LoginLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginLimiter{client: client, max: maxAttempts, window: window}
}

// TooMany reports whether the account has exhausted its attempts in the
// current window.
func (l *LoginLimiter) TooMany(ctx context.Context, username string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(username)).Int()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("limiter check: %w", err)
	}
	return n >= l.max, nil
}

// RecordFailure counts one failed attempt. The window starts on the first
// failure.
func (l *LoginLimiter) RecordFailure(ctx context.Context, username string) error {
	key := l.key(username)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("limiter incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("limiter expire: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, username string) error {
	if err := l.client.Del(ctx, l.key(username)).Err(); err != nil {
		return fmt.Errorf("limiter reset: %w", err)
	}
	return nil
}

func (l *LoginLimiter) key(username string) string {
	return "login:fail:" + strings.ToLower(strings.TrimSpace(username))
}
