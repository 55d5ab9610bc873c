package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxFailures = 10
	defaultWindow      = 15 * time.Minute
)

// ThrottleConfig tunes the login-failure throttle.
type ThrottleConfig struct {
	// MaxFailures is the number of failed attempts within the window after
	// which further logins for that email are rejected.
	MaxFailures int64
	// Window is how long the failure counter lives after the first failure.
	Window time.Duration
}

// LoginThrottle counts failed logins per email in Redis.
// Key format: login_fail:<email>, expiring Window after the first failure.
type LoginThrottle struct {
	client *redis.Client
	cfg    ThrottleConfig
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
func NewLoginThrottle(client *redis.Client, cfg ThrottleConfig) *LoginThrottle {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = defaultMaxFailures
	}
	if cfg.Window <= 0 {
		cfg.Window = defaultWindow
	}
	return &LoginThrottle{client: client, cfg: cfg}
}

// IsLocked reports whether the email has exhausted its failure budget.
func (t *LoginThrottle) IsLocked(ctx context.Context, email string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(email)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= t.cfg.MaxFailures, nil
}

// RecordFailure increments the failure counter, starting the window on the
// first failure. INCR and EXPIRE travel in one transaction so a counter can
// never be left without a TTL; NX also repairs any key that lost its expiry.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) error {
	key := t.key(email)
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, t.cfg.Window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	return nil
}

// Clear resets the counter after a successful login.
func (t *LoginThrottle) Clear(ctx context.Context, email string) error {
	if err := t.client.Del(ctx, t.key(email)).Err(); err != nil {
		return fmt.Errorf("throttle clear: %w", err)
	}
	return nil
}

func (t *LoginThrottle) key(email string) string {
	return "login_fail:" + email
}
