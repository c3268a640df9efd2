package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter is a fixed-window counter backed by Redis.
// Key format: login_attempts:<key> with the window as TTL.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

// Allow records one attempt for key and reports whether the caller is still
// under the window's limit. The counter expires with the window, so a blocked
// caller recovers without intervention.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := l.client.Incr(ctx, l.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, l.key(key), l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= int64(l.maxAttempts), nil
}

func (l *LoginLimiter) key(key string) string {
	return "login_attempts:" + key
}
