package core

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClientRaw exposes the minimal subset used by the limiter and metrics.
type RedisClientRaw interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// NewRedisClient returns a configured go-redis client from URL (e.g., redis://localhost:6379/0).
func NewRedisClient(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, errors.New("empty redis url")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}

const loginAttemptPrefix = "login_attempts:"

// LoginLimiter is a fixed-window counter for /token attempts, keyed by
// client identifier (IP). Counters live in Redis so limits survive restarts
// and are shared between replicas.
type LoginLimiter struct {
	client RedisClientRaw
	window time.Duration
	max    int
}

// NewLoginLimiter builds a limiter allowing max attempts per window.
func NewLoginLimiter(client RedisClientRaw, window time.Duration, max int) *LoginLimiter {
	return &LoginLimiter{client: client, window: window, max: max}
}

// Allow records an attempt for identifier and reports whether it is within
// the limit. The window TTL is set on the first attempt of each window.
// Redis being unreachable fails open: login availability wins over limiting.
func (l *LoginLimiter) Allow(ctx context.Context, identifier string) bool {
	if l == nil || l.client == nil || l.max <= 0 {
		return true
	}
	key := loginAttemptPrefix + identifier
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		_ = l.client.Expire(ctx, key, l.window).Err()
	}
	return count <= int64(l.max)
}
