package core

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestLoginLimiter_AllowsWithinLimit(t *testing.T) {
	_, client := newTestRedis(t)
	limiter := NewLoginLimiter(client, time.Minute, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if !limiter.Allow(ctx, "1.2.3.4") {
			t.Fatalf("attempt %d unexpectedly blocked", i+1)
		}
	}
	if limiter.Allow(ctx, "1.2.3.4") {
		t.Fatalf("attempt over the limit should be blocked")
	}
}

func TestLoginLimiter_SeparateIdentifiers(t *testing.T) {
	_, client := newTestRedis(t)
	limiter := NewLoginLimiter(client, time.Minute, 1)
	ctx := context.Background()

	if !limiter.Allow(ctx, "1.2.3.4") {
		t.Fatalf("first attempt blocked")
	}
	if !limiter.Allow(ctx, "5.6.7.8") {
		t.Fatalf("other client must have its own counter")
	}
	if limiter.Allow(ctx, "1.2.3.4") {
		t.Fatalf("second attempt from same client should be blocked")
	}
}

func TestLoginLimiter_WindowExpires(t *testing.T) {
	mr, client := newTestRedis(t)
	limiter := NewLoginLimiter(client, 30*time.Second, 1)
	ctx := context.Background()

	if !limiter.Allow(ctx, "1.2.3.4") {
		t.Fatalf("first attempt blocked")
	}
	if limiter.Allow(ctx, "1.2.3.4") {
		t.Fatalf("second attempt within window should be blocked")
	}

	mr.FastForward(31 * time.Second)

	if !limiter.Allow(ctx, "1.2.3.4") {
		t.Fatalf("attempt after window expiry should be allowed")
	}
}

func TestLoginLimiter_FailsOpenWithoutRedis(t *testing.T) {
	t.Parallel()

	var limiter *LoginLimiter
	if !limiter.Allow(context.Background(), "1.2.3.4") {
		t.Fatalf("nil limiter must allow")
	}
}
