package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestThrottle(t *testing.T, cfg ThrottleConfig) (*LoginThrottle, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginThrottle(client, cfg), mr
}

func TestLoginThrottle_LocksAfterMaxFailures(t *testing.T) {
	throttle, _ := newTestThrottle(t, ThrottleConfig{MaxFailures: 3, Window: time.Minute})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := throttle.RecordFailure(ctx, "a@x.com"); err != nil {
			t.Fatalf("record failure: %v", err)
		}
	}
	locked, err := throttle.IsLocked(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if locked {
		t.Fatalf("locked after 2 of 3 failures")
	}

	if err := throttle.RecordFailure(ctx, "a@x.com"); err != nil {
		t.Fatalf("record failure: %v", err)
	}
	locked, err = throttle.IsLocked(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !locked {
		t.Fatalf("expected locked after 3 failures")
	}
}

func TestLoginThrottle_WindowExpires(t *testing.T) {
	throttle, mr := newTestThrottle(t, ThrottleConfig{MaxFailures: 1, Window: time.Minute})
	ctx := context.Background()

	if err := throttle.RecordFailure(ctx, "b@x.com"); err != nil {
		t.Fatalf("record failure: %v", err)
	}
	if locked, _ := throttle.IsLocked(ctx, "b@x.com"); !locked {
		t.Fatalf("expected locked")
	}

	mr.FastForward(2 * time.Minute)

	locked, err := throttle.IsLocked(ctx, "b@x.com")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if locked {
		t.Fatalf("expected unlock after window expiry")
	}
}

func TestLoginThrottle_CounterAlwaysCarriesTTL(t *testing.T) {
	throttle, mr := newTestThrottle(t, ThrottleConfig{MaxFailures: 3, Window: time.Minute})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := throttle.RecordFailure(ctx, "e@x.com"); err != nil {
			t.Fatalf("record failure: %v", err)
		}
		if ttl := mr.TTL("login_fail:e@x.com"); ttl <= 0 {
			t.Fatalf("failure %d left counter without a TTL", i+1)
		}
	}

	// A pre-existing counter with no expiry picks one up on the next failure
	// instead of locking the email forever.
	mr.Set("login_fail:stale@x.com", "9")
	if err := throttle.RecordFailure(ctx, "stale@x.com"); err != nil {
		t.Fatalf("record failure: %v", err)
	}
	if ttl := mr.TTL("login_fail:stale@x.com"); ttl <= 0 {
		t.Fatalf("stale counter still has no TTL")
	}
}

func TestLoginThrottle_ClearOnSuccess(t *testing.T) {
	throttle, _ := newTestThrottle(t, ThrottleConfig{MaxFailures: 1, Window: time.Minute})
	ctx := context.Background()

	if err := throttle.RecordFailure(ctx, "c@x.com"); err != nil {
		t.Fatalf("record failure: %v", err)
	}
	if err := throttle.Clear(ctx, "c@x.com"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	locked, err := throttle.IsLocked(ctx, "c@x.com")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if locked {
		t.Fatalf("expected unlocked after clear")
	}
}

func TestLoginThrottle_IsolatesEmails(t *testing.T) {
	throttle, _ := newTestThrottle(t, ThrottleConfig{MaxFailures: 1, Window: time.Minute})
	ctx := context.Background()

	if err := throttle.RecordFailure(ctx, "d@x.com"); err != nil {
		t.Fatalf("record failure: %v", err)
	}

	locked, err := throttle.IsLocked(ctx, "other@x.com")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if locked {
		t.Fatalf("unrelated email locked")
	}
}
