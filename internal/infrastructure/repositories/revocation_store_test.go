package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// setupTestRedis creates an in-memory Redis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(func() {
		mr.Close()
	})

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return client, mr
}

func TestRevocationStoreImpl_AddContains(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRevocationStore(client)
	ctx := context.Background()

	if err := store.Add(ctx, "token-1", "vendor", time.Hour); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	found, err := store.Contains(ctx, "token-1", "vendor")
	if err != nil || !found {
		t.Fatalf("expected token revoked under vendor, found=%v err=%v", found, err)
	}

	// Role scoping: the same string is alive under other roles.
	found, err = store.Contains(ctx, "token-1", "customer")
	if err != nil || found {
		t.Fatalf("token must not be revoked under customer, found=%v err=%v", found, err)
	}

	// Entries expire with the token.
	mr.FastForward(2 * time.Hour)
	found, err = store.Contains(ctx, "token-1", "vendor")
	if err != nil || found {
		t.Fatalf("entry should have expired, found=%v err=%v", found, err)
	}
}

func TestRevocationStoreImpl_AddExpiredTTL(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewRevocationStore(client)
	ctx := context.Background()

	// A token already past its expiry needs no entry.
	if err := store.Add(ctx, "stale", "vendor", -time.Minute); err != nil {
		t.Fatalf("add with negative ttl failed: %v", err)
	}
	found, err := store.Contains(ctx, "stale", "vendor")
	if err != nil || found {
		t.Fatalf("stale token should not be stored, found=%v err=%v", found, err)
	}
}

func TestRateLimiterImpl_Allow(t *testing.T) {
	client, mr := setupTestRedis(t)
	limiter := NewRateLimiter(client)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(ctx, "forgot:vendor:1.2.3.4", 3, time.Hour)
		if err != nil {
			t.Fatalf("allow failed: %v", err)
		}
		if !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	ok, err := limiter.Allow(ctx, "forgot:vendor:1.2.3.4", 3, time.Hour)
	if err != nil {
		t.Fatalf("allow failed: %v", err)
	}
	if ok {
		t.Fatal("fourth request in window should be rejected")
	}

	// Windows are independent per key.
	ok, _ = limiter.Allow(ctx, "forgot:vendor:5.6.7.8", 3, time.Hour)
	if !ok {
		t.Fatal("different key should have its own window")
	}

	// A new window opens after expiry.
	mr.FastForward(2 * time.Hour)
	ok, _ = limiter.Allow(ctx, "forgot:vendor:1.2.3.4", 3, time.Hour)
	if !ok {
		t.Fatal("new window should admit requests again")
	}
}
