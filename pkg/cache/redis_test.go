package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// Set MOVE_TREE_TEST_REDIS=host:port to run against a real server.
func newTestRedis(t *testing.T) *RedisCache {
	t.Helper()
	addr := os.Getenv("MOVE_TREE_TEST_REDIS")
	if addr == "" {
		t.Skip("MOVE_TREE_TEST_REDIS not set")
	}
	c, err := NewRedisCache(context.Background(), addr)
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c.(*RedisCache)
}

func TestRedisCache(t *testing.T) {
	c := newTestRedis(t)
	ctx := context.Background()
	key := SnapshotKey(t.Name(), "testnet", nil)

	if err := c.Set(ctx, key, []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "value" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}

	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n < 1 {
		t.Errorf("Clear() = %d, want at least 1", n)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("Get after Clear should miss")
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := NewRedisCache(ctx, "127.0.0.1:1"); err == nil {
		t.Error("expected error for unreachable server")
	}
}
