package cache

import (
	"context"
	"fmt"
	"testing"

	"github.com/redis/go-redis/v9"
)

func stubRedis(t *testing.T, pingErr error) {
	t.Helper()
	origNew, origPing, origParse := newRedisClient, pingRedis, parseRedisURL
	t.Cleanup(func() {
		newRedisClient, pingRedis, parseRedisURL = origNew, origPing, origParse
	})
	newRedisClient = func(opts *redis.Options) *redis.Client {
		return redis.NewClient(opts)
	}
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		return pingErr
	}
}

func TestNewWithoutAddrDisablesCache(t *testing.T) {
	if c := New(context.Background(), "  "); c != nil {
		t.Fatal("expected nil cache without an address")
	}
}

func TestNewWithBadURLDisablesCache(t *testing.T) {
	stubRedis(t, nil)
	if c := New(context.Background(), "redis://[broken"); c != nil {
		t.Fatal("expected nil cache for unparseable URL")
	}
}

func TestNewWithUnreachableServerDisablesCache(t *testing.T) {
	stubRedis(t, fmt.Errorf("connection refused"))
	if c := New(context.Background(), "localhost:6379"); c != nil {
		t.Fatal("expected nil cache when ping fails")
	}
}

func TestNewConnects(t *testing.T) {
	stubRedis(t, nil)
	c := New(context.Background(), "localhost:6379")
	if c == nil {
		t.Fatal("expected cache when ping succeeds")
	}
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *ContextCache
	if err := c.StoreContext(context.Background(), nil); err != nil {
		t.Fatalf("nil cache store should be a no-op: %v", err)
	}
	mc, err := c.LoadContext(context.Background())
	if err != nil || mc != nil {
		t.Fatalf("nil cache load should return nothing: %v %v", mc, err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("nil cache close should be a no-op: %v", err)
	}
}
