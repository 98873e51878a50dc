package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"btcpulse/internal/domain"
)

const (
	contextKey = "btcpulse:last-context"
	contextTTL = 48 * time.Hour
)

var (
	newRedisClient = func(opts *redis.Options) *redis.Client {
		return redis.NewClient(opts)
	}
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		return client.Ping(ctx).Err()
	}
	parseRedisURL = redis.ParseURL
)

// ContextCache keeps the previous run's market context in Redis so the news
// cycle can attach it even when the file artifact is gone. The cache is
// optional: a nil *ContextCache is safe to use and does nothing.
type ContextCache struct {
	client *redis.Client
}

// New connects to Redis when addr is set. Connection problems degrade to a
// nil cache with a warning; a batch job must not die over a missing cache.
func New(ctx context.Context, addr string) *ContextCache {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil
	}

	opts := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := parseRedisURL(addr)
		if err != nil {
			log.Printf("Warning: invalid REDIS_URL, cache disabled: %v", err)
			return nil
		}
		opts = parsed
	}

	client := newRedisClient(opts)
	if err := pingRedis(ctx, client); err != nil {
		log.Printf("Warning: Redis unreachable, cache disabled: %v", err)
		return nil
	}
	log.Println("Connected to Redis")
	return &ContextCache{client: client}
}

func (c *ContextCache) StoreContext(ctx context.Context, mc *domain.NewsContext) error {
	if c == nil || c.client == nil || mc == nil {
		return nil
	}
	data, err := json.Marshal(mc)
	if err != nil {
		return fmt.Errorf("marshal market context: %w", err)
	}
	if err := c.client.Set(ctx, contextKey, data, contextTTL).Err(); err != nil {
		return fmt.Errorf("store market context: %w", err)
	}
	return nil
}

func (c *ContextCache) LoadContext(ctx context.Context) (*domain.NewsContext, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, contextKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load market context: %w", err)
	}
	var mc domain.NewsContext
	if err := json.Unmarshal(data, &mc); err != nil {
		return nil, fmt.Errorf("decode market context: %w", err)
	}
	return &mc, nil
}

func (c *ContextCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
