package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aptlinks/backend/config"
)

// ErrMiss is returned when a key is not cached.
var ErrMiss = errors.New("cache miss")

// Cache is a short-TTL read-through cache for derived lookups (resolved
// names, resolved avatars). The ledger stays the source of truth; profile
// reads themselves are never cached.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string)
}

// NewRedisCache connects to the configured redis instance. Returns a nil
// cache (disabled) when redis is not configured.
func NewRedisCache(cfg *config.Config) (Cache, error) {
	if !cfg.RedisEnabled() {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("Connected to Redis at %s", cfg.RedisAddr())
	return &redisCache{client: client, ttl: cfg.CacheTTL}, nil
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrMiss
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores best-effort; a failing cache never fails the request.
func (c *redisCache) Set(ctx context.Context, key, value string) {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		log.Printf("cache set %s: %v", key, err)
	}
}

// Client exposes the underlying redis client for components that need more
// than get/set, such as the rate limiter.
func (c *redisCache) Client() *redis.Client {
	return c.client
}

// RedisClient extracts the raw redis client from a cache when it is
// redis-backed, nil otherwise.
func RedisClient(c Cache) *redis.Client {
	if rc, ok := c.(*redisCache); ok {
		return rc.Client()
	}
	return nil
}
