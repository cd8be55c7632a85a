// Package cache is the shared read-through cache behind the catalogue and
// order listings. Values are JSON blobs keyed by resource name plus the
// normalized filters of the query, so identical queries inside the TTL
// never reach Postgres. Mutation paths invalidate the keys they affect.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/trottiparts/trottiparts-api/internal/config"
)

const defaultTTL = 5 * time.Minute

type QueryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewQueryCache(conf *config.RedisConfig) (*QueryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis.Ping -> %w", err)
	}

	ttl := defaultTTL
	if conf.TTLSecs > 0 {
		ttl = time.Duration(conf.TTLSecs) * time.Second
	}

	return &QueryCache{
		client: client,
		ttl:    ttl,
	}, nil
}

// Key builds a stable cache key from a resource name and its filters.
// Empty filters are skipped so "parts" and "parts?category=" collide on
// purpose.
func Key(resource string, filters ...string) string {
	parts := []string{resource}
	for _, f := range filters {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, ":")
}

// Get reports whether the key was present and, if so, decodes it into dest.
// Cache failures degrade to a miss.
func (c *QueryCache) Get(ctx context.Context, key string, dest any) bool {
	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			zap.L().Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		zap.L().Warn("cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}

	return true
}

func (c *QueryCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis.Set -> %w", err)
	}
	return nil
}

func (c *QueryCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis.Del -> %w", err)
	}
	return nil
}
