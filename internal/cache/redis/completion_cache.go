// Package redis provides the Redis-backed completion cache. Completions are
// stored by content address, so identical prompts against the same model hit
// the cache regardless of which request produced them.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/studysnap/aicore/internal/domain"
)

// Cache implements domain.CompletionCache on a Redis client.
type Cache struct {
	client *redis.Client
}

// NewCache creates a new completion cache.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get retrieves a cached completion, or domain.ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("cache get: %w", err)
	}
	return val, nil
}

// Set stores a completion under the given key.
func (c *Cache) Set(ctx context.Context, key, completion string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, completion, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
