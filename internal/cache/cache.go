package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"ouvidoria-ativa/internal/metrics"
)

const DefaultPrefix = "ouvidoria"

// Cache is a cache-aside layer over Redis. All cached views are derived,
// idempotent recomputations, so every failure mode degrades to computing
// directly against the backing store instead of surfacing an error.
type Cache struct {
	client *redis.Client
	prefix string
}

// New wraps the given client. A nil client yields a cache that always
// computes directly, which keeps the read paths identical whether or not
// Redis is configured.
func New(client *redis.Client, prefix string) *Cache {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Cache{client: client, prefix: prefix}
}

func (c *Cache) key(k string) string {
	return c.prefix + ":" + k
}

// GetOrSet looks key up in Redis and deserializes on a hit. On a miss, or
// whenever Redis is unreachable, it invokes compute; a successful result is
// stored under key with the given TTL and returned regardless of whether the
// store succeeded.
func GetOrSet[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, compute func(ctx context.Context) (T, error)) (T, error) {
	if c == nil || c.client == nil {
		metrics.CacheDegraded.Inc()
		return compute(ctx)
	}

	fullKey := c.key(key)

	cached, err := c.client.Get(ctx, fullKey).Result()
	switch {
	case err == nil:
		var value T
		if jsonErr := json.Unmarshal([]byte(cached), &value); jsonErr == nil {
			metrics.CacheHits.Inc()
			return value, nil
		}
		log.Printf("[cache] bad payload under %s, recomputing", fullKey)
	case err == redis.Nil:
		metrics.CacheMisses.Inc()
	default:
		log.Printf("[cache] get %s: %v, falling back to direct compute", fullKey, err)
		metrics.CacheDegraded.Inc()
		return compute(ctx)
	}

	value, err := compute(ctx)
	if err != nil {
		return value, err
	}

	if payload, jsonErr := json.Marshal(value); jsonErr == nil {
		if setErr := c.client.Set(ctx, fullKey, payload, ttl).Err(); setErr != nil {
			log.Printf("[cache] set %s: %v", fullKey, setErr)
		}
	}

	return value, nil
}

// Invalidate removes exact keys. Failures are logged and swallowed: a missed
// invalidation only means stale reads bounded by the entry's TTL.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}

	deleted, err := c.client.Del(ctx, full...).Result()
	if err != nil {
		log.Printf("[cache] invalidate %v: %v", keys, err)
		return
	}
	metrics.CacheInvalidations.Add(float64(deleted))
}

// InvalidatePattern removes every key matching the glob pattern, walking the
// keyspace with SCAN so large namespaces never block Redis.
func (c *Cache) InvalidatePattern(ctx context.Context, pattern string) {
	if c == nil || c.client == nil {
		return
	}

	fullPattern := c.key(pattern)

	var batch []string
	iter := c.client.Scan(ctx, 0, fullPattern, 100).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= 100 {
			c.delBatch(ctx, batch)
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("[cache] scan %s: %v", fullPattern, err)
	}
	if len(batch) > 0 {
		c.delBatch(ctx, batch)
	}
}

func (c *Cache) delBatch(ctx context.Context, keys []string) {
	deleted, err := c.client.Del(ctx, keys...).Result()
	if err != nil {
		log.Printf("[cache] delete batch: %v", err)
		return
	}
	metrics.CacheInvalidations.Add(float64(deleted))
}
