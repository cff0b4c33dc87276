package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Stats tracks cache performance
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Sets   int64 `json:"sets"`
}

// ResultCache stores computed engine results keyed by their inputs.
// Results are deterministic, so entries never need invalidation, only expiry.
type ResultCache struct {
	redis  *redis.Client
	ttl    time.Duration
	prefix string
	log    *logrus.Logger

	mu    sync.Mutex
	stats Stats
}

// NewResultCache creates a Redis-backed result cache
func NewResultCache(client *redis.Client, ttl time.Duration, log *logrus.Logger) *ResultCache {
	return &ResultCache{
		redis:  client,
		ttl:    ttl,
		prefix: "matrix:",
		log:    log,
	}
}

// Key builds a cache key from a kind and its inputs
func Key(kind string, parts ...any) string {
	key := kind
	for _, p := range parts {
		key += fmt.Sprintf(":%v", p)
	}
	return key
}

// Get decodes a cached value into dst and reports whether it was found.
// Redis and decoding errors count as misses.
func (c *ResultCache) Get(ctx context.Context, key string, dst any) bool {
	data, err := c.redis.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WithError(err).WithField("key", key).Warn("Redis get failed")
		}
		c.count(&c.stats.Misses)
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("Discarding undecodable cache entry")
		c.count(&c.stats.Misses)
		return false
	}
	c.count(&c.stats.Hits)
	return true
}

// Set stores v under key with the cache TTL
func (c *ResultCache) Set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.WithError(err).WithField("key", key).Warn("Cannot encode cache entry")
		return
	}
	if err := c.redis.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("Redis set failed")
		return
	}
	c.count(&c.stats.Sets)
}

// GetStats returns current cache statistics
func (c *ResultCache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *ResultCache) count(n *int64) {
	c.mu.Lock()
	*n++
	c.mu.Unlock()
}
