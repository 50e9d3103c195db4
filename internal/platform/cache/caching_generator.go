// Package cache provides caching decorators for usecase interfaces.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"umkm_backend/internal/feature/exportanalysis/domain/entity"
	"umkm_backend/internal/feature/exportanalysis/usecase"
)

// DefaultNamespace is the key prefix used when none is given.
const DefaultNamespace = "genai"

// CachingGenerator decorates a Generator with Redis caching of raw model replies.
// Only successful, non-empty replies of cacheable tasks are stored; chat is
// always forwarded to the inner generator.
type CachingGenerator struct {
	inner     usecase.Generator
	rdb       *redis.Client
	ttl       func() time.Duration
	namespace string
}

var _ usecase.Generator = (*CachingGenerator)(nil)

// NewCachingGenerator decorates inner with Redis caching.
// If ttl is nil, entries expire at the next daily reset (08:00 Asia/Jakarta).
// If namespace is empty, it uses DefaultNamespace.
func NewCachingGenerator(rdb *redis.Client, inner usecase.Generator, ttl func() time.Duration, namespace string) *CachingGenerator {
	if ttl == nil {
		ttl = DailyResetTTL(DefaultResetHour, DefaultTimezone)
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &CachingGenerator{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Generate returns a cached reply when present, otherwise calls the inner generator.
func (c *CachingGenerator) Generate(ctx context.Context, task entity.TaskKind, prompt string) (string, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil || !task.Cacheable() {
		return c.inner.Generate(ctx, task, prompt)
	}

	key := c.cacheKey(task, prompt)

	// 1) Check cache
	if s, err := c.rdb.Get(ctx, key).Result(); err == nil && s != "" {
		return s, nil
	} else if err != nil && !errors.Is(err, redis.Nil) {
		slog.Warn("cache read failed", "key", key, "error", err)
	}

	// 2) Call the model
	out, err := c.inner.Generate(ctx, task, prompt)
	if err != nil {
		return "", err
	}

	// 3) Store in cache (best effort)
	if out != "" {
		if err := c.rdb.Set(ctx, key, out, c.ttl()).Err(); err != nil {
			slog.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return out, nil
}

// Purge deletes every cached reply of the given task, or of all tasks when task is empty.
// It returns the number of deleted keys.
func (c *CachingGenerator) Purge(ctx context.Context, task entity.TaskKind) (int, error) {
	if c.rdb == nil {
		return 0, nil
	}
	pattern := c.namespace + ":*"
	if task != "" {
		pattern = fmt.Sprintf("%s:%s:*", c.namespace, task)
	}
	return c.deleteByPattern(ctx, pattern)
}

// cacheKey generates a cache key from the task and a digest of the prompt.
// The prompt already embeds product and language, so identical inputs share an entry.
func (c *CachingGenerator) cacheKey(task entity.TaskKind, prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return fmt.Sprintf("%s:%s:%s", c.namespace, task, hex.EncodeToString(sum[:]))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingGenerator) deleteByPattern(ctx context.Context, pattern string) (int, error) {
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			n, err := c.rdb.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += int(n)
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return deleted, nil
}
