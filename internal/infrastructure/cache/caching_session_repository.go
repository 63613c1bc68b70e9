// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"seasonality_backend/internal/feature/eventstudy/domain/entity"
	"seasonality_backend/internal/feature/eventstudy/usecase"
)

// CachingSessionRepository decorates a SessionRepository with Redis caching.
// Historical daily data only changes at the nightly load, so cached ranges
// stay warm for a whole trading day. It implements the decorator pattern,
// transparently adding caching without modifying the underlying repository.
type CachingSessionRepository struct {
	inner     usecase.SessionRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingSessionRepository decorates a SessionRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "sessions".
func NewCachingSessionRepository(rdb *redis.Client, ttl time.Duration, inner usecase.SessionRepository, namespace string) *CachingSessionRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "sessions"
	}
	return &CachingSessionRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindRange retrieves sessions, checking cache first then falling back to the database.
func (c *CachingSessionRepository) FindRange(ctx context.Context, symbol string, from, to time.Time) ([]entity.TradingSession, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindRange(ctx, symbol, from, to)
	}

	key := c.cacheKey(symbol, from, to)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.TradingSession
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindRange(ctx, symbol, from, to)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Invalidate deletes all cached ranges for a symbol using SCAN.
// Called after a nightly price load rewrites the symbol's history.
func (c *CachingSessionRepository) Invalidate(ctx context.Context, symbol string) error {
	if c.rdb == nil {
		return nil
	}
	pattern := fmt.Sprintf("%s:%s:*", c.namespace, safe(symbol))
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// cacheKey generates a cache key for a specific range query.
func (c *CachingSessionRepository) cacheKey(symbol string, from, to time.Time) string {
	return fmt.Sprintf("%s:%s:%s:%s",
		c.namespace,
		safe(symbol),
		from.UTC().Format("2006-01-02"),
		to.UTC().Format("2006-01-02"),
	)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
