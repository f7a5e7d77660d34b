package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// FeedCache keeps rendered calendar feeds in Redis for a short TTL so the
// calendar widget does not hammer the registration counts on every poll.
// A nil *FeedCache is valid and disables caching entirely.
type FeedCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewFeedCache connects to Redis and returns a cache. Returns nil when no
// address is configured, which callers treat as cache-off.
func NewFeedCache(addr, password string, db int, ttl time.Duration, logger zerolog.Logger) *FeedCache {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &FeedCache{rdb: rdb, ttl: ttl, logger: logger}
}

func feedKey(courseID string) string {
	return "feed:" + courseID
}

// Get returns the cached feed payload for a course, if any.
func (c *FeedCache) Get(ctx context.Context, courseID string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	payload, err := c.rdb.Get(ctx, feedKey(courseID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Str("courseId", courseID).Msg("Feed cache read failed")
		}
		return nil, false
	}
	return payload, true
}

// Set stores the rendered feed payload for a course. Failures are logged
// and ignored; the cache is best-effort.
func (c *FeedCache) Set(ctx context.Context, courseID string, payload []byte) {
	if c == nil {
		return
	}
	if err := c.rdb.Set(ctx, feedKey(courseID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("courseId", courseID).Msg("Feed cache write failed")
	}
}

// Invalidate drops the cached feed for a course, typically after a
// registration changed the seat counts.
func (c *FeedCache) Invalidate(ctx context.Context, courseID string) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, feedKey(courseID)).Err(); err != nil {
		c.logger.Warn().Err(err).Str("courseId", courseID).Msg("Feed cache invalidation failed")
	}
}

// Close releases the Redis connection.
func (c *FeedCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
