package whois

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const cacheKeyPrefix = "whois:"

// Cache decorates a Client with a Redis-backed TTL cache. Concurrent
// lookups for the same name are collapsed through singleflight so the
// upstream sees at most one in-flight fetch per domain.
//
// Cache failures degrade to the upstream client; a broken cache never makes
// a lookup fail.
type Cache struct {
	next   Client
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group
}

// NewCache wraps next with a cache. ttl bounds how stale a record may be
// served.
func NewCache(next Client, client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{next: next, client: client, ttl: ttl, logger: logger}
}

func (c *Cache) Fetch(ctx context.Context, domain string) (*Record, error) {
	key := cacheKeyPrefix + domain

	if data, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var rec Record
		if err := json.Unmarshal(data, &rec); err == nil {
			return &rec, nil
		}
		c.logger.WarnContext(ctx, "discarding corrupt whois cache entry", "domain", domain)
	} else if err != redis.Nil {
		c.logger.WarnContext(ctx, "whois cache read failed", "domain", domain, "error", err.Error())
	}

	v, err, _ := c.group.Do(domain, func() (any, error) {
		rec, err := c.next.Fetch(ctx, domain)
		if err != nil {
			return nil, err
		}
		if data, err := json.Marshal(rec); err == nil {
			if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
				c.logger.WarnContext(ctx, "whois cache write failed", "domain", domain, "error", err.Error())
			}
		}
		return rec, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Record), nil
}

// CheckAvailability is not cached: availability flips the moment someone
// registers the name, so a stale answer is worse than a slow one.
func (c *Cache) CheckAvailability(ctx context.Context, domain string) (bool, error) {
	return c.next.CheckAvailability(ctx, domain)
}
