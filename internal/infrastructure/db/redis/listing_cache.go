package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/campuslink/events-api/internal/core/domain"
)

const listingKey = "events:approved"
const listingTTL = time.Minute

// ListingCache caches the public approved-events listing in Redis. Cache
// faults are tolerated: a miss or an error just falls through to the store,
// so the cache never affects correctness, only read latency.
type ListingCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewListingCache creates a ListingCache wrapping the given Redis client.
func NewListingCache(client *redis.Client, log zerolog.Logger) *ListingCache {
	return &ListingCache{client: client, log: log}
}

// Get returns the cached listing, or ok=false on miss or error.
func (c *ListingCache) Get(ctx context.Context) ([]*domain.Event, bool) {
	raw, err := c.client.Get(ctx, listingKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("listing cache read failed")
		}
		return nil, false
	}

	var events []*domain.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		c.log.Warn().Err(err).Msg("listing cache entry corrupt, dropping")
		c.Invalidate(ctx)
		return nil, false
	}
	return events, true
}

// Set stores the listing with a short TTL.
func (c *ListingCache) Set(ctx context.Context, events []*domain.Event) {
	raw, err := json.Marshal(events)
	if err != nil {
		c.log.Warn().Err(err).Msg("listing cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, listingKey, raw, listingTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("listing cache write failed")
	}
}

// Invalidate drops the cached listing. Called on every moderation transition
// that changes what the public listing contains.
func (c *ListingCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, listingKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("listing cache invalidation failed")
	}
}
