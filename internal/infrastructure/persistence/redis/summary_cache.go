package redis

import (
	"context"
	"errors"

	"github.com/unipath/course-planner/internal/domain/planner"
	"github.com/unipath/course-planner/pkg/circuitbreaker"
)

// SummaryCache is the Redis-backed analytics summary cache. It satisfies
// the application layer's SummaryCache port: a miss is reported as a nil
// summary with no error, so callers fall through to the store. A circuit
// breaker guards the Redis calls; when it is open, reads fail fast and
// the summary is computed fresh.
type SummaryCache struct {
	cache   *Cache
	breaker *circuitbreaker.CircuitBreaker
}

// NewSummaryCache creates a new SummaryCache.
func NewSummaryCache(cache *Cache) *SummaryCache {
	return &SummaryCache{
		cache:   cache,
		breaker: circuitbreaker.CacheBreaker(nil),
	}
}

// GetSummary returns the cached summary, or nil on a miss. A miss is not
// a backend failure and does not count against the circuit; an open
// circuit reads as a miss so the caller recomputes from the store.
func (c *SummaryCache) GetSummary(ctx context.Context) (*planner.Summary, error) {
	var summary planner.Summary
	var miss bool

	err := c.breaker.ExecuteWithFallback(ctx,
		func(ctx context.Context) error {
			err := c.cache.Get(ctx, SummaryKey(), &summary)
			if errors.Is(err, ErrCacheMiss) {
				miss = true
				return nil
			}
			return err
		},
		func(error) error {
			miss = true
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	if miss {
		return nil, nil
	}
	return &summary, nil
}

// SetSummary stores the summary with the standard TTL.
func (c *SummaryCache) SetSummary(ctx context.Context, summary planner.Summary) error {
	return c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.cache.Set(ctx, SummaryKey(), summary, TTLSummaryCache)
	})
}
