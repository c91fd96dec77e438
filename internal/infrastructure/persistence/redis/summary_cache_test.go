package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unipath/course-planner/internal/domain/planner"
	"github.com/unipath/course-planner/pkg/circuitbreaker"
)

// deadCache returns a Cache whose client points at a closed port, so
// every call fails fast with a connection error.
func deadCache(t *testing.T) *Cache {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		ReadTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return &Cache{client: client}
}

func TestSummaryCache_CircuitOpensWhenRedisDown(t *testing.T) {
	sc := NewSummaryCache(deadCache(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := sc.GetSummary(ctx)
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrCacheMiss)
	}

	// Failure threshold reached: reads now fail fast without touching
	// Redis and report a miss so the summary is computed fresh.
	require.True(t, sc.breaker.IsOpen())

	summary, err := sc.GetSummary(ctx)
	assert.NoError(t, err)
	assert.Nil(t, summary)

	err = sc.SetSummary(ctx, planner.Summary{TotalCourses: 1})
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
}
