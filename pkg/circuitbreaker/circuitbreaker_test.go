package circuitbreaker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func fail(context.Context) error { return errBoom }
func ok(context.Context) error   { return nil }

func TestDatabaseBreaker_OpensAfterThreeFailures(t *testing.T) {
	cb := DatabaseBreaker(nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Execute(ctx, fail), errBoom)
	}

	assert.True(t, cb.IsOpen())
	assert.ErrorIs(t, cb.Execute(ctx, ok), ErrCircuitOpen)
}

func TestCacheBreaker_OpensAfterFiveFailures(t *testing.T) {
	cb := CacheBreaker(nil)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.ErrorIs(t, cb.Execute(ctx, fail), errBoom)
	}
	assert.True(t, cb.IsClosed())

	require.ErrorIs(t, cb.Execute(ctx, fail), errBoom)
	assert.True(t, cb.IsOpen())
}

func TestBreaker_SuccessResetsFailureStreak(t *testing.T) {
	cb := DatabaseBreaker(nil)
	ctx := context.Background()

	require.ErrorIs(t, cb.Execute(ctx, fail), errBoom)
	require.ErrorIs(t, cb.Execute(ctx, fail), errBoom)
	require.NoError(t, cb.Execute(ctx, ok))
	require.ErrorIs(t, cb.Execute(ctx, fail), errBoom)
	require.ErrorIs(t, cb.Execute(ctx, fail), errBoom)

	assert.True(t, cb.IsClosed())
}

func TestBreaker_ResetClosesCircuit(t *testing.T) {
	cb := DatabaseBreaker(nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_ = cb.Execute(ctx, fail)
	}
	require.True(t, cb.IsOpen())

	cb.Reset()
	assert.True(t, cb.IsClosed())
	assert.NoError(t, cb.Execute(ctx, ok))
}

func TestBreaker_StateChangeCallback(t *testing.T) {
	var transitions []State
	cb := DatabaseBreaker(func(name string, from, to State) {
		assert.Equal(t, "database", name)
		transitions = append(transitions, to)
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_ = cb.Execute(ctx, fail)
	}

	require.Len(t, transitions, 1)
	assert.Equal(t, StateOpen, transitions[0])
}
