package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unipath/course-planner/internal/domain/planner"
)

type fakeSummaryCache struct {
	stored  *planner.Summary
	getErr  error
	setErr  error
	setHits int
}

func (c *fakeSummaryCache) GetSummary(context.Context) (*planner.Summary, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.stored, nil
}

func (c *fakeSummaryCache) SetSummary(_ context.Context, s planner.Summary) error {
	c.setHits++
	if c.setErr != nil {
		return c.setErr
	}
	c.stored = &s
	return nil
}

func TestSummarizeHandler_ComputesFromStore(t *testing.T) {
	store := newFakeStore()
	store.addEdge("B", "A")
	store.addEdge("C", "A")
	store.addEdge("C", "B")
	store.addStudent("s1")
	store.addStudent("s2")

	h := NewSummarizeHandler(store, nil, nil)
	summary, err := h.Handle(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalCourses)
	assert.Equal(t, 2, summary.TotalStudents)
	assert.Equal(t, 2, summary.MaxPrereqs)
	assert.Equal(t, 1, summary.CoursesWithoutPrereqs)
	assert.InDelta(t, 1.0, summary.AvgPrereqs, 0.001)
}

func TestSummarizeHandler_CacheHitSkipsStore(t *testing.T) {
	store := newFakeStore()
	store.failWith = errors.New("store must not be touched")
	cache := &fakeSummaryCache{stored: &planner.Summary{TotalCourses: 7}}

	h := NewSummarizeHandler(store, cache, nil)
	summary, err := h.Handle(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 7, summary.TotalCourses)
}

func TestSummarizeHandler_CacheMissPopulatesCache(t *testing.T) {
	store := newFakeStore()
	store.addCourse("A")
	cache := &fakeSummaryCache{}

	h := NewSummarizeHandler(store, cache, nil)
	_, err := h.Handle(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, cache.setHits)
	require.NotNil(t, cache.stored)
	assert.Equal(t, 1, cache.stored.TotalCourses)
}

func TestSummarizeHandler_CacheReadFailureFallsBackToStore(t *testing.T) {
	store := newFakeStore()
	store.addCourse("A")
	cache := &fakeSummaryCache{getErr: errors.New("circuit breaker is open")}

	h := NewSummarizeHandler(store, cache, nil)
	summary, err := h.Handle(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalCourses)
}

func TestSummarizeHandler_CacheWriteFailureIsNotFatal(t *testing.T) {
	store := newFakeStore()
	store.addCourse("A")
	cache := &fakeSummaryCache{setErr: errors.New("redis down")}

	h := NewSummarizeHandler(store, cache, nil)
	summary, err := h.Handle(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalCourses)
}
