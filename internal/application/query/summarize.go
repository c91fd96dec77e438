package query

import (
	"context"

	"github.com/unipath/course-planner/internal/domain/planner"
	"github.com/unipath/course-planner/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUMMARIZE QUERY
// Population-level catalog analytics: course and student totals plus
// prerequisite-count rollups.
// ══════════════════════════════════════════════════════════════════════════════

// SummaryCache caches the computed summary between requests. The rollup is
// population-wide and changes only when the catalog is reseeded, so a short
// TTL cache in front of it is safe; per-request planning state is never
// cached anywhere.
type SummaryCache interface {
	GetSummary(ctx context.Context) (*planner.Summary, error)
	SetSummary(ctx context.Context, summary planner.Summary) error
}

// SummarizeHandler handles analytics summary queries.
type SummarizeHandler struct {
	store planner.GraphStore
	cache SummaryCache // optional
	log   *logger.Logger
}

// NewSummarizeHandler creates a new handler. cache may be nil.
func NewSummarizeHandler(store planner.GraphStore, cache SummaryCache, log *logger.Logger) *SummarizeHandler {
	if log == nil {
		log = logger.Default()
	}
	return &SummarizeHandler{store: store, cache: cache, log: log}
}

// Handle computes the catalog summary, consulting the cache first.
// Cache failures are logged and ignored: the store is the source of truth.
func (h *SummarizeHandler) Handle(ctx context.Context) (*planner.Summary, error) {
	if h.cache != nil {
		if cached, err := h.cache.GetSummary(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	counts, err := h.store.CoursePrereqCounts(ctx)
	if err != nil {
		return nil, err
	}

	students, err := h.store.StudentCount(ctx)
	if err != nil {
		return nil, err
	}

	summary := planner.Summarize(counts, students)

	if h.cache != nil {
		if err := h.cache.SetSummary(ctx, summary); err != nil {
			h.log.Warn("summary cache write failed", logger.Err(err))
		}
	}

	return &summary, nil
}
