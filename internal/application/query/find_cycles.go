package query

import (
	"context"

	"github.com/unipath/course-planner/internal/domain/planner"
	"github.com/unipath/course-planner/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// FIND CYCLES QUERY
// Diagnostic enumeration of cycles in the catalog's requirement graph.
// A cycle means a course eventually requires itself and can never be taken.
// ══════════════════════════════════════════════════════════════════════════════

// FindCyclesQuery contains the request parameters.
type FindCyclesQuery struct {
	// Limit caps the number of reported cycles. Zero means the default.
	Limit int
}

// Validate checks and normalizes the query parameters.
func (q *FindCyclesQuery) Validate() error {
	if q.Limit == 0 {
		q.Limit = planner.DefaultCycleLimit
	}
	if q.Limit < 0 || q.Limit > planner.MaxCycleLimit {
		return shared.ErrInvalidLimit
	}
	return nil
}

// PrerequisiteCycleDTO is one detected cycle.
type PrerequisiteCycleDTO struct {
	// Courses is the cycle's ordered course sequence, rotated to start at
	// the lexicographically smallest course; the closing repetition is
	// normalized away.
	Courses []string `json:"courses"`
}

// FindCyclesHandler handles cycle-detection queries.
type FindCyclesHandler struct {
	store planner.GraphStore
}

// NewFindCyclesHandler creates a new handler.
func NewFindCyclesHandler(store planner.GraphStore) *FindCyclesHandler {
	return &FindCyclesHandler{store: store}
}

// Handle executes cycle detection over the full catalog.
func (h *FindCyclesHandler) Handle(ctx context.Context, q FindCyclesQuery) ([]PrerequisiteCycleDTO, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	edges, err := h.store.AllEdges(ctx)
	if err != nil {
		return nil, err
	}

	cycles := planner.FindCycles(edges, planner.MaxTraversalDepth, q.Limit)

	out := make([]PrerequisiteCycleDTO, len(cycles))
	for i, cycle := range cycles {
		out[i] = PrerequisiteCycleDTO{Courses: courseStrings(cycle)}
	}
	return out, nil
}
