package query

import (
	"context"

	"github.com/unipath/course-planner/internal/domain/planner"
	"github.com/unipath/course-planner/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SHORTEST PATH QUERY
// Finds the shortest prerequisite chain between two courses, following the
// requirement direction for at most the standard traversal depth.
// ══════════════════════════════════════════════════════════════════════════════

// ShortestPathQuery contains the request parameters.
type ShortestPathQuery struct {
	// FromCourse is the starting course code.
	FromCourse string

	// ToCourse is the destination course code.
	ToCourse string
}

// Validate checks the query parameters and returns the typed identifiers.
func (q *ShortestPathQuery) Validate() (shared.CourseID, shared.CourseID, error) {
	from, err := shared.NewCourseID(q.FromCourse)
	if err != nil {
		return "", "", err
	}
	to, err := shared.NewCourseID(q.ToCourse)
	if err != nil {
		return "", "", err
	}
	return from, to, nil
}

// ShortestPathDTO is the shortest prerequisite chain between two courses.
type ShortestPathDTO struct {
	FromCourse string `json:"from_course"`
	ToCourse   string `json:"to_course"`

	// Path lists the chain including both endpoints; empty when no
	// bounded path exists.
	Path []string `json:"path"`

	// Length is the number of courses on the path.
	Length int `json:"length"`
}

// ShortestPathHandler handles shortest-path queries.
type ShortestPathHandler struct {
	store planner.GraphStore
}

// NewShortestPathHandler creates a new handler.
func NewShortestPathHandler(store planner.GraphStore) *ShortestPathHandler {
	return &ShortestPathHandler{store: store}
}

// Handle executes the shortest-path query. Both endpoints must exist;
// an unreachable destination is not an error, just an empty path.
func (h *ShortestPathHandler) Handle(ctx context.Context, q ShortestPathQuery) (*ShortestPathDTO, error) {
	from, to, err := q.Validate()
	if err != nil {
		return nil, err
	}

	for _, course := range []shared.CourseID{from, to} {
		exists, err := h.store.CourseExists(ctx, course)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.ErrCourseNotFound
		}
	}

	edges, err := h.store.EdgesReachableFrom(ctx, from, planner.MaxTraversalDepth)
	if err != nil {
		return nil, err
	}

	path := planner.ShortestPath(edges, from, to, planner.MaxTraversalDepth)

	return &ShortestPathDTO{
		FromCourse: from.String(),
		ToCourse:   to.String(),
		Path:       courseStrings(path),
		Length:     len(path),
	}, nil
}
