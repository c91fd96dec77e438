// Package query contains read operations (CQRS - Queries). Each handler
// orchestrates one core operation: it validates input, fetches the bounded
// subgraph and completion data from the graph store, runs the planning
// engine, and maps the result to a transport-friendly DTO.
package query

import (
	"context"

	"github.com/unipath/course-planner/internal/domain/planner"
	"github.com/unipath/course-planner/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CHECK ELIGIBILITY QUERY
// Answers "may this student take this course right now?" by comparing the
// target's transitive prerequisite closure against the student's completions.
// ══════════════════════════════════════════════════════════════════════════════

// CheckEligibilityQuery contains the request parameters.
type CheckEligibilityQuery struct {
	// StudentID identifies the student whose completions are consulted.
	StudentID string

	// CourseID is the code of the target course.
	CourseID string
}

// Validate checks the query parameters and returns the typed identifiers.
func (q *CheckEligibilityQuery) Validate() (shared.StudentID, shared.CourseID, error) {
	student, err := shared.NewStudentID(q.StudentID)
	if err != nil {
		return "", "", err
	}
	course, err := shared.NewCourseID(q.CourseID)
	if err != nil {
		return "", "", err
	}
	return student, course, nil
}

// EligibilityDTO is the eligibility check result.
type EligibilityDTO struct {
	StudentID string `json:"student_id"`
	CourseID  string `json:"course_id"`

	// Eligible is true when every transitive prerequisite is completed.
	Eligible bool `json:"eligible"`

	// MissingPrerequisites lists unmet prerequisites, sorted.
	MissingPrerequisites []string `json:"missing_prerequisites"`
}

// CheckEligibilityHandler handles eligibility queries.
type CheckEligibilityHandler struct {
	store planner.GraphStore
}

// NewCheckEligibilityHandler creates a new handler.
func NewCheckEligibilityHandler(store planner.GraphStore) *CheckEligibilityHandler {
	return &CheckEligibilityHandler{store: store}
}

// Handle executes the eligibility check.
//
// Both existence checks run explicitly so the caller learns WHICH entity is
// missing; the original system collapsed the two cases into one ambiguous
// not-found. The course is checked first.
func (h *CheckEligibilityHandler) Handle(ctx context.Context, q CheckEligibilityQuery) (*EligibilityDTO, error) {
	student, course, err := q.Validate()
	if err != nil {
		return nil, err
	}

	exists, err := h.store.CourseExists(ctx, course)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrCourseNotFound
	}

	exists, err = h.store.StudentExists(ctx, student)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrStudentNotFound
	}

	edges, err := h.store.EdgesReachableFrom(ctx, course, planner.MaxTraversalDepth)
	if err != nil {
		return nil, err
	}

	completed, err := h.store.CompletedCourses(ctx, student)
	if err != nil {
		return nil, err
	}

	graph := planner.NewGraph(course, edges)
	result := planner.EvaluateEligibility(graph, completed)

	return &EligibilityDTO{
		StudentID:            student.String(),
		CourseID:             course.String(),
		Eligible:             result.Eligible,
		MissingPrerequisites: courseStrings(result.Missing),
	}, nil
}

// courseStrings converts course identifiers for JSON transport,
// preserving order. Always non-nil so empty lists encode as [].
func courseStrings(courses []shared.CourseID) []string {
	out := make([]string, len(courses))
	for i, c := range courses {
		out[i] = c.String()
	}
	return out
}
