package query

import (
	"context"

	"github.com/unipath/course-planner/internal/domain/planner"
	"github.com/unipath/course-planner/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PLAN SEQUENCE QUERY
// Produces a level-grouped study plan leading to a target course: groups of
// courses that can be taken together once all earlier groups are completed.
// ══════════════════════════════════════════════════════════════════════════════

// PlanSequenceQuery contains the request parameters.
type PlanSequenceQuery struct {
	// StudentID identifies the student the plan is built for.
	StudentID string

	// CourseID is the code of the target course.
	CourseID string
}

// Validate checks the query parameters and returns the typed identifiers.
func (q *PlanSequenceQuery) Validate() (shared.StudentID, shared.CourseID, error) {
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

// SequenceDTO is the planned course sequence.
type SequenceDTO struct {
	StudentID    string `json:"student_id"`
	TargetCourse string `json:"target_course"`

	// Sequence is the ordered list of levels. Empty when the target is
	// already completed.
	Sequence [][]string `json:"sequence"`

	// Degenerate marks a plan whose final level bundles an unresolvable
	// remainder (cycle or dangling prerequisite). The plan is still the
	// best-effort ordering.
	Degenerate bool `json:"degenerate,omitempty"`
}

// PlanSequenceHandler handles study-plan queries.
type PlanSequenceHandler struct {
	store planner.GraphStore
}

// NewPlanSequenceHandler creates a new handler.
func NewPlanSequenceHandler(store planner.GraphStore) *PlanSequenceHandler {
	return &PlanSequenceHandler{store: store}
}

// Handle executes the planning query.
//
// When the reachable-edge fetch comes back empty the target either does not
// exist or simply has no prerequisites; an explicit existence check
// separates the two before the scheduler runs on the singleton graph.
func (h *PlanSequenceHandler) Handle(ctx context.Context, q PlanSequenceQuery) (*SequenceDTO, error) {
	student, course, err := q.Validate()
	if err != nil {
		return nil, err
	}

	exists, err := h.store.StudentExists(ctx, student)
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

	if len(edges) == 0 {
		exists, err := h.store.CourseExists(ctx, course)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.ErrCourseNotFound
		}
	}

	completed, err := h.store.CompletedCourses(ctx, student)
	if err != nil {
		return nil, err
	}

	graph := planner.NewGraph(course, edges)
	schedule := planner.ScheduleLevels(graph, completed)

	sequence := make([][]string, len(schedule.Levels))
	for i, level := range schedule.Levels {
		sequence[i] = courseStrings(level)
	}

	return &SequenceDTO{
		StudentID:    student.String(),
		TargetCourse: course.String(),
		Sequence:     sequence,
		Degenerate:   schedule.Degenerate,
	}, nil
}
