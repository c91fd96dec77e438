package planner

import (
	"context"

	"github.com/unipath/course-planner/internal/domain/shared"
)

// GraphStore is the storage collaborator contract. The core consumes
// bounded requirement edges and completion sets through this interface and
// assumes nothing about the backing query language; a graph database, a
// relational store, or an in-memory test double can all satisfy it.
//
// Every call is blocking, synchronous, and may fail. The core owns no
// retry logic: transient faults and timeouts surface as errors matching
// shared.ErrUpstreamUnavailable and are reported to the caller as-is.
type GraphStore interface {
	// EdgesReachableFrom returns the requirement edges reachable from the
	// course within maxDepth hops. No guarantee of full-graph completeness
	// beyond the depth bound.
	EdgesReachableFrom(ctx context.Context, course shared.CourseID, maxDepth int) ([]RequirementEdge, error)

	// AllEdges returns every requirement edge in the catalog, for
	// population-wide diagnostics such as cycle detection.
	AllEdges(ctx context.Context) ([]RequirementEdge, error)

	// CourseExists reports whether the course is present in the catalog,
	// distinguishing "absent" from "present with no prerequisites".
	CourseExists(ctx context.Context, course shared.CourseID) (bool, error)

	// StudentExists reports whether the student is known, distinguishing
	// "no completions" from "no such student".
	StudentExists(ctx context.Context, student shared.StudentID) (bool, error)

	// CompletedCourses returns the student's completion set. An existing
	// student with no completions yields an empty set, not an error.
	CompletedCourses(ctx context.Context, student shared.StudentID) (CompletionSet, error)

	// CoursePrereqCounts returns every course with its direct prerequisite
	// count, for analytics rollups.
	CoursePrereqCounts(ctx context.Context) ([]CoursePrereqCount, error)

	// StudentCount returns the student population size.
	StudentCount(ctx context.Context) (int, error)
}
