package planner

import "github.com/unipath/course-planner/internal/domain/shared"

// Eligibility is the result of checking whether a student may take a course.
type Eligibility struct {
	Eligible bool
	Missing  []shared.CourseID // sorted; empty when eligible
}

// EvaluateEligibility computes the transitive prerequisite set of the
// graph's target and subtracts the completion set. A course with no
// prerequisites is trivially eligible regardless of completion state.
func EvaluateEligibility(g *Graph, completed CompletionSet) Eligibility {
	prereqs := transitivePrerequisites(g, g.Target())

	missing := make([]shared.CourseID, 0)
	for c := range prereqs {
		if !completed.Contains(c) {
			missing = append(missing, c)
		}
	}
	sortCourses(missing)

	return Eligibility{
		Eligible: len(missing) == 0,
		Missing:  missing,
	}
}

// transitivePrerequisites walks the prerequisite adjacency from the given
// course. The graph itself is already bounded by MaxTraversalDepth at fetch
// time, so a plain breadth-first walk suffices here.
func transitivePrerequisites(g *Graph, from shared.CourseID) map[shared.CourseID]struct{} {
	seen := make(map[shared.CourseID]struct{})
	queue := make([]shared.CourseID, 0, g.Len())

	for p := range g.prereqSet(from) {
		queue = append(queue, p)
	}

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		for p := range g.prereqSet(c) {
			if _, ok := seen[p]; !ok {
				queue = append(queue, p)
			}
		}
	}

	// A cyclic graph can route the walk back to the origin; a course is
	// never its own prerequisite in the result.
	delete(seen, from)

	return seen
}
