package planner

import "github.com/unipath/course-planner/internal/domain/shared"

// Schedule is an ordered study plan: a list of levels, each a
// lexicographically sorted group of courses that become available together
// once all earlier levels are completed.
//
// For an acyclic reachable subgraph the concatenation of Levels equals
// exactly the graph's nodes minus the completion set, with no duplicates.
type Schedule struct {
	Target shared.CourseID
	Levels [][]shared.CourseID

	// Degenerate is set when the final level had to bundle an unresolved
	// remainder (a cycle, or a prerequisite missing from the store). The
	// schedule is still a valid best-effort plan.
	Degenerate bool
}

// ScheduleLevels runs level-based topological scheduling over the graph:
// a breadth-first variant of Kahn's algorithm grouped by readiness rather
// than single-node removal.
//
// Completed courses are treated as already done; if the target itself is
// completed the schedule is empty. When no remaining course has all its
// prerequisites done, the sorted remainder is appended as one final level
// and the loop terminates, so scheduling always finishes within Len()
// iterations even on cyclic input.
func ScheduleLevels(g *Graph, completed CompletionSet) Schedule {
	schedule := Schedule{Target: g.Target()}

	done := make(map[shared.CourseID]struct{}, len(completed))
	remaining := make(map[shared.CourseID]struct{}, g.Len())
	for _, c := range g.Nodes() {
		if completed.Contains(c) {
			done[c] = struct{}{}
		} else {
			remaining[c] = struct{}{}
		}
	}

	// Nothing to plan once the target is behind the student.
	if _, ok := done[g.Target()]; ok {
		return schedule
	}

	for len(remaining) > 0 {
		level := make([]shared.CourseID, 0, len(remaining))
		for c := range remaining {
			if subsetOf(g.prereqSet(c), done) {
				level = append(level, c)
			}
		}
		sortCourses(level)

		if len(level) == 0 {
			// No further progress: unresolved cycle or dangling
			// prerequisite. Bundle the remainder and stop.
			rest := make([]shared.CourseID, 0, len(remaining))
			for c := range remaining {
				rest = append(rest, c)
			}
			sortCourses(rest)
			schedule.Levels = append(schedule.Levels, rest)
			schedule.Degenerate = true
			break
		}

		schedule.Levels = append(schedule.Levels, level)
		for _, c := range level {
			done[c] = struct{}{}
			delete(remaining, c)
		}
	}

	return schedule
}

// subsetOf reports whether every element of a is in b.
func subsetOf(a, b map[shared.CourseID]struct{}) bool {
	for c := range a {
		if _, ok := b[c]; !ok {
			return false
		}
	}
	return true
}
