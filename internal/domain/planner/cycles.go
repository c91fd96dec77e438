package planner

import (
	"strings"

	"github.com/unipath/course-planner/internal/domain/shared"
)

// Cycle detection defaults, matching the bounded-path traversal used for
// reachable-edge fetches.
const (
	DefaultCycleLimit = 50
	MaxCycleLimit     = 500
)

// FindCycles enumerates directed cycles in the requirement edge list:
// paths that lead from a course back to itself within maxLen edges.
//
// Each cycle is reported as an ordered course sequence without repeating
// the closing node, rotated so the lexicographically smallest course comes
// first. Structurally identical cycles (rotations of each other) are
// reported once. At most limit cycles are returned, in deterministic order.
//
// This is diagnostic tooling, independent of the scheduler: ScheduleLevels
// tolerates cycles by degenerating, FindCycles names them.
func FindCycles(edges []RequirementEdge, maxLen, limit int) [][]shared.CourseID {
	if maxLen <= 0 {
		maxLen = MaxTraversalDepth
	}
	if limit <= 0 {
		limit = DefaultCycleLimit
	}

	adj := make(map[shared.CourseID][]shared.CourseID, len(edges))
	for _, e := range edges {
		adj[e.Course] = append(adj[e.Course], e.Prerequisite)
	}

	starts := make([]shared.CourseID, 0, len(adj))
	for c := range adj {
		sortCourses(adj[c])
		starts = append(starts, c)
	}
	sortCourses(starts)

	var (
		cycles [][]shared.CourseID
		seen   = make(map[string]struct{})
		path   = make([]shared.CourseID, 0, maxLen)
		onPath = make(map[shared.CourseID]struct{}, maxLen)
	)

	var dfs func(start, current shared.CourseID) bool
	dfs = func(start, current shared.CourseID) bool {
		if len(path) >= maxLen {
			return false
		}
		path = append(path, current)
		onPath[current] = struct{}{}
		defer func() {
			path = path[:len(path)-1]
			delete(onPath, current)
		}()

		for _, next := range adj[current] {
			if next == start {
				cycle := canonicalCycle(path)
				key := cycleKey(cycle)
				if _, dup := seen[key]; !dup {
					seen[key] = struct{}{}
					cycles = append(cycles, cycle)
					if len(cycles) >= limit {
						return true
					}
				}
				continue
			}
			// Rooting every cycle at its smallest node: never descend
			// below the start, and never revisit the current path.
			if next < start {
				continue
			}
			if _, ok := onPath[next]; ok {
				continue
			}
			if dfs(start, next) {
				return true
			}
		}
		return false
	}

	for _, start := range starts {
		if dfs(start, start) {
			break
		}
	}

	return cycles
}

// canonicalCycle rotates the path so its smallest course comes first.
func canonicalCycle(path []shared.CourseID) []shared.CourseID {
	min := 0
	for i := range path {
		if path[i] < path[min] {
			min = i
		}
	}
	cycle := make([]shared.CourseID, 0, len(path))
	cycle = append(cycle, path[min:]...)
	cycle = append(cycle, path[:min]...)
	return cycle
}

func cycleKey(cycle []shared.CourseID) string {
	parts := make([]string, len(cycle))
	for i, c := range cycle {
		parts[i] = c.String()
	}
	return strings.Join(parts, "\x00")
}
