package planner

import "github.com/unipath/course-planner/internal/domain/shared"

// ShortestPath finds the shortest chain of requirement edges leading from
// one course to another, following the requirement direction (course →
// prerequisite) for at most maxDepth hops.
//
// The returned path includes both endpoints; from == to yields a
// single-node path. An empty slice means no bounded path exists.
func ShortestPath(edges []RequirementEdge, from, to shared.CourseID, maxDepth int) []shared.CourseID {
	if maxDepth <= 0 {
		maxDepth = MaxTraversalDepth
	}
	if from == to {
		return []shared.CourseID{from}
	}

	adj := make(map[shared.CourseID][]shared.CourseID, len(edges))
	for _, e := range edges {
		adj[e.Course] = append(adj[e.Course], e.Prerequisite)
	}
	for c := range adj {
		sortCourses(adj[c])
	}

	type hop struct {
		course shared.CourseID
		depth  int
	}

	parent := map[shared.CourseID]shared.CourseID{from: from}
	queue := []hop{{course: from, depth: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= maxDepth {
			continue
		}
		for _, next := range adj[cur.course] {
			if _, visited := parent[next]; visited {
				continue
			}
			parent[next] = cur.course
			if next == to {
				return rebuildPath(parent, from, to)
			}
			queue = append(queue, hop{course: next, depth: cur.depth + 1})
		}
	}

	return nil
}

func rebuildPath(parent map[shared.CourseID]shared.CourseID, from, to shared.CourseID) []shared.CourseID {
	var reversed []shared.CourseID
	for c := to; ; c = parent[c] {
		reversed = append(reversed, c)
		if c == from {
			break
		}
	}
	path := make([]shared.CourseID, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, reversed[i])
	}
	return path
}
