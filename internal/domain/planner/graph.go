// Package planner implements the prerequisite dependency-graph planning engine:
// request-local graph construction, eligibility evaluation, level-based
// topological scheduling, cycle detection, and population analytics.
//
// All structures in this package are built fresh per request from GraphStore
// output, consumed synchronously, and discarded. Nothing here is shared or
// mutated across requests, so the package needs no locking.
package planner

import (
	"sort"

	"github.com/unipath/course-planner/internal/domain/shared"
)

// Traversal bounds applied to every reachable-edge fetch. The system-wide
// graph is never fully materialized; a request only sees the subgraph within
// MaxTraversalDepth hops of one target course.
const (
	MaxTraversalDepth = 10
	MaxReachableEdges = 5000
)

// RequirementEdge is a directed dependency: Course requires Prerequisite.
type RequirementEdge struct {
	Course       shared.CourseID
	Prerequisite shared.CourseID
}

// CompletionSet is the set of courses a student has completed.
// Treated as immutable input for the duration of one request.
type CompletionSet map[shared.CourseID]struct{}

// NewCompletionSet builds a CompletionSet from a slice of course codes.
func NewCompletionSet(courses []shared.CourseID) CompletionSet {
	set := make(CompletionSet, len(courses))
	for _, c := range courses {
		set[c] = struct{}{}
	}
	return set
}

// Contains reports whether the course is in the set.
func (s CompletionSet) Contains(c shared.CourseID) bool {
	_, ok := s[c]
	return ok
}

// Graph is an in-memory prerequisite graph restricted to the nodes reachable
// from one target course. Every node referenced by any edge endpoint is
// present, with a default-empty prerequisite set if it never appears as a
// dependent. The target is always present, even when isolated.
type Graph struct {
	target  shared.CourseID
	prereqs map[shared.CourseID]map[shared.CourseID]struct{}
}

// NewGraph builds a prerequisite graph from a bounded edge list and the
// target course the edges were fetched for.
func NewGraph(target shared.CourseID, edges []RequirementEdge) *Graph {
	g := &Graph{
		target:  target,
		prereqs: make(map[shared.CourseID]map[shared.CourseID]struct{}, len(edges)+1),
	}

	g.ensureNode(target)
	for _, e := range edges {
		g.ensureNode(e.Course)
		g.ensureNode(e.Prerequisite)
		g.prereqs[e.Course][e.Prerequisite] = struct{}{}
	}

	return g
}

func (g *Graph) ensureNode(c shared.CourseID) {
	if _, ok := g.prereqs[c]; !ok {
		g.prereqs[c] = make(map[shared.CourseID]struct{})
	}
}

// Target returns the course the graph was built for.
func (g *Graph) Target() shared.CourseID {
	return g.target
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.prereqs)
}

// Contains reports whether the course is a node of the graph.
func (g *Graph) Contains(c shared.CourseID) bool {
	_, ok := g.prereqs[c]
	return ok
}

// Nodes returns all course codes in the graph, lexicographically sorted.
func (g *Graph) Nodes() []shared.CourseID {
	nodes := make([]shared.CourseID, 0, len(g.prereqs))
	for c := range g.prereqs {
		nodes = append(nodes, c)
	}
	sortCourses(nodes)
	return nodes
}

// Prerequisites returns the direct prerequisites of a course,
// lexicographically sorted. Unknown courses have no prerequisites.
func (g *Graph) Prerequisites(c shared.CourseID) []shared.CourseID {
	set := g.prereqs[c]
	out := make([]shared.CourseID, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sortCourses(out)
	return out
}

// prereqSet exposes the raw prerequisite set for internal set algebra.
func (g *Graph) prereqSet(c shared.CourseID) map[shared.CourseID]struct{} {
	return g.prereqs[c]
}

func sortCourses(courses []shared.CourseID) {
	sort.Slice(courses, func(i, j int) bool { return courses[i] < courses[j] })
}
