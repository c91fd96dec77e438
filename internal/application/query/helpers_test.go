package query

import (
	"context"

	"github.com/unipath/course-planner/internal/domain/planner"
	"github.com/unipath/course-planner/internal/domain/shared"
)

// fakeStore is an in-memory GraphStore double. Reachable edges are derived
// from the full edge list by bounded traversal, the same contract a real
// backend honors.
type fakeStore struct {
	edges    []planner.RequirementEdge
	courses  map[shared.CourseID]struct{}
	students map[shared.StudentID][]shared.CourseID

	// failWith, when set, is returned by every store call to simulate an
	// unreachable backend.
	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		courses:  make(map[shared.CourseID]struct{}),
		students: make(map[shared.StudentID][]shared.CourseID),
	}
}

func (f *fakeStore) addCourse(codes ...string) {
	for _, c := range codes {
		f.courses[shared.CourseID(c)] = struct{}{}
	}
}

func (f *fakeStore) addEdge(course, prereq string) {
	f.addCourse(course, prereq)
	f.edges = append(f.edges, planner.RequirementEdge{
		Course:       shared.CourseID(course),
		Prerequisite: shared.CourseID(prereq),
	})
}

func (f *fakeStore) addStudent(id string, completed ...string) {
	courses := make([]shared.CourseID, len(completed))
	for i, c := range completed {
		courses[i] = shared.CourseID(c)
	}
	f.students[shared.StudentID(id)] = courses
}

func (f *fakeStore) EdgesReachableFrom(_ context.Context, course shared.CourseID, maxDepth int) ([]planner.RequirementEdge, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}

	adj := make(map[shared.CourseID][]planner.RequirementEdge)
	for _, e := range f.edges {
		adj[e.Course] = append(adj[e.Course], e)
	}

	type hop struct {
		course shared.CourseID
		depth  int
	}
	var (
		out     []planner.RequirementEdge
		visited = map[shared.CourseID]struct{}{course: {}}
		queue   = []hop{{course: course, depth: 0}}
	)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= maxDepth {
			continue
		}
		for _, e := range adj[cur.course] {
			out = append(out, e)
			if _, ok := visited[e.Prerequisite]; !ok {
				visited[e.Prerequisite] = struct{}{}
				queue = append(queue, hop{course: e.Prerequisite, depth: cur.depth + 1})
			}
		}
	}
	return out, nil
}

func (f *fakeStore) AllEdges(_ context.Context) ([]planner.RequirementEdge, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.edges, nil
}

func (f *fakeStore) CourseExists(_ context.Context, course shared.CourseID) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	_, ok := f.courses[course]
	return ok, nil
}

func (f *fakeStore) StudentExists(_ context.Context, student shared.StudentID) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	_, ok := f.students[student]
	return ok, nil
}

func (f *fakeStore) CompletedCourses(_ context.Context, student shared.StudentID) (planner.CompletionSet, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return planner.NewCompletionSet(f.students[student]), nil
}

func (f *fakeStore) CoursePrereqCounts(_ context.Context) ([]planner.CoursePrereqCount, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	counts := make(map[shared.CourseID]int, len(f.courses))
	for c := range f.courses {
		counts[c] = 0
	}
	for _, e := range f.edges {
		counts[e.Course]++
	}
	out := make([]planner.CoursePrereqCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, planner.CoursePrereqCount{Course: c, PrereqCount: n})
	}
	return out, nil
}

func (f *fakeStore) StudentCount(_ context.Context) (int, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	return len(f.students), nil
}
