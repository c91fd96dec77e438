package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unipath/course-planner/internal/domain/shared"
)

func TestPlanSequenceHandler_LinearChain(t *testing.T) {
	store := newFakeStore()
	store.addEdge("B", "A")
	store.addEdge("C", "B")
	store.addStudent("s1")

	h := NewPlanSequenceHandler(store)
	dto, err := h.Handle(context.Background(), PlanSequenceQuery{StudentID: "s1", CourseID: "C"})

	require.NoError(t, err)
	assert.Equal(t, "C", dto.TargetCourse)
	assert.Equal(t, [][]string{{"A"}, {"B"}, {"C"}}, dto.Sequence)
	assert.False(t, dto.Degenerate)
}

func TestPlanSequenceHandler_CompletionShrinksPlan(t *testing.T) {
	store := newFakeStore()
	store.addEdge("B", "A")
	store.addEdge("C", "B")
	store.addStudent("s1", "A")

	h := NewPlanSequenceHandler(store)
	dto, err := h.Handle(context.Background(), PlanSequenceQuery{StudentID: "s1", CourseID: "C"})

	require.NoError(t, err)
	assert.Equal(t, [][]string{{"B"}, {"C"}}, dto.Sequence)
}

func TestPlanSequenceHandler_NoEdgesProducesSingleton(t *testing.T) {
	// The course exists but has no prerequisites: the edge fetch returns
	// nothing, the existence check passes, and the plan is [[A]].
	store := newFakeStore()
	store.addCourse("A")
	store.addStudent("s1")

	h := NewPlanSequenceHandler(store)
	dto, err := h.Handle(context.Background(), PlanSequenceQuery{StudentID: "s1", CourseID: "A"})

	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A"}}, dto.Sequence)
}

func TestPlanSequenceHandler_TargetCompleted(t *testing.T) {
	store := newFakeStore()
	store.addEdge("B", "A")
	store.addStudent("s1", "A", "B")

	h := NewPlanSequenceHandler(store)
	dto, err := h.Handle(context.Background(), PlanSequenceQuery{StudentID: "s1", CourseID: "B"})

	require.NoError(t, err)
	assert.Empty(t, dto.Sequence)
}

func TestPlanSequenceHandler_CycleYieldsDegenerateLevel(t *testing.T) {
	store := newFakeStore()
	store.addEdge("X", "Y")
	store.addEdge("Y", "X")
	store.addStudent("s1")

	h := NewPlanSequenceHandler(store)
	dto, err := h.Handle(context.Background(), PlanSequenceQuery{StudentID: "s1", CourseID: "X"})

	require.NoError(t, err)
	assert.Equal(t, [][]string{{"X", "Y"}}, dto.Sequence)
	assert.True(t, dto.Degenerate)
}

func TestPlanSequenceHandler_CourseNotFound(t *testing.T) {
	store := newFakeStore()
	store.addStudent("s1")

	h := NewPlanSequenceHandler(store)
	_, err := h.Handle(context.Background(), PlanSequenceQuery{StudentID: "s1", CourseID: "NOPE"})

	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrCourseNotFound)
}

func TestPlanSequenceHandler_StudentNotFound(t *testing.T) {
	store := newFakeStore()
	store.addCourse("A")

	h := NewPlanSequenceHandler(store)
	_, err := h.Handle(context.Background(), PlanSequenceQuery{StudentID: "ghost", CourseID: "A"})

	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrStudentNotFound)
}

func TestPlanSequenceHandler_InvalidCourseCode(t *testing.T) {
	h := NewPlanSequenceHandler(newFakeStore())

	_, err := h.Handle(context.Background(), PlanSequenceQuery{StudentID: "s1", CourseID: "   "})

	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}

func TestPlanSequenceHandler_UpstreamFailurePropagates(t *testing.T) {
	store := newFakeStore()
	store.addStudent("s1")
	store.failWith = shared.ErrStoreUnavailable

	h := NewPlanSequenceHandler(store)
	_, err := h.Handle(context.Background(), PlanSequenceQuery{StudentID: "s1", CourseID: "A"})

	require.Error(t, err)
	assert.True(t, shared.IsUpstream(err))
}
