package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unipath/course-planner/internal/domain/shared"
)

func TestNewGraph_EveryEdgeEndpointBecomesANode(t *testing.T) {
	g := NewGraph("C", []RequirementEdge{edge("C", "B"), edge("B", "A")})

	assert.Equal(t, 3, g.Len())
	for _, c := range []string{"A", "B", "C"} {
		assert.True(t, g.Contains(shared.CourseID(c)))
	}
}

func TestNewGraph_IsolatedTargetIsInserted(t *testing.T) {
	g := NewGraph("A", nil)

	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Contains("A"))
	assert.Empty(t, g.Prerequisites("A"))
}

func TestNewGraph_PrerequisiteOnlyNodesHaveEmptySets(t *testing.T) {
	g := NewGraph("B", []RequirementEdge{edge("B", "A")})

	assert.Empty(t, g.Prerequisites("A"))
	assert.Equal(t, []shared.CourseID{"A"}, g.Prerequisites("B"))
}

func TestNewGraph_DuplicateEdgesCollapse(t *testing.T) {
	g := NewGraph("B", []RequirementEdge{edge("B", "A"), edge("B", "A")})

	assert.Equal(t, []shared.CourseID{"A"}, g.Prerequisites("B"))
}

func TestGraph_NodesSorted(t *testing.T) {
	g := NewGraph("M", []RequirementEdge{edge("M", "Z"), edge("M", "A")})

	assert.Equal(t, []shared.CourseID{"A", "M", "Z"}, g.Nodes())
	assert.Equal(t, []shared.CourseID{"A", "Z"}, g.Prerequisites("M"))
}

func TestGraph_DirectionIsNotSymmetric(t *testing.T) {
	g := NewGraph("B", []RequirementEdge{edge("B", "A")})

	assert.Empty(t, g.Prerequisites("A"))
	assert.NotEmpty(t, g.Prerequisites("B"))
}
