package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCycles_NoCycles(t *testing.T) {
	edges := []RequirementEdge{edge("C", "B"), edge("B", "A")}

	assert.Empty(t, FindCycles(edges, MaxTraversalDepth, DefaultCycleLimit))
}

func TestFindCycles_TwoNodeCycle(t *testing.T) {
	edges := []RequirementEdge{edge("X", "Y"), edge("Y", "X")}

	cycles := FindCycles(edges, MaxTraversalDepth, DefaultCycleLimit)

	require.Len(t, cycles, 1)
	assert.Equal(t, "X", cycles[0][0].String())
	assert.Equal(t, "Y", cycles[0][1].String())
}

func TestFindCycles_SelfLoop(t *testing.T) {
	edges := []RequirementEdge{edge("A", "A")}

	cycles := FindCycles(edges, MaxTraversalDepth, DefaultCycleLimit)

	require.Len(t, cycles, 1)
	require.Len(t, cycles[0], 1)
	assert.Equal(t, "A", cycles[0][0].String())
}

func TestFindCycles_RotationsDeduplicated(t *testing.T) {
	// A→B→C→A is one cycle regardless of which node the walk starts from.
	edges := []RequirementEdge{edge("A", "B"), edge("B", "C"), edge("C", "A")}

	cycles := FindCycles(edges, MaxTraversalDepth, DefaultCycleLimit)

	require.Len(t, cycles, 1)
	require.Len(t, cycles[0], 3)
	assert.Equal(t, "A", cycles[0][0].String())
}

func TestFindCycles_DisjointCyclesBothReported(t *testing.T) {
	edges := []RequirementEdge{
		edge("A", "B"), edge("B", "A"),
		edge("X", "Y"), edge("Y", "X"),
		edge("M", "N"), // acyclic noise
	}

	cycles := FindCycles(edges, MaxTraversalDepth, DefaultCycleLimit)

	require.Len(t, cycles, 2)
	assert.Equal(t, "A", cycles[0][0].String())
	assert.Equal(t, "X", cycles[1][0].String())
}

func TestFindCycles_LimitCapsOutput(t *testing.T) {
	edges := []RequirementEdge{
		edge("A", "B"), edge("B", "A"),
		edge("X", "Y"), edge("Y", "X"),
	}

	cycles := FindCycles(edges, MaxTraversalDepth, 1)

	assert.Len(t, cycles, 1)
}

func TestFindCycles_PathBoundExcludesLongCycles(t *testing.T) {
	// A three-node cycle cannot close within a two-edge path bound.
	edges := []RequirementEdge{edge("A", "B"), edge("B", "C"), edge("C", "A")}

	assert.Empty(t, FindCycles(edges, 2, DefaultCycleLimit))
	assert.Len(t, FindCycles(edges, 3, DefaultCycleLimit), 1)
}
