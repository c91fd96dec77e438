package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func missing(e Eligibility) []string {
	out := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		out[i] = c.String()
	}
	return out
}

func TestEvaluateEligibility_AllPrerequisitesMissing(t *testing.T) {
	g := NewGraph("C", []RequirementEdge{edge("C", "B"), edge("B", "A")})

	e := EvaluateEligibility(g, completions())

	assert.False(t, e.Eligible)
	assert.Equal(t, []string{"A", "B"}, missing(e))
}

func TestEvaluateEligibility_TransitiveClosureSatisfied(t *testing.T) {
	g := NewGraph("C", []RequirementEdge{edge("C", "B"), edge("B", "A")})

	e := EvaluateEligibility(g, completions("A", "B"))

	assert.True(t, e.Eligible)
	assert.Empty(t, e.Missing)
}

func TestEvaluateEligibility_DirectOnlyIsNotEnough(t *testing.T) {
	g := NewGraph("C", []RequirementEdge{edge("C", "B"), edge("B", "A")})

	e := EvaluateEligibility(g, completions("B"))

	assert.False(t, e.Eligible)
	assert.Equal(t, []string{"A"}, missing(e))
}

func TestEvaluateEligibility_NoPrerequisitesIsTriviallyEligible(t *testing.T) {
	g := NewGraph("A", nil)

	e := EvaluateEligibility(g, completions())

	assert.True(t, e.Eligible)
	assert.Empty(t, e.Missing)
}

func TestEvaluateEligibility_TargetCompletedDoesNotShortCircuit(t *testing.T) {
	// Completion of the target itself does not satisfy its prerequisites:
	// missing is still the closure minus completed.
	g := NewGraph("B", []RequirementEdge{edge("B", "A")})

	e := EvaluateEligibility(g, completions("B"))

	assert.False(t, e.Eligible)
	assert.Equal(t, []string{"A"}, missing(e))
}

func TestEvaluateEligibility_CyclicGraphExcludesTargetItself(t *testing.T) {
	g := NewGraph("X", []RequirementEdge{edge("X", "Y"), edge("Y", "X")})

	e := EvaluateEligibility(g, completions())

	assert.False(t, e.Eligible)
	assert.Equal(t, []string{"Y"}, missing(e))
}

func TestEvaluateEligibility_SharedPrerequisiteCountedOnce(t *testing.T) {
	g := NewGraph("D", []RequirementEdge{
		edge("D", "B"),
		edge("D", "C"),
		edge("B", "A"),
		edge("C", "A"),
	})

	e := EvaluateEligibility(g, completions("B", "C"))

	assert.False(t, e.Eligible)
	assert.Equal(t, []string{"A"}, missing(e))
}
