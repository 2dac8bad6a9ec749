package reach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2x3systems/goaeon/libaeon/symbolic"
)

const testModel = `
A -> B
B -> A
A -> C
B -> C
C -| C
$A: B
$B: A
$C: (A & B) | (!A & !B & !C)
`

func mustGraph(t *testing.T) *symbolic.AsyncGraph {
	t.Helper()
	bn, err := symbolic.ParseNetwork(testModel)
	require.NoError(t, err)
	g, err := symbolic.NewAsyncGraph(bn)
	require.NoError(t, err)
	return g
}

func vertex(t *testing.T, g *symbolic.AsyncGraph, state ...bool) symbolic.ColoredVertices {
	t.Helper()
	v, err := g.MkVertex(state)
	require.NoError(t, err)
	return v
}

func TestStepWithoutVariables(t *testing.T) {
	g := mustGraph(t)
	seed := vertex(t, g, false, false, false)

	next, done := Step(seed, g.UnitColoredVertices(), nil, Post(g))
	assert.True(t, done)
	assert.True(t, next.Equal(seed))
}

func TestStepIsIncremental(t *testing.T) {
	g := mustGraph(t)
	seed := vertex(t, g, false, false, false)

	next, done := Step(seed, g.UnitColoredVertices(), g.Variables(), Post(g))
	assert.False(t, done)
	assert.Equal(t, int64(2), next.ExactCardinality().Int64())

	again, done := Step(next, g.UnitColoredVertices(), g.Variables(), Post(g))
	assert.True(t, done)
	assert.True(t, again.Equal(next))
}

func TestFwdBwd(t *testing.T) {
	g := mustGraph(t)
	unit := g.UnitColoredVertices()
	fixed := vertex(t, g, true, true, true)

	// the fixed point has no successors
	assert.True(t, Fwd(g, fixed, unit, g.Variables()).Equal(fixed))

	// 110 -> 111 via C
	v110 := vertex(t, g, true, true, false)
	assert.True(t, Fwd(g, v110, unit, g.Variables()).Equal(v110.Union(fixed)))

	basin := Bwd(g, fixed, unit, g.Variables())
	assert.True(t, fixed.IsSubset(basin))
	assert.True(t, v110.IsSubset(basin))

	// restricting the universe blocks reachability
	assert.True(t, Bwd(g, fixed, fixed, g.Variables()).Equal(fixed))

	// the oscillation is backward-closed within {000, 001}
	osc := vertex(t, g, false, false, false).Union(vertex(t, g, false, false, true))
	assert.True(t, Fwd(g, osc, unit, g.Variables()).Equal(osc))
}
