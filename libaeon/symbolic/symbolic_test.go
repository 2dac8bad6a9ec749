package symbolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2x3systems/goaeon/goaeon"
)

const testModel = `
# two mutually activating switches driving a self-inhibiting C
A -> B
B -> A
A -> C
B -> C
C -| C
$A: B
$B: A
$C: (A & B) | (!A & !B & !C)
`

func mustGraph(t *testing.T, model string) *AsyncGraph {
	t.Helper()
	bn, err := ParseNetwork(model)
	require.NoError(t, err)
	g, err := NewAsyncGraph(bn)
	require.NoError(t, err)
	return g
}

func TestParseNetwork(t *testing.T) {
	bn, err := ParseNetwork(testModel)
	require.NoError(t, err)

	assert.Equal(t, 3, bn.NumVars())
	assert.Len(t, bn.Regulations(), 5)
	assert.Empty(t, bn.Params())

	c, ok := bn.FindVariable("C")
	require.True(t, ok)
	assert.Equal(t, []VariableID{0, 1, 2}, bn.Regulators(c))
	assert.Equal(t, FnOr, bn.Update(c).Op)

	for _, reg := range bn.Regulations() {
		if reg.Regulator == c {
			assert.Equal(t, Inhibition, reg.Monotonicity)
		}
	}
}

func TestParseNetworkErrors(t *testing.T) {
	_, err := ParseNetwork("A -> ")
	assert.ErrorIs(t, err, goaeon.ErrBadModel)

	_, err = ParseNetwork("A -> B\n$B: A\n$B: !A")
	assert.ErrorIs(t, err, goaeon.ErrBadModel)

	_, err = ParseNetwork("A -> B\n$B: f(A, Z)")
	assert.ErrorIs(t, err, goaeon.ErrUnknownVariable)

	_, err = ParseNetwork("A -> B\n$B: f(A) & f")
	assert.ErrorIs(t, err, goaeon.ErrBadModel)
}

func TestUnitCardinality(t *testing.T) {
	g := mustGraph(t, testModel)
	assert.Equal(t, int64(8), g.UnitColoredVertices().ExactCardinality().Int64())
	assert.Equal(t, int64(1), g.UnitColors().ExactCardinality().Int64())
	assert.True(t, g.EmptyColoredVertices().IsEmpty())
}

func TestParametrizedColors(t *testing.T) {
	g := mustGraph(t, "A -> A\n$A: p")
	assert.Equal(t, int64(2), g.UnitColors().ExactCardinality().Int64())
	assert.Equal(t, int64(4), g.UnitColoredVertices().ExactCardinality().Int64())

	// implicit f_B(A) with an observable activation admits only the identity
	g = mustGraph(t, "A -> B\n$A: true")
	assert.Equal(t, int64(1), g.UnitColors().ExactCardinality().Int64())

	// unknown, non-observable regulation admits all four tables
	g = mustGraph(t, "A -?? B\n$A: true")
	assert.Equal(t, int64(4), g.UnitColors().ExactCardinality().Int64())
}

func TestTransitions(t *testing.T) {
	g := mustGraph(t, testModel)
	a, _ := g.FindVariable("A")
	c, _ := g.FindVariable("C")

	// 000: only C can flip (F_C = 1)
	v000, err := g.MkVertex([]bool{false, false, false})
	require.NoError(t, err)
	assert.True(t, g.VarCanPost(a, v000).IsEmpty())

	v001, _ := g.MkVertex([]bool{false, false, true})
	assert.True(t, g.VarPost(c, v000).Equal(v001))
	assert.True(t, g.VarPre(c, v001).Equal(v000))

	pair := v000.Union(v001)
	assert.True(t, g.VarCanPostWithin(c, pair).Equal(pair))
	assert.True(t, g.VarCanPostOut(c, pair).IsEmpty())
	assert.True(t, g.VarCanPostOut(c, v000).Equal(v000))

	// 111 is a fixed point
	v111, _ := g.MkVertex([]bool{true, true, true})
	for _, v := range g.Variables() {
		assert.True(t, g.VarCanPost(v, v111).IsEmpty())
	}

	_, err = g.MkVertex([]bool{true})
	assert.ErrorIs(t, err, goaeon.ErrInvalidInput)
}

func TestSetAlgebra(t *testing.T) {
	g := mustGraph(t, "A -> A\n$A: p")
	a, _ := g.FindVariable("A")

	high, err := g.MkSubspace(map[VariableID]bool{a: true})
	require.NoError(t, err)
	low := g.UnitColoredVertices().Minus(high)

	assert.True(t, high.Intersect(low).IsEmpty())
	assert.True(t, high.Union(low).Equal(g.UnitColoredVertices()))
	assert.True(t, high.IsSubset(g.UnitColoredVertices()))
	assert.True(t, high.Colors().Equal(g.UnitColors()))
	assert.Equal(t, int64(1), high.Vertices().ExactCardinality().Int64())
	assert.Equal(t, []bool{true}, high.Vertices().First())

	// each color keeps exactly one vertex
	picked := g.UnitColoredVertices().PickVertex()
	assert.Equal(t, int64(2), picked.ExactCardinality().Int64())
	assert.True(t, picked.Colors().Equal(g.UnitColors()))

	// A = 1 can only flip under p = 0
	moving := g.VarCanPost(a, high)
	assert.False(t, moving.IsEmpty())
	assert.Equal(t, int64(1), moving.Colors().ExactCardinality().Int64())
	assert.True(t, high.MinusColors(moving.Colors()).Colors().Intersect(moving.Colors()).IsEmpty())
	assert.True(t, high.IntersectColors(moving.Colors()).Equal(moving))
	assert.Greater(t, high.SymbolicSize(), 0)
}
