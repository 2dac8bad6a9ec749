package classify

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2x3systems/goaeon/goaeon"
	"github.com/2x3systems/goaeon/libaeon/symbolic"
	"github.com/2x3systems/goaeon/libaeon/xiebeerel"
)

const cycleModel = `
A -> B
B -> A
A -> C
B -> C
C -| C
$A: B
$B: A
$C: (A & B) | (!A & !B & !C)
`

func mustGraph(t *testing.T, model string) *symbolic.AsyncGraph {
	t.Helper()
	bn, err := symbolic.ParseNetwork(model)
	require.NoError(t, err)
	g, err := symbolic.NewAsyncGraph(bn)
	require.NoError(t, err)
	return g
}

func TestClassOrdering(t *testing.T) {
	empty := Class{}
	s := Class{Stability}
	d := Class{Disorder}
	so := Class{Stability, Oscillation}
	ss := Class{Stability, Stability}
	od := Class{Oscillation, Disorder}

	assert.Less(t, empty.Compare(s), 0)
	assert.Less(t, empty.Compare(d), 0)
	assert.Less(t, d.Compare(ss), 0, "size wins over contents")
	assert.Less(t, ss.Compare(so), 0)
	assert.Less(t, so.Compare(od), 0)
	assert.Equal(t, 0, so.Compare(Class{Stability, Oscillation}))
	assert.Greater(t, od.Compare(s), 0)
}

func TestCloneExtended(t *testing.T) {
	c := Class{Oscillation}
	ext := c.CloneExtended(Stability)
	assert.Equal(t, Class{Stability, Oscillation}, ext)
	assert.Equal(t, Class{Oscillation}, c)
	assert.Equal(t, "1 x Stability, 1 x Oscillation", ext.String())
	assert.Equal(t, "2 x Disorder", Class{Disorder}.CloneExtended(Disorder).String())
	assert.Equal(t, "", Class{}.String())
}

func TestParseBehaviour(t *testing.T) {
	for s, want := range map[string]Behaviour{"S": Stability, "O": Oscillation, "D": Disorder} {
		b, err := ParseBehaviour(s)
		require.NoError(t, err)
		assert.Equal(t, want, b)
	}
	_, err := ParseBehaviour("X")
	assert.ErrorIs(t, err, goaeon.ErrInvalidInput)
}

func TestCycleNetwork(t *testing.T) {
	g := mustGraph(t, cycleModel)
	found, err := xiebeerel.Attractors(g, g.UnitColoredVertices(), g.Variables(), xiebeerel.Opts{})
	require.NoError(t, err)
	require.Len(t, found, 2)

	cl := NewClassifier(g)
	for _, attr := range found {
		breakdown := cl.AddComponent(attr)
		require.Len(t, breakdown, 1)
		switch attr.Vertices().ExactCardinality().Int64() {
		case 1:
			assert.True(t, breakdown[Stability].Equal(g.UnitColors()))
		case 2:
			assert.True(t, breakdown[Oscillation].Equal(g.UnitColors()))
		default:
			t.Fatalf("unexpected attractor %v", attr)
		}
	}

	snap := cl.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, Class{Stability, Oscillation}, snap[0].Class)
	assert.True(t, snap[0].Colors.Equal(g.UnitColors()))
	assert.Len(t, cl.Attractors(), 2)
}

func TestDisorder(t *testing.T) {
	// A and B flip freely: the whole 2-cube is one attractor with branching
	g := mustGraph(t, "A -? A\nB -? B\n$A: !A\n$B: !B")
	found, err := xiebeerel.Attractors(g, g.UnitColoredVertices(), g.Variables(), xiebeerel.Opts{})
	require.NoError(t, err)
	require.Len(t, found, 1)

	breakdown := Breakdown(g, found[0])
	require.Len(t, breakdown, 1)
	assert.True(t, breakdown[Disorder].Equal(g.UnitColors()))
}

func TestParametrizedClasses(t *testing.T) {
	// p = 0: fixed points 00 and 11; p = 1: fixed point 11
	g := mustGraph(t, "A -> B\nB -> A\n$A: B | p\n$B: A")
	found, err := xiebeerel.Attractors(g, g.UnitColoredVertices(), g.Variables(), xiebeerel.Opts{})
	require.NoError(t, err)

	cl := NewClassifier(g)
	var wg sync.WaitGroup
	for _, attr := range found {
		wg.Add(1)
		go func(attr symbolic.ColoredVertices) {
			defer wg.Done()
			cl.AddComponent(attr)
		}(attr)
	}
	wg.Wait()

	snap := cl.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, Class{Stability}, snap[0].Class)
	assert.Equal(t, Class{Stability, Stability}, snap[1].Class)
	assert.Equal(t, int64(1), snap[0].Colors.ExactCardinality().Int64())
	assert.Equal(t, int64(1), snap[1].Colors.ExactCardinality().Int64())
	assert.True(t, snap[0].Colors.Union(snap[1].Colors).Equal(g.UnitColors()))
}

func TestClassCode(t *testing.T) {
	c := Class{Stability, Oscillation, Oscillation}
	assert.Equal(t, "SOO", c.Code())

	parsed, err := ParseClass("OSO")
	require.NoError(t, err)
	assert.Equal(t, c, parsed)

	empty, err := ParseClass("")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Compare(Class{}))

	_, err = ParseClass("SX")
	assert.ErrorIs(t, err, goaeon.ErrInvalidInput)
}

func TestRecordKeepsOwnBreakdown(t *testing.T) {
	g := mustGraph(t, "A -? A\n$A: A")
	cl := NewClassifier(g)

	breakdown := map[Behaviour]symbolic.Colors{Stability: g.UnitColors()}
	cl.Record(g.UnitColoredVertices(), breakdown)
	breakdown[Disorder] = g.UnitColors()

	entries := cl.Attractors()
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Behaviours, 1)

	delete(entries[0].Behaviours, Stability)
	assert.Len(t, cl.Attractors()[0].Behaviours, 1)
}
