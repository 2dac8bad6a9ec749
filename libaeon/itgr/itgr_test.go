package itgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2x3systems/goaeon/goaeon"
	"github.com/2x3systems/goaeon/libaeon/symbolic"
	"github.com/2x3systems/goaeon/libaeon/xiebeerel"
)

var testModels = map[string]string{
	"cycle": `
A -> B
B -> A
A -> C
B -> C
C -| C
$A: B
$B: A
$C: (A & B) | (!A & !B & !C)
`,
	"param": `
A -> B
B -> A
$A: B | p
$B: A
`,
	"implicit": `
A -> B
B -| C
C -> A
A -? A
`,
	"chain": `
A -> B
B -> C
C -> D
D -| A
$A: !D
$B: A
$C: B | q
$D: C & !p
`,
}

func mustGraph(t *testing.T, model string) *symbolic.AsyncGraph {
	t.Helper()
	bn, err := symbolic.ParseNetwork(model)
	require.NoError(t, err)
	g, err := symbolic.NewAsyncGraph(bn)
	require.NoError(t, err)
	return g
}

func union(g *symbolic.AsyncGraph, sets []symbolic.ColoredVertices) symbolic.ColoredVertices {
	all := g.EmptyColoredVertices()
	for _, set := range sets {
		all = all.Union(set)
	}
	return all
}

func isSubsetOf(vars, of []symbolic.VariableID) bool {
	idx := map[symbolic.VariableID]bool{}
	for _, v := range of {
		idx[v] = true
	}
	for _, v := range vars {
		if !idx[v] {
			return false
		}
	}
	return true
}

// universes returns the full state space and the subspace where the first variable is false.
func universes(t *testing.T, g *symbolic.AsyncGraph) map[string]symbolic.ColoredVertices {
	t.Helper()
	subspace, err := g.MkSubspace(map[symbolic.VariableID]bool{0: false})
	require.NoError(t, err)
	return map[string]symbolic.ColoredVertices{
		"unit":     g.UnitColoredVertices(),
		"subspace": subspace,
	}
}

func TestPruningSoundness(t *testing.T) {
	models := map[string]string{
		"leak": `
V0 -? V0
V1 -? V0
V0 -? V1
V1 -? V1
$V0: (!V0 & !V1) | (!V0 & V1) | (V0 & V1)
$V1: V0 & !V1
`,
	}
	for name, model := range testModels {
		models[name] = model
	}

	for name, model := range models {
		g := mustGraph(t, model)
		for kind, universe := range universes(t, g) {
			label := name + "/" + kind

			plain, err := xiebeerel.Attractors(g, universe, g.Variables(), xiebeerel.Opts{})
			require.NoError(t, err, label)

			reduced, err := Reduce(g, universe, g.Variables(), Opts{})
			require.NoError(t, err, label)
			assert.True(t, reduced.Universe.IsSubset(universe), label)

			pruned, err := xiebeerel.Attractors(g, reduced.Universe, reduced.Variables, xiebeerel.Opts{})
			require.NoError(t, err, label)

			assert.True(t, union(g, plain).Equal(union(g, pruned)), label)
			assert.True(t, union(g, plain).IsSubset(reduced.Universe), label)
		}
	}
}

func TestMonotonicity(t *testing.T) {
	for name, model := range testModels {
		g := mustGraph(t, model)
		s := NewScheduler(g, g.UnitColoredVertices(), g.Variables(), nil)
		for _, v := range g.Variables() {
			s.Spawn(NewReachableProcess(v, s))
		}

		prevUniverse := s.Universe()
		prevVars := append([]symbolic.VariableID(nil), s.ActiveVariables()...)
		for ticks := 0; !s.Done(); ticks++ {
			require.Less(t, ticks, 10000, name)
			s.Step()

			assert.True(t, s.Universe().IsSubset(prevUniverse), name)
			assert.True(t, isSubsetOf(s.ActiveVariables(), prevVars), name)
			prevUniverse = s.Universe()
			prevVars = append(prevVars[:0], s.ActiveVariables()...)
		}
	}
}

func TestCycleReduction(t *testing.T) {
	g := mustGraph(t, testModels["cycle"])
	reduced, err := Reduce(g, g.UnitColoredVertices(), g.Variables(), Opts{})
	require.NoError(t, err)

	// every non-attractor state is pruned: only 111 and {000, 001} remain
	assert.Equal(t, int64(3), reduced.Universe.ExactCardinality().Int64())
	assert.NotEmpty(t, reduced.Variables)
}

// afterTicks reports cancelled once it has been polled more than allowed times.
type afterTicks struct {
	polls   int
	allowed int
}

func (c *afterTicks) IsCancelled() bool {
	c.polls++
	return c.polls > c.allowed
}

func (c *afterTicks) StartTimer() {}

func TestCancelledAfterFirstTick(t *testing.T) {
	for name, model := range testModels {
		g := mustGraph(t, model)

		final, err := Reduce(g, g.UnitColoredVertices(), g.Variables(), Opts{})
		require.NoError(t, err, name)

		partial, err := Reduce(g, g.UnitColoredVertices(), g.Variables(), Opts{
			Canceller: &afterTicks{allowed: 1},
		})
		require.ErrorIs(t, err, goaeon.ErrCancelled, name)

		intr, ok := goaeon.IsInterrupted(err)
		require.True(t, ok, name)
		assert.True(t, intr.Partial.(Reduction).Universe.Equal(partial.Universe), name)
		assert.True(t, final.Universe.IsSubset(partial.Universe), name)
	}
}

func TestResourceLimit(t *testing.T) {
	g := mustGraph(t, testModels["chain"])
	partial, err := Reduce(g, g.UnitColoredVertices(), g.Variables(), Opts{MaxSymbolicSize: 1})
	assert.ErrorIs(t, err, goaeon.ErrResourceLimit)
	assert.True(t, partial.Universe.IsSubset(g.UnitColoredVertices()))
}

func TestVariableSubset(t *testing.T) {
	g := mustGraph(t, testModels["cycle"])
	c, _ := g.FindVariable("C")

	reduced, err := Reduce(g, g.UnitColoredVertices(), []symbolic.VariableID{c}, Opts{})
	require.NoError(t, err)
	assert.True(t, isSubsetOf(reduced.Variables, []symbolic.VariableID{c}))

	_, err = Reduce(g, g.UnitColoredVertices(), []symbolic.VariableID{7}, Opts{})
	assert.ErrorIs(t, err, goaeon.ErrUnknownVariable)

	_, err = Reduce(g, g.UnitColoredVertices(), []symbolic.VariableID{c, c}, Opts{})
	assert.ErrorIs(t, err, goaeon.ErrInvalidInput)
}

func TestSchedulerOrder(t *testing.T) {
	g := mustGraph(t, testModels["cycle"])
	s := NewScheduler(g, g.UnitColoredVertices(), g.Variables(), nil)

	var order []int
	s.Spawn(&probe{id: 0, weight: 5, log: &order})
	s.Spawn(&probe{id: 1, weight: 2, log: &order})
	s.Spawn(&probe{id: 2, weight: 2, log: &order})
	for !s.Done() {
		s.Step()
	}
	assert.Equal(t, []int{1, 2, 0}, order)

	// discards reach every live process before the next tick
	p := &probe{id: 3, weight: 1, steps: 2, log: &order}
	s.Spawn(p)
	s.Spawn(&discarder{set: g.UnitColoredVertices()})
	s.Step()
	s.Step()
	assert.Equal(t, 1, p.discards)
	assert.True(t, s.Universe().IsEmpty())
}

type probe struct {
	id       int
	weight   int
	steps    int
	discards int
	log      *[]int
}

func (p *probe) Step(s *Scheduler) bool {
	*p.log = append(*p.log, p.id)
	p.steps--
	return p.steps <= 0
}

func (p *probe) Weight() int { return p.weight }

func (p *probe) DiscardStates(symbolic.ColoredVertices) { p.discards++ }

type discarder struct {
	set symbolic.ColoredVertices
}

func (d *discarder) Step(s *Scheduler) bool {
	s.DiscardVertices(d.set)
	return true
}

func (d *discarder) Weight() int { return 0 }

func (d *discarder) DiscardStates(symbolic.ColoredVertices) {}
