package symbolic

import (
	"github.com/dalzilio/rudd"
	"github.com/pkg/errors"

	"github.com/2x3systems/goaeon/goaeon"
)

// AsyncGraph is the colored asynchronous state-transition graph of a BooleanNetwork.
//
// Vertices are network states, colors are valuations of all parameter bits, and each variable v
// contributes the transition relation T_v = x_v XOR F_v (v can flip exactly when its update function disagrees).
type AsyncGraph struct {
	bn         *BooleanNetwork
	ctx        *Context
	paramStart []int       // first BDD level of each parameter table
	canFlip    []rudd.Node // T_v, one per variable
	unit       rudd.Node   // all vertices over all admissible colors
}

// NewAsyncGraph builds the symbolic graph of bn, first resolving implicit update functions.
func NewAsyncGraph(bn *BooleanNetwork) (*AsyncGraph, error) {
	if err := bn.resolveImplicit(); err != nil {
		return nil, err
	}

	numStates := bn.NumVars()
	ctx, err := newContext(numStates, bn.paramBits())
	if err != nil {
		return nil, err
	}

	g := &AsyncGraph{
		bn:         bn,
		ctx:        ctx,
		paramStart: make([]int, len(bn.params)),
		canFlip:    make([]rudd.Node, numStates),
	}
	level := numStates
	for i, p := range bn.params {
		g.paramStart[i] = level
		level += 1 << p.Arity
	}

	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	b := ctx.bdd

	for v := 0; v < numStates; v++ {
		fn, err := g.compile(b, bn.updates[v])
		if err != nil {
			return nil, errors.Wrapf(err, "compiling update function of %q", bn.variables[v])
		}
		// T_v = x_v XOR F_v
		xv := b.Ithvar(v)
		g.canFlip[v] = b.Or(b.And(xv, b.Not(fn)), b.And(b.Not(xv), fn))
	}

	g.unit = g.staticConstraints(b)
	if b.Equal(g.unit, b.False()) {
		return nil, errors.Wrap(goaeon.ErrBadModel, "no parametrization satisfies the regulation constraints")
	}
	return g, nil
}

// rowMatch is the state condition under which the table of an uninterpreted function is read at row.
func rowMatch(b *rudd.BDD, args []VariableID, row int) rudd.Node {
	match := b.True()
	for i, arg := range args {
		if row&(1<<i) != 0 {
			match = b.And(match, b.Ithvar(int(arg)))
		} else {
			match = b.And(match, b.NIthvar(int(arg)))
		}
	}
	return match
}

func (g *AsyncGraph) compile(b *rudd.BDD, fn *FnUpdate) (rudd.Node, error) {
	switch fn.Op {
	case FnConst:
		if fn.Value {
			return b.True(), nil
		}
		return b.False(), nil
	case FnVar:
		return b.Ithvar(int(fn.Var)), nil
	case FnParam:
		start := g.paramStart[fn.Param]
		if len(fn.Args) == 0 {
			return b.Ithvar(start), nil
		}
		table := b.False()
		for row := 0; row < 1<<len(fn.Args); row++ {
			table = b.Or(table, b.And(rowMatch(b, fn.Args, row), b.Ithvar(start+row)))
		}
		return table, nil
	}

	ops := make([]rudd.Node, len(fn.Operands))
	for i, operand := range fn.Operands {
		n, err := g.compile(b, operand)
		if err != nil {
			return nil, err
		}
		ops[i] = n
	}

	switch fn.Op {
	case FnNot:
		return b.Not(ops[0]), nil
	case FnAnd:
		return b.And(ops...), nil
	case FnOr:
		return b.Or(ops...), nil
	case FnXor:
		return b.Or(b.And(ops[0], b.Not(ops[1])), b.And(b.Not(ops[0]), ops[1])), nil
	case FnImp:
		return b.Or(b.Not(ops[0]), ops[1]), nil
	case FnIff:
		return b.Or(b.And(ops[0], ops[1]), b.And(b.Not(ops[0]), b.Not(ops[1]))), nil
	}
	return nil, errors.Wrapf(goaeon.ErrBadModel, "unknown function op %d", fn.Op)
}

// staticConstraints restricts the colors of implicit update functions to those consistent with
// the monotonicity and observability of their regulations.
func (g *AsyncGraph) staticConstraints(b *rudd.BDD) rudd.Node {
	admissible := b.True()
	for _, reg := range g.bn.regulations {
		fn := g.bn.updates[reg.Target]
		if fn == nil || fn.Op != FnParam || !g.bn.params[fn.Param].Implicit {
			continue
		}
		input := -1
		for i, arg := range fn.Args {
			if arg == reg.Regulator {
				input = i
			}
		}
		if input < 0 {
			continue
		}

		start := g.paramStart[fn.Param]
		observed := b.False()
		for row := 0; row < 1<<len(fn.Args); row++ {
			if row&(1<<input) != 0 {
				continue
			}
			lo, hi := b.Ithvar(start+row), b.Ithvar(start+(row|1<<input))
			switch reg.Monotonicity {
			case Activation:
				admissible = b.And(admissible, b.Or(b.Not(lo), hi))
			case Inhibition:
				admissible = b.And(admissible, b.Or(lo, b.Not(hi)))
			}
			observed = b.Or(observed, b.And(lo, b.Not(hi)), b.And(b.Not(lo), hi))
		}
		if reg.Observable {
			admissible = b.And(admissible, observed)
		}
	}
	return admissible
}

func (g *AsyncGraph) Network() *BooleanNetwork {
	return g.bn
}

func (g *AsyncGraph) NumVars() int {
	return g.bn.NumVars()
}

// Variables returns all variable IDs in ascending order.
func (g *AsyncGraph) Variables() []VariableID {
	return g.bn.Variables()
}

func (g *AsyncGraph) VariableName(v VariableID) string {
	return g.bn.VariableName(v)
}

func (g *AsyncGraph) FindVariable(name string) (VariableID, bool) {
	return g.bn.FindVariable(name)
}

// CheckVariables returns ErrUnknownVariable if some ID is out of range and ErrInvalidInput if some ID repeats.
func (g *AsyncGraph) CheckVariables(vars []VariableID) error {
	seen := make(map[VariableID]struct{}, len(vars))
	for _, v := range vars {
		if v < 0 || int(v) >= g.NumVars() {
			return errors.Wrapf(goaeon.ErrUnknownVariable, "variable id %d", v)
		}
		if _, dupe := seen[v]; dupe {
			return errors.Wrapf(goaeon.ErrInvalidInput, "variable %s listed twice", g.VariableName(v))
		}
		seen[v] = struct{}{}
	}
	return nil
}

func (g *AsyncGraph) colored(node rudd.Node) ColoredVertices {
	return ColoredVertices{ctx: g.ctx, node: node}
}

// UnitColoredVertices returns every vertex paired with every admissible color.
func (g *AsyncGraph) UnitColoredVertices() ColoredVertices {
	return g.colored(g.unit)
}

func (g *AsyncGraph) EmptyColoredVertices() ColoredVertices {
	return g.colored(g.ctx.apply(func(b *rudd.BDD) rudd.Node {
		return b.False()
	}))
}

func (g *AsyncGraph) UnitColors() Colors {
	return g.UnitColoredVertices().Colors()
}

func (g *AsyncGraph) EmptyColors() Colors {
	return g.EmptyColoredVertices().Colors()
}

// MkVertex returns the given state paired with every admissible color.
func (g *AsyncGraph) MkVertex(state []bool) (ColoredVertices, error) {
	if len(state) != g.NumVars() {
		return ColoredVertices{}, errors.Wrapf(goaeon.ErrInvalidInput, "state has %d values, network has %d variables", len(state), g.NumVars())
	}
	return g.colored(g.ctx.apply(func(b *rudd.BDD) rudd.Node {
		n := g.unit
		for v, val := range state {
			if val {
				n = b.And(n, b.Ithvar(v))
			} else {
				n = b.And(n, b.NIthvar(v))
			}
		}
		return n
	})), nil
}

// MkSubspace returns every vertex matching the partial valuation, paired with every admissible color.
func (g *AsyncGraph) MkSubspace(fixed map[VariableID]bool) (ColoredVertices, error) {
	for v := range fixed {
		if v < 0 || int(v) >= g.NumVars() {
			return ColoredVertices{}, errors.Wrapf(goaeon.ErrUnknownVariable, "variable id %d", v)
		}
	}
	return g.colored(g.ctx.apply(func(b *rudd.BDD) rudd.Node {
		n := g.unit
		for v, val := range fixed {
			if val {
				n = b.And(n, b.Ithvar(int(v)))
			} else {
				n = b.And(n, b.NIthvar(int(v)))
			}
		}
		return n
	})), nil
}

// VarCanPost returns the pairs of S that have a v-successor.
func (g *AsyncGraph) VarCanPost(v VariableID, S ColoredVertices) ColoredVertices {
	return S.with(g.ctx.apply(func(b *rudd.BDD) rudd.Node {
		return b.And(S.node, g.canFlip[v])
	}))
}

// VarPost returns the v-successors of S.
func (g *AsyncGraph) VarPost(v VariableID, S ColoredVertices) ColoredVertices {
	return S.with(g.ctx.apply(func(b *rudd.BDD) rudd.Node {
		return g.ctx.flip(b, b.And(S.node, g.canFlip[v]), int(v))
	}))
}

// VarPre returns the v-predecessors of S.
func (g *AsyncGraph) VarPre(v VariableID, S ColoredVertices) ColoredVertices {
	return S.with(g.ctx.apply(func(b *rudd.BDD) rudd.Node {
		return b.And(g.ctx.flip(b, S.node, int(v)), g.canFlip[v])
	}))
}

// VarCanPostWithin returns the pairs of S whose v-successor is also in S.
func (g *AsyncGraph) VarCanPostWithin(v VariableID, S ColoredVertices) ColoredVertices {
	return S.with(g.ctx.apply(func(b *rudd.BDD) rudd.Node {
		return b.And(S.node, g.canFlip[v], g.ctx.flip(b, S.node, int(v)))
	}))
}

// VarCanPostOut returns the pairs of S whose v-successor leaves S.
func (g *AsyncGraph) VarCanPostOut(v VariableID, S ColoredVertices) ColoredVertices {
	return S.with(g.ctx.apply(func(b *rudd.BDD) rudd.Node {
		return b.And(S.node, g.canFlip[v], b.Not(g.ctx.flip(b, S.node, int(v))))
	}))
}
