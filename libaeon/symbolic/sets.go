package symbolic

import (
	"fmt"
	"math/big"

	"github.com/dalzilio/rudd"
)

// ColoredVertices is a symbolic set of (vertex, color) pairs.
//
// Values are immutable: every operation returns a new set.
type ColoredVertices struct {
	ctx  *Context
	node rudd.Node
}

// Colors is a symbolic set of colors (parametrizations).
type Colors struct {
	ctx  *Context
	node rudd.Node
}

// Vertices is a symbolic set of network states, independent of color.
type Vertices struct {
	ctx  *Context
	node rudd.Node
}

func (X ColoredVertices) with(node rudd.Node) ColoredVertices {
	return ColoredVertices{ctx: X.ctx, node: node}
}

func (X ColoredVertices) Union(Y ColoredVertices) ColoredVertices {
	return X.with(X.ctx.apply(func(b *rudd.BDD) rudd.Node {
		return b.Or(X.node, Y.node)
	}))
}

func (X ColoredVertices) Intersect(Y ColoredVertices) ColoredVertices {
	return X.with(X.ctx.apply(func(b *rudd.BDD) rudd.Node {
		return b.And(X.node, Y.node)
	}))
}

func (X ColoredVertices) Minus(Y ColoredVertices) ColoredVertices {
	return X.with(X.ctx.apply(func(b *rudd.BDD) rudd.Node {
		return b.And(X.node, b.Not(Y.node))
	}))
}

// MinusColors removes every pair whose color is in C.
func (X ColoredVertices) MinusColors(C Colors) ColoredVertices {
	return X.with(X.ctx.apply(func(b *rudd.BDD) rudd.Node {
		return b.And(X.node, b.Not(C.node))
	}))
}

// IntersectColors keeps only pairs whose color is in C.
func (X ColoredVertices) IntersectColors(C Colors) ColoredVertices {
	return X.with(X.ctx.apply(func(b *rudd.BDD) rudd.Node {
		return b.And(X.node, C.node)
	}))
}

func (X ColoredVertices) IsEmpty() bool {
	return X.ctx.isEmpty(X.node)
}

func (X ColoredVertices) Equal(Y ColoredVertices) bool {
	return X.ctx.equal(X.node, Y.node)
}

// IsSubset returns true if every pair of X is also in Y.
func (X ColoredVertices) IsSubset(Y ColoredVertices) bool {
	return X.ctx.isSubset(X.node, Y.node)
}

// Colors projects X onto the colors that appear in at least one pair.
func (X ColoredVertices) Colors() Colors {
	return Colors{ctx: X.ctx, node: X.ctx.apply(func(b *rudd.BDD) rudd.Node {
		return X.ctx.existStates(b, X.node)
	})}
}

// Vertices projects X onto the states that appear in at least one pair.
func (X ColoredVertices) Vertices() Vertices {
	return Vertices{ctx: X.ctx, node: X.ctx.apply(func(b *rudd.BDD) rudd.Node {
		return X.ctx.existParams(b, X.node)
	})}
}

// PickVertex returns a subset of X containing exactly one vertex for every color of X.
func (X ColoredVertices) PickVertex() ColoredVertices {
	return X.with(X.ctx.pickPerColor(X.node))
}

// ExactCardinality returns the number of (vertex, color) pairs in X.
func (X ColoredVertices) ExactCardinality() *big.Int {
	return X.ctx.satcount(X.node, 0)
}

func (X ColoredVertices) ApproxCardinality() float64 {
	return toFloat(X.ExactCardinality())
}

// SymbolicSize is the node count of the BDD representing X.
func (X ColoredVertices) SymbolicSize() int {
	return X.ctx.nodeCount(X.node)
}

func (X ColoredVertices) String() string {
	return fmt.Sprintf("%.0f[nodes:%d]", X.ApproxCardinality(), X.SymbolicSize())
}

func (C Colors) with(node rudd.Node) Colors {
	return Colors{ctx: C.ctx, node: node}
}

func (C Colors) Union(D Colors) Colors {
	return C.with(C.ctx.apply(func(b *rudd.BDD) rudd.Node {
		return b.Or(C.node, D.node)
	}))
}

func (C Colors) Intersect(D Colors) Colors {
	return C.with(C.ctx.apply(func(b *rudd.BDD) rudd.Node {
		return b.And(C.node, D.node)
	}))
}

func (C Colors) Minus(D Colors) Colors {
	return C.with(C.ctx.apply(func(b *rudd.BDD) rudd.Node {
		return b.And(C.node, b.Not(D.node))
	}))
}

func (C Colors) IsEmpty() bool {
	return C.ctx.isEmpty(C.node)
}

func (C Colors) Equal(D Colors) bool {
	return C.ctx.equal(C.node, D.node)
}

func (C Colors) IsSubset(D Colors) bool {
	return C.ctx.isSubset(C.node, D.node)
}

// ExactCardinality returns the number of parametrizations in C.
func (C Colors) ExactCardinality() *big.Int {
	return C.ctx.satcount(C.node, C.ctx.numStates)
}

func (C Colors) ApproxCardinality() float64 {
	return toFloat(C.ExactCardinality())
}

func (C Colors) SymbolicSize() int {
	return C.ctx.nodeCount(C.node)
}

func (C Colors) String() string {
	return fmt.Sprintf("%.0f colors", C.ApproxCardinality())
}

func (V Vertices) Union(W Vertices) Vertices {
	return Vertices{ctx: V.ctx, node: V.ctx.apply(func(b *rudd.BDD) rudd.Node {
		return b.Or(V.node, W.node)
	})}
}

func (V Vertices) IsEmpty() bool {
	return V.ctx.isEmpty(V.node)
}

func (V Vertices) Equal(W Vertices) bool {
	return V.ctx.equal(V.node, W.node)
}

// ExactCardinality returns the number of states in V.
func (V Vertices) ExactCardinality() *big.Int {
	return V.ctx.satcount(V.node, V.ctx.numParams)
}

func (V Vertices) ApproxCardinality() float64 {
	return toFloat(V.ExactCardinality())
}

// First returns the smallest state in V, or nil if V is empty.
func (V Vertices) First() []bool {
	if V.IsEmpty() {
		return nil
	}
	return V.ctx.readValuation(V.node)
}
