// Package reach implements saturated reachability over an AsyncGraph.
package reach

import (
	"github.com/2x3systems/goaeon/libaeon/symbolic"
)

// Transition is a per-variable image operator (successors or predecessors under one variable).
type Transition func(v symbolic.VariableID, S symbolic.ColoredVertices) symbolic.ColoredVertices

// Post returns the successor operator of graph.
func Post(graph *symbolic.AsyncGraph) Transition {
	return graph.VarPost
}

// Pre returns the predecessor operator of graph.
func Pre(graph *symbolic.AsyncGraph) Transition {
	return graph.VarPre
}

// Step grows set by the image of the first variable (in order) that yields new elements within universe.
//
// It returns the grown set and false, or set unchanged and true when no variable yields anything new.
func Step(set, universe symbolic.ColoredVertices, vars []symbolic.VariableID, op Transition) (symbolic.ColoredVertices, bool) {
	for _, v := range vars {
		delta := op(v, set).Intersect(universe).Minus(set)
		if !delta.IsEmpty() {
			return set.Union(delta), false
		}
	}
	return set, true
}

// Closure loops Step until set is at a fixpoint.
func Closure(set, universe symbolic.ColoredVertices, vars []symbolic.VariableID, op Transition) symbolic.ColoredVertices {
	for {
		next, done := Step(set, universe, vars, op)
		if done {
			return set
		}
		set = next
	}
}

// Fwd returns every element of universe forward-reachable from initial (initial included).
func Fwd(graph *symbolic.AsyncGraph, initial, universe symbolic.ColoredVertices, vars []symbolic.VariableID) symbolic.ColoredVertices {
	return Closure(initial, universe, vars, Post(graph))
}

// Bwd returns every element of universe backward-reachable from initial (initial included).
func Bwd(graph *symbolic.AsyncGraph, initial, universe symbolic.ColoredVertices, vars []symbolic.VariableID) symbolic.ColoredVertices {
	return Closure(initial, universe, vars, Pre(graph))
}
