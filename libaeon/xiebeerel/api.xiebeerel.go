// Package xiebeerel finds the bottom SCCs (attractors) of a colored graph using a colored,
// saturation-based variant of the Xie-Beerel algorithm.
package xiebeerel

import (
	"github.com/2x3systems/goaeon/goaeon"
	"github.com/2x3systems/goaeon/libaeon/symbolic"
)

// Opts specifies params for Attractors and Stream.
type Opts struct {
	Canceller       goaeon.Canceller // polled at the top of each pivot iteration; nil for goaeon.Never
	MaxSymbolicSize int              // 0 denotes no limit
	Monitor         goaeon.Monitor   // nil for goaeon.NopMonitor
}

// Attractors returns every attractor in universe, considering only transitions of vars.
//
// Attractor sets are pairwise disjoint.  If interrupted, the error is a *goaeon.Interrupted whose
// Partial holds the attractors found so far (also returned).
func Attractors(graph *symbolic.AsyncGraph, universe symbolic.ColoredVertices, vars []symbolic.VariableID, opts Opts) ([]symbolic.ColoredVertices, error) {
	stream := Stream(graph, universe, vars, opts)
	found := stream.PullAll()
	return found, stream.Err()
}
