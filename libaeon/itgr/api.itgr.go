// Package itgr implements interleaved transition-guided reduction: a cooperative scheduler of
// reachability processes that prunes states which provably cannot belong to any attractor.
package itgr

import (
	"github.com/2x3systems/goaeon/goaeon"
	"github.com/2x3systems/goaeon/libaeon/symbolic"
)

// Process is a unit of incremental work driven by a Scheduler.
type Process interface {

	// Step performs one bounded unit of work and returns true once the process is complete.
	// It may call back into s to discard states, retire variables, or spawn new processes.
	Step(s *Scheduler) bool

	// Weight approximates how symbolically hard the process currently is (used only for priority).
	Weight() int

	// DiscardStates removes set from every internal set and bound of the process.
	DiscardStates(set symbolic.ColoredVertices)
}

// Opts specifies params for Reduce.
type Opts struct {
	Canceller       goaeon.Canceller // polled between scheduler ticks; nil for goaeon.Never
	MaxSymbolicSize int              // 0 denotes no limit
	Monitor         goaeon.Monitor   // nil for goaeon.NopMonitor
}

// Reduction is the outcome of Reduce: every attractor of the input universe lies within Universe,
// and only the Variables can still transition inside it.
type Reduction struct {
	Universe  symbolic.ColoredVertices
	Variables []symbolic.VariableID
}

// FwdProcess saturates a set forward within a private universe.
type FwdProcess struct {
	fwd      symbolic.ColoredVertices
	universe symbolic.ColoredVertices
}

// BwdProcess saturates a set backward within a private universe.
type BwdProcess struct {
	bwd      symbolic.ColoredVertices
	universe symbolic.ColoredVertices
}

// ReachableProcess computes the forward closure of the states that can flip a variable,
// prunes the basin of that closure, and then spawns an ExtendedComponentProcess.
type ReachableProcess struct {
	variable symbolic.VariableID
	fwd      *FwdProcess
}

// ExtendedComponentProcess computes the extended component of a forward-closed set,
// prunes the basin of its bottom region, and retires its variable if it can no longer flip.
type ExtendedComponentProcess struct {
	variable symbolic.VariableID
	fwdSet   symbolic.ColoredVertices
	bwd      *BwdProcess
}
