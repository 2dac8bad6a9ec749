package itgr

import (
	"github.com/plan-systems/klog"

	"github.com/2x3systems/goaeon/libaeon/reach"
	"github.com/2x3systems/goaeon/libaeon/symbolic"
)

func NewFwdProcess(initial, universe symbolic.ColoredVertices) *FwdProcess {
	return &FwdProcess{
		fwd:      initial,
		universe: universe,
	}
}

// ReachableSet returns the forward set computed so far.
func (p *FwdProcess) ReachableSet() symbolic.ColoredVertices {
	return p.fwd
}

func (p *FwdProcess) Step(s *Scheduler) bool {
	next, done := reach.Step(p.fwd, p.universe, s.ActiveVariables(), reach.Post(s.Graph()))
	p.fwd = next
	klog.V(3).Infof(" >> [FWD process] reachability progress: %v", p.fwd)
	return done
}

func (p *FwdProcess) Weight() int {
	return p.fwd.SymbolicSize()
}

func (p *FwdProcess) DiscardStates(set symbolic.ColoredVertices) {
	p.universe = p.universe.Minus(set)
	p.fwd = p.fwd.Minus(set)
}

func NewBwdProcess(initial, universe symbolic.ColoredVertices) *BwdProcess {
	return &BwdProcess{
		bwd:      initial,
		universe: universe,
	}
}

// ReachableSet returns the backward set computed so far.
func (p *BwdProcess) ReachableSet() symbolic.ColoredVertices {
	return p.bwd
}

func (p *BwdProcess) Step(s *Scheduler) bool {
	next, done := reach.Step(p.bwd, p.universe, s.ActiveVariables(), reach.Pre(s.Graph()))
	p.bwd = next
	klog.V(3).Infof(" >> [BWD process] reachability progress: %v", p.bwd)
	return done
}

func (p *BwdProcess) Weight() int {
	return p.bwd.SymbolicSize()
}

func (p *BwdProcess) DiscardStates(set symbolic.ColoredVertices) {
	p.universe = p.universe.Minus(set)
	p.bwd = p.bwd.Minus(set)
}
