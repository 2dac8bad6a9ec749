package itgr

import (
	"github.com/plan-systems/klog"

	"github.com/2x3systems/goaeon/libaeon/reach"
	"github.com/2x3systems/goaeon/libaeon/symbolic"
)

// NewReachableProcess seeds a forward search from the states of the scheduler's universe that can flip v.
func NewReachableProcess(v symbolic.VariableID, s *Scheduler) *ReachableProcess {
	universe := s.Universe()
	return &ReachableProcess{
		variable: v,
		fwd:      NewFwdProcess(s.Graph().VarCanPost(v, universe), universe),
	}
}

func (p *ReachableProcess) Step(s *Scheduler) bool {
	if !p.fwd.Step(s) {
		return false
	}

	graph := s.Graph()
	name := graph.VariableName(p.variable)
	fwdSet := p.fwd.ReachableSet()

	// A forward set smaller than the universe usually has a basin.
	if !fwdSet.Equal(s.Universe()) {
		basinOnly := reach.Bwd(graph, fwdSet, s.Universe(), s.ActiveVariables()).Minus(fwdSet)
		if !basinOnly.IsEmpty() {
			klog.V(2).Infof(" > discarding %v instances using the %s transition basin", basinOnly, name)
			s.DiscardVertices(basinOnly)
		}
	} else {
		klog.V(2).Infof(" > completed forward reachability for %s transitions; basin is empty", name)
	}

	s.Spawn(NewExtendedComponentProcess(p.variable, fwdSet, s.Universe(), graph))
	return true
}

func (p *ReachableProcess) Weight() int {
	return p.fwd.Weight()
}

func (p *ReachableProcess) DiscardStates(set symbolic.ColoredVertices) {
	p.fwd.DiscardStates(set)
}
