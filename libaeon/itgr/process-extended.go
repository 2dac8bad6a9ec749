package itgr

import (
	"github.com/plan-systems/klog"

	"github.com/2x3systems/goaeon/libaeon/reach"
	"github.com/2x3systems/goaeon/libaeon/symbolic"
)

// NewExtendedComponentProcess seeds a backward search within fwdSet from the states of universe that can flip v.
func NewExtendedComponentProcess(
	v symbolic.VariableID,
	fwdSet symbolic.ColoredVertices,
	universe symbolic.ColoredVertices,
	graph *symbolic.AsyncGraph,
) *ExtendedComponentProcess {
	return &ExtendedComponentProcess{
		variable: v,
		fwdSet:   fwdSet,
		bwd:      NewBwdProcess(graph.VarCanPost(v, universe), fwdSet),
	}
}

func (p *ExtendedComponentProcess) Step(s *Scheduler) bool {
	if !p.bwd.Step(s) {
		return false
	}

	graph := s.Graph()
	name := graph.VariableName(p.variable)
	bottom := p.fwdSet.Minus(p.bwd.ReachableSet())

	klog.V(2).Infof(" > completed extended component for %s transitions", name)

	// If fwdSet can step outside itself, whatever lies outside the universe also counts as bottom:
	// reaching any of it proves there is no attractor on the way.
	for _, v := range graph.Variables() {
		if !graph.VarCanPostOut(v, p.fwdSet).IsEmpty() {
			bottom = bottom.Union(graph.UnitColoredVertices().Minus(s.Universe()))
			break
		}
	}

	if !bottom.IsEmpty() {
		basinOnly := reach.Bwd(graph, bottom, s.Universe(), s.ActiveVariables()).Minus(bottom)
		if !basinOnly.IsEmpty() {
			klog.V(2).Infof(" > discarding %v instances based on the %s extended component", basinOnly, name)
			s.DiscardVertices(basinOnly)
		}
	}

	if graph.VarCanPost(p.variable, s.Universe()).IsEmpty() {
		s.DiscardVariable(p.variable)
	}
	return true
}

func (p *ExtendedComponentProcess) Weight() int {
	return p.bwd.Weight()
}

func (p *ExtendedComponentProcess) DiscardStates(set symbolic.ColoredVertices) {
	p.bwd.DiscardStates(set)
	p.fwdSet = p.fwdSet.Minus(set)
}
