package itgr

import (
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/2x3systems/goaeon/goaeon"
	"github.com/2x3systems/goaeon/libaeon/symbolic"
)

// Reduce removes from universe as many non-attractor states as interleaved transition-guided
// reduction can prove, restricted to transitions of vars.
//
// If cancelled or over the size limit, Reduce returns the partial Reduction and a *goaeon.Interrupted
// wrapping ErrCancelled or ErrResourceLimit.  The partial universe still contains every attractor.
func Reduce(graph *symbolic.AsyncGraph, universe symbolic.ColoredVertices, vars []symbolic.VariableID, opts Opts) (Reduction, error) {
	if !universe.IsSubset(graph.UnitColoredVertices()) {
		return Reduction{}, errors.Wrap(goaeon.ErrInvalidInput, "universe is not a subset of the graph's unit set")
	}
	if err := graph.CheckVariables(vars); err != nil {
		return Reduction{}, err
	}

	cancel := goaeon.OrNever(opts.Canceller)
	cancel.StartTimer()

	s := NewScheduler(graph, universe, vars, opts.Monitor)
	for _, v := range vars {
		s.Spawn(NewReachableProcess(v, s))
	}

	klog.V(1).Infof("ITGR: start with %v instances and %d variables", universe, len(vars))

	ticks := 0
	for !s.Done() {
		if cancel.IsCancelled() {
			partial := s.Finalize()
			klog.Warningf("ITGR: cancelled after %d ticks, universe %v", ticks, partial.Universe)
			return partial, goaeon.Interrupt(goaeon.ErrCancelled, partial)
		}

		s.Step()
		ticks++

		if limit := opts.MaxSymbolicSize; limit > 0 {
			if size := s.LastWeight(); size > limit {
				partial := s.Finalize()
				klog.Warningf("ITGR: process size %d exceeds limit %d", size, limit)
				return partial, goaeon.Interrupt(goaeon.ErrResourceLimit, partial)
			}
			if size := s.Universe().SymbolicSize(); size > limit {
				partial := s.Finalize()
				klog.Warningf("ITGR: universe size %d exceeds limit %d", size, limit)
				return partial, goaeon.Interrupt(goaeon.ErrResourceLimit, partial)
			}
		}
	}

	result := s.Finalize()
	klog.V(1).Infof("ITGR: done after %d ticks; %v instances and %d variables remain", ticks, result.Universe, len(result.Variables))
	return result, nil
}
