package xiebeerel

import (
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/2x3systems/goaeon/goaeon"
	"github.com/2x3systems/goaeon/libaeon/reach"
	"github.com/2x3systems/goaeon/libaeon/symbolic"
)

// Stream starts the attractor search in its own goroutine and returns the stream of its results.
func Stream(graph *symbolic.AsyncGraph, universe symbolic.ColoredVertices, vars []symbolic.VariableID, opts Opts) *AttractorStream {
	stream := NewAttractorStream()

	go func() {
		defer stream.Close()
		stream.err = search(graph, universe, vars, opts, stream)
	}()

	return stream
}

func search(
	graph *symbolic.AsyncGraph,
	universe symbolic.ColoredVertices,
	vars []symbolic.VariableID,
	opts Opts,
	stream *AttractorStream,
) error {
	if !universe.IsSubset(graph.UnitColoredVertices()) {
		return errors.Wrap(goaeon.ErrInvalidInput, "universe is not a subset of the graph's unit set")
	}
	if err := graph.CheckVariables(vars); err != nil {
		return err
	}

	cancel := goaeon.OrNever(opts.Canceller)
	cancel.StartTimer()
	monitor := goaeon.OrNop(opts.Monitor)

	klog.V(1).Infof("Xie-Beerel: start attractor detection on %v candidates", universe)

	var found []symbolic.ColoredVertices
	interrupt := func(cause error) error {
		klog.Warningf("Xie-Beerel: stopped with %d attractors found: %v", len(found), cause)
		return goaeon.Interrupt(cause, found)
	}

	post := reach.Post(graph)
	for !universe.IsEmpty() {
		if cancel.IsCancelled() {
			return interrupt(goaeon.ErrCancelled)
		}
		klog.V(2).Infof(" > start new bottom SCC search; remaining %v", universe)

		pivots := universe.PickVertex()
		pivotBasin := reach.Bwd(graph, pivots, universe, vars)
		monitor.PivotSearched()

		// Grow the component forward; a color whose component leaks out of the pivot basin
		// cannot be terminal, so it is dropped.
		component := pivots
		for {
			next, done := reach.Step(component, universe, vars, post)
			component = next

			escaped := component.Minus(pivotBasin)
			if !escaped.IsEmpty() {
				component = component.MinusColors(escaped.Colors())
			}
			if limit := opts.MaxSymbolicSize; limit > 0 && component.SymbolicSize() > limit {
				return interrupt(errors.Wrapf(goaeon.ErrResourceLimit, "component size %d exceeds %d", component.SymbolicSize(), limit))
			}
			if done {
				break
			}
		}

		// The component is now closed within universe; a color that can still step out of it
		// leaves universe altogether, so it has no attractor here.
		for _, v := range vars {
			if leaking := graph.VarCanPostOut(v, component); !leaking.IsEmpty() {
				component = component.MinusColors(leaking.Colors())
			}
		}

		if !component.IsEmpty() {
			klog.V(1).Infof(" > found a bottom SCC: %v", component)
			found = append(found, component)
			monitor.AttractorFound()
			stream.PushAttractor(component)
		}

		universe = universe.Minus(pivotBasin)
	}

	klog.V(1).Infof("Xie-Beerel: finished with %d attractors", len(found))
	return nil
}
