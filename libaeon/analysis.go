// Package libaeon wires symbolic reachability, reduction, attractor search and classification
// into a complete attractor analysis.
package libaeon

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"golang.org/x/sync/errgroup"

	"github.com/2x3systems/goaeon/goaeon"
	"github.com/2x3systems/goaeon/libaeon/archive"
	"github.com/2x3systems/goaeon/libaeon/classify"
	"github.com/2x3systems/goaeon/libaeon/itgr"
	"github.com/2x3systems/goaeon/libaeon/parfold"
	"github.com/2x3systems/goaeon/libaeon/symbolic"
	"github.com/2x3systems/goaeon/libaeon/xiebeerel"
)

// Report is the outcome of Analyze.
//
// If the analysis was interrupted, Interrupted holds the cause and the other fields hold what was committed.
type Report struct {
	RunID       string
	Created     time.Time
	Graph       *symbolic.AsyncGraph
	Reduction   itgr.Reduction
	Classes     []classify.ClassColors
	Attractors  []classify.AttractorEntry
	Interrupted error
}

// Analyze finds and classifies every attractor of graph within universe.
//
// Unknown active variables, invalid opts, or a universe outside the graph yield ErrInvalidInput.
// Cancellation and size limits yield a *goaeon.Interrupted together with the partial Report.
func Analyze(
	graph *symbolic.AsyncGraph,
	universe symbolic.ColoredVertices,
	opts goaeon.AnalysisOpts,
	cancel goaeon.Canceller,
	monitor goaeon.Monitor,
) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	vars := graph.Variables()
	if len(opts.ActiveVariables) > 0 {
		var err error
		if vars, err = graph.Network().ResolveVariables(opts.ActiveVariables); err != nil {
			return nil, errors.Wrapf(goaeon.ErrInvalidInput, "active variables: %v", err)
		}
	}
	if err := graph.CheckVariables(vars); err != nil {
		return nil, errors.Wrapf(goaeon.ErrInvalidInput, "active variables: %v", err)
	}
	if !universe.IsSubset(graph.UnitColoredVertices()) {
		return nil, errors.Wrap(goaeon.ErrInvalidInput, "universe is not a subset of the graph's unit set")
	}

	cancel = opts.Canceller(cancel)
	monitor = goaeon.OrNop(monitor)

	report := &Report{
		RunID:   uuid.NewString(),
		Created: time.Now(),
		Graph:   graph,
		Reduction: itgr.Reduction{
			Universe:  universe,
			Variables: vars,
		},
	}
	klog.V(1).Infof("run %s: analyzing %d variables over %v", report.RunID, len(vars), universe)

	if !opts.SkipReduction {
		reduced, err := itgr.Reduce(graph, universe, vars, itgr.Opts{
			Canceller:       cancel,
			MaxSymbolicSize: opts.MaxSymbolicSize,
			Monitor:         monitor,
		})
		report.Reduction = reduced
		if err != nil {
			return report.interrupted(err)
		}
	}

	classifier := classify.NewClassifier(graph)
	stream := xiebeerel.Stream(graph, report.Reduction.Universe, report.Reduction.Variables, xiebeerel.Opts{
		Canceller:       cancel,
		MaxSymbolicSize: opts.MaxSymbolicSize,
		Monitor:         monitor,
	})

	var workers errgroup.Group
	for i := 0; i < opts.Workers; i++ {
		workers.Go(func() error {
			for attr := range stream.Outlet {
				classifier.AddComponent(attr)
			}
			return nil
		})
	}
	workers.Wait()

	report.Classes = classifier.Snapshot()
	report.Attractors = classifier.Attractors()

	if err := stream.Err(); err != nil {
		return report.interrupted(err)
	}

	klog.V(1).Infof("run %s: %d attractors in %d classes", report.RunID, len(report.Attractors), len(report.Classes))
	return report, nil
}

// interrupted re-targets an *Interrupted from a phase so that it carries r; other errors drop the report.
func (r *Report) interrupted(err error) (*Report, error) {
	intr, ok := goaeon.IsInterrupted(err)
	if !ok {
		return nil, err
	}
	r.Interrupted = goaeon.Interrupt(intr.Cause, r)
	return r, r.Interrupted
}

// AttractorStates returns the union of every recorded attractor.
func (r *Report) AttractorStates() symbolic.ColoredVertices {
	if len(r.Attractors) == 0 {
		return r.Graph.EmptyColoredVertices()
	}
	sets := make([]symbolic.ColoredVertices, len(r.Attractors))
	for i, entry := range r.Attractors {
		sets[i] = entry.Set
	}
	all, _ := parfold.ParFold(sets, symbolic.ColoredVertices.Union)
	return all
}

// ToRecord summarizes r for the archive.
func (r *Report) ToRecord(model string) *archive.ReportRecord {
	rec := &archive.ReportRecord{
		RunId:         r.RunID,
		Model:         model,
		CreatedUnix:   r.Created.Unix(),
		NumVars:       int64(r.Graph.NumVars()),
		NumColors:     r.Graph.UnitColors().ApproxCardinality(),
		ReducedStates: r.Reduction.Universe.ApproxCardinality(),
	}
	if r.Interrupted != nil {
		rec.Interrupted = r.Interrupted.Error()
	}

	for _, cc := range r.Classes {
		rec.Classes = append(rec.Classes, &archive.ClassRecord{
			Code:   cc.Class.Code(),
			Colors: cc.Colors.ApproxCardinality(),
		})
	}

	for _, entry := range r.Attractors {
		ar := &archive.AttractorRecord{
			States:  entry.Set.Vertices().ApproxCardinality(),
			Colors:  entry.Set.Colors().ApproxCardinality(),
			Witness: formatState(entry.Set.Vertices().First()),
		}
		if c, ok := entry.Behaviours[classify.Stability]; ok {
			ar.Stability = c.ApproxCardinality()
		}
		if c, ok := entry.Behaviours[classify.Oscillation]; ok {
			ar.Oscillation = c.ApproxCardinality()
		}
		if c, ok := entry.Behaviours[classify.Disorder]; ok {
			ar.Disorder = c.ApproxCardinality()
		}
		rec.Attractors = append(rec.Attractors, ar)
	}
	return rec
}

// Archive stores the record of r in the archive at pathname and returns its run ID.
func (r *Report) Archive(pathname, model string) (string, error) {
	ar, err := archive.Open(archive.Opts{DbPathName: pathname})
	if err != nil {
		return "", err
	}
	defer ar.Close()

	if err = ar.Put(r.ToRecord(model)); err != nil {
		return "", err
	}
	return r.RunID, nil
}

func formatState(state []bool) string {
	var b strings.Builder
	for _, bit := range state {
		if bit {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
