package classify

import (
	"sync"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/2x3systems/goaeon/libaeon/parfold"
	"github.com/2x3systems/goaeon/libaeon/symbolic"
)

// ClassColors is the set of colors whose attractors exhibit exactly Class.
type ClassColors struct {
	Class  Class
	Colors symbolic.Colors
}

// AttractorEntry is one recorded attractor and which of its colors show which behaviour.
type AttractorEntry struct {
	Set        symbolic.ColoredVertices
	Behaviours map[Behaviour]symbolic.Colors
}

// Classifier aggregates attractors into behaviour classes.  It is safe for concurrent use.
type Classifier struct {
	graph      *symbolic.AsyncGraph
	mu         sync.Mutex
	classes    *redblacktree.Tree // Class -> symbolic.Colors
	attractors []AttractorEntry
}

// NewClassifier returns a Classifier with every color of graph in the empty class.
func NewClassifier(graph *symbolic.AsyncGraph) *Classifier {
	classes := redblacktree.NewWith(ClassComparator)
	classes.Put(Class{}, graph.UnitColors())
	return &Classifier{
		graph:   graph,
		classes: classes,
	}
}

// Record adds an attractor with its per-behaviour colors, moving those colors into extended classes.
func (cl *Classifier) Record(attractor symbolic.ColoredVertices, breakdown map[Behaviour]symbolic.Colors) {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	for _, b := range []Behaviour{Stability, Oscillation, Disorder} {
		if colors, ok := breakdown[b]; ok && !colors.IsEmpty() {
			cl.push(b, colors)
		}
	}
	cl.attractors = append(cl.attractors, AttractorEntry{
		Set:        attractor,
		Behaviours: cloneBreakdown(breakdown),
	})
}

func cloneBreakdown(breakdown map[Behaviour]symbolic.Colors) map[Behaviour]symbolic.Colors {
	out := make(map[Behaviour]symbolic.Colors, len(breakdown))
	for b, colors := range breakdown {
		out[b] = colors
	}
	return out
}

// AddComponent computes the behaviour breakdown of attractor and records it.
func (cl *Classifier) AddComponent(attractor symbolic.ColoredVertices) map[Behaviour]symbolic.Colors {
	breakdown := Breakdown(cl.graph, attractor)
	cl.Record(attractor, breakdown)
	return breakdown
}

// push moves colors (from the largest class down) into the class extended by b.
func (cl *Classifier) push(b Behaviour, colors symbolic.Colors) {
	keys := cl.classes.Keys()
	for i := len(keys) - 1; i >= 0; i-- {
		class := keys[i].(Class)
		val, _ := cl.classes.Get(class)
		classColors := val.(symbolic.Colors)

		moving := classColors.Intersect(colors)
		if moving.IsEmpty() {
			continue
		}

		if remaining := classColors.Minus(moving); remaining.IsEmpty() {
			cl.classes.Remove(class)
		} else {
			cl.classes.Put(class, remaining)
		}

		extended := class.CloneExtended(b)
		if existing, found := cl.classes.Get(extended); found {
			moving = existing.(symbolic.Colors).Union(moving)
		}
		cl.classes.Put(extended, moving)
	}
}

// Snapshot returns every non-empty class with its colors, smallest class first.
func (cl *Classifier) Snapshot() []ClassColors {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	out := make([]ClassColors, 0, cl.classes.Size())
	itr := cl.classes.Iterator()
	for itr.Next() {
		out = append(out, ClassColors{
			Class:  itr.Key().(Class),
			Colors: itr.Value().(symbolic.Colors),
		})
	}
	return out
}

// Attractors returns the attractor log in recording order.
func (cl *Classifier) Attractors() []AttractorEntry {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	out := make([]AttractorEntry, len(cl.attractors))
	for i, entry := range cl.attractors {
		out[i] = AttractorEntry{
			Set:        entry.Set,
			Behaviours: cloneBreakdown(entry.Behaviours),
		}
	}
	return out
}

// Breakdown splits the colors of an attractor by behaviour:
//
//	Stability:   colors under which no state of the attractor has a successor
//	Disorder:    colors under which some state can stay inside by two different variables
//	Oscillation: the remaining colors
func Breakdown(graph *symbolic.AsyncGraph, attractor symbolic.ColoredVertices) map[Behaviour]symbolic.Colors {
	out := make(map[Behaviour]symbolic.Colors, 3)
	vars := graph.Variables()

	canMove := make([]symbolic.ColoredVertices, len(vars))
	for i, v := range vars {
		canMove[i] = graph.VarCanPost(v, attractor)
	}
	notSink := graph.EmptyColoredVertices()
	if len(canMove) > 0 {
		notSink, _ = parfold.ParFold(canMove, symbolic.ColoredVertices.Union)
	}

	notSinkColors := notSink.Colors()
	if sinks := attractor.Colors().Minus(notSinkColors); !sinks.IsEmpty() {
		out[Stability] = sinks
	}
	if notSinkColors.IsEmpty() {
		return out
	}

	var branching []symbolic.Colors
	for _, v := range vars {
		first := graph.VarCanPostWithin(v, notSink)
		for _, w := range vars {
			if w != v {
				branching = append(branching, graph.VarCanPostWithin(w, first).Colors())
			}
		}
	}

	disorder := graph.EmptyColors()
	if len(branching) > 0 {
		disorder, _ = parfold.ParFold(branching, symbolic.Colors.Union)
	}

	if cycle := notSinkColors.Minus(disorder); !cycle.IsEmpty() {
		out[Oscillation] = cycle
	}
	if !disorder.IsEmpty() {
		out[Disorder] = disorder
	}
	return out
}
