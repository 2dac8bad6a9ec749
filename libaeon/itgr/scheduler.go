package itgr

import (
	"github.com/emirpasic/gods/trees/binaryheap"

	"github.com/2x3systems/goaeon/goaeon"
	"github.com/2x3systems/goaeon/libaeon/symbolic"
)

// Scheduler owns the shared universe and active variables and repeatedly steps the lightest live process.
//
// Stepping is single-threaded: states discarded during one tick are applied to every live process
// before the next tick.
type Scheduler struct {
	graph      *symbolic.AsyncGraph
	universe   symbolic.ColoredVertices
	active     []symbolic.VariableID
	queue      *binaryheap.Heap
	nextSeq    int
	toDiscard  *symbolic.ColoredVertices
	lastWeight int
	monitor    goaeon.Monitor
}

type queueEntry struct {
	proc   Process
	weight int
	seq    int // insertion order; breaks weight ties
}

func byWeightThenSeq(a, b interface{}) int {
	ea, eb := a.(*queueEntry), b.(*queueEntry)
	switch {
	case ea.weight < eb.weight:
		return -1
	case ea.weight > eb.weight:
		return 1
	case ea.seq < eb.seq:
		return -1
	case ea.seq > eb.seq:
		return 1
	}
	return 0
}

// NewScheduler returns a Scheduler with no processes over the given universe and variables.
func NewScheduler(graph *symbolic.AsyncGraph, universe symbolic.ColoredVertices, vars []symbolic.VariableID, monitor goaeon.Monitor) *Scheduler {
	return &Scheduler{
		graph:    graph,
		universe: universe,
		active:   append([]symbolic.VariableID(nil), vars...),
		queue:    binaryheap.NewWith(byWeightThenSeq),
		monitor:  goaeon.OrNop(monitor),
	}
}

func (s *Scheduler) Graph() *symbolic.AsyncGraph {
	return s.graph
}

// Universe returns the current universe.
func (s *Scheduler) Universe() symbolic.ColoredVertices {
	return s.universe
}

// ActiveVariables returns the variables that may still transition within the universe.
func (s *Scheduler) ActiveVariables() []symbolic.VariableID {
	return s.active
}

// LastWeight returns the weight of the most recently stepped process.
func (s *Scheduler) LastWeight() int {
	return s.lastWeight
}

// NumProcesses returns the number of live processes.
func (s *Scheduler) NumProcesses() int {
	return s.queue.Size()
}

// Done returns true once every process has completed.
func (s *Scheduler) Done() bool {
	return s.queue.Empty()
}

// Spawn adds a new live process.
func (s *Scheduler) Spawn(proc Process) {
	s.queue.Push(&queueEntry{
		proc:   proc,
		weight: proc.Weight(),
		seq:    s.nextSeq,
	})
	s.nextSeq++
}

// DiscardVertices removes set from the universe; live processes drop it before the next tick.
func (s *Scheduler) DiscardVertices(set symbolic.ColoredVertices) {
	s.monitor.StatesDiscarded(set.Intersect(s.universe).ApproxCardinality())
	s.universe = s.universe.Minus(set)
	if s.toDiscard == nil {
		s.toDiscard = &set
	} else {
		merged := s.toDiscard.Union(set)
		s.toDiscard = &merged
	}
}

// DiscardVariable removes v from the active variables.
func (s *Scheduler) DiscardVariable(v symbolic.VariableID) {
	for i, vi := range s.active {
		if vi == v {
			s.active = append(s.active[:i:i], s.active[i+1:]...)
			s.monitor.VariableRetired()
			return
		}
	}
}

// Step applies pending discards to all live processes, then steps the process with the smallest weight.
func (s *Scheduler) Step() {
	if s.Done() {
		return
	}

	if s.toDiscard != nil {
		entries := s.queue.Values()
		s.queue.Clear()
		for _, val := range entries {
			entry := val.(*queueEntry)
			entry.proc.DiscardStates(*s.toDiscard)
			entry.weight = entry.proc.Weight()
			s.queue.Push(entry)
		}
		s.toDiscard = nil
	}

	val, _ := s.queue.Pop()
	entry := val.(*queueEntry)
	done := entry.proc.Step(s)
	s.lastWeight = entry.proc.Weight()
	if !done {
		entry.weight = s.lastWeight
		s.queue.Push(entry)
	}

	s.monitor.ProcessStepped(s.queue.Size())
}

// Finalize returns the current universe and active variables.
func (s *Scheduler) Finalize() Reduction {
	return Reduction{
		Universe:  s.universe,
		Variables: append([]symbolic.VariableID(nil), s.active...),
	}
}
