package goaeon

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Canceller is polled by driving loops between units of work.
type Canceller interface {

	// IsCancelled returns true once the computation using this handle should stop.
	IsCancelled() bool

	// StartTimer arms a deadline-based handle.  It is idempotent and a no-op for other handles.
	StartTimer()
}

// Never is a Canceller that never cancels.
var Never Canceller = never{}

type never struct{}

func (never) IsCancelled() bool { return false }
func (never) StartTimer()       {}

// Flag is a Canceller that is tripped manually (e.g. from a signal handler).
type Flag struct {
	tripped atomic.Bool
}

func (f *Flag) Cancel() {
	f.tripped.Store(true)
}

func (f *Flag) IsCancelled() bool {
	return f.tripped.Load()
}

func (f *Flag) StartTimer() {}

// FromContext returns a Canceller that reports cancelled once ctx is done.
func FromContext(ctx context.Context) Canceller {
	return ctxCanceller{ctx}
}

type ctxCanceller struct {
	ctx context.Context
}

func (c ctxCanceller) IsCancelled() bool {
	return c.ctx.Err() != nil
}

func (c ctxCanceller) StartTimer() {}

// NewTimeout returns a Canceller whose deadline starts on the first StartTimer() call.
// Until then it never reports cancelled.
func NewTimeout(d time.Duration) Canceller {
	return &timeout{
		duration: d,
	}
}

type timeout struct {
	once     sync.Once
	duration time.Duration
	deadline atomic.Int64 // unix nanos; 0 until armed
}

func (t *timeout) StartTimer() {
	t.once.Do(func() {
		t.deadline.Store(time.Now().Add(t.duration).UnixNano())
	})
}

func (t *timeout) IsCancelled() bool {
	deadline := t.deadline.Load()
	if deadline == 0 {
		return false
	}
	return time.Now().UnixNano() >= deadline
}

// Either returns a Canceller that is cancelled when any of the given handles is.
func Either(handles ...Canceller) Canceller {
	return either(handles)
}

type either []Canceller

func (e either) IsCancelled() bool {
	for _, h := range e {
		if h != nil && h.IsCancelled() {
			return true
		}
	}
	return false
}

func (e either) StartTimer() {
	for _, h := range e {
		if h != nil {
			h.StartTimer()
		}
	}
}

// OrNever returns c, or Never if c is nil.
func OrNever(c Canceller) Canceller {
	if c == nil {
		return Never
	}
	return c
}
