package xiebeerel

import (
	"github.com/2x3systems/goaeon/libaeon/symbolic"
)

// AttractorStream delivers attractors as they are found.
//
// The producer closes Outlet when the search ends; Err() is valid only after that.
// Consumers must drain Outlet or the producer blocks.
type AttractorStream struct {
	Outlet chan symbolic.ColoredVertices
	err    error
}

func NewAttractorStream() *AttractorStream {
	stream := &AttractorStream{
		Outlet: make(chan symbolic.ColoredVertices, 1),
	}
	return stream
}

func (stream *AttractorStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

func (stream *AttractorStream) PushAttractor(X symbolic.ColoredVertices) {
	stream.Outlet <- X
}

// PullAll drains the stream, returning every attractor in discovery order.
func (stream *AttractorStream) PullAll() []symbolic.ColoredVertices {
	var all []symbolic.ColoredVertices
	for X := range stream.Outlet {
		all = append(all, X)
	}
	return all
}

// Err returns the error that ended the search, if any.
func (stream *AttractorStream) Err() error {
	return stream.err
}
