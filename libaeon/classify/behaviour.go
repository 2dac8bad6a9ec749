// Package classify sorts the colors of a graph into classes by the behaviour of their attractors.
package classify

import (
	"github.com/pkg/errors"

	"github.com/2x3systems/goaeon/goaeon"
)

// Behaviour describes the qualitative dynamics of one attractor under one color.
type Behaviour int8

const (
	Stability   Behaviour = iota // a single fixed point
	Oscillation                  // every state has exactly one way to stay in the attractor
	Disorder                     // some state can stay in the attractor by two different variables
)

var behaviourNames = [...]string{
	Stability:   "Stability",
	Oscillation: "Oscillation",
	Disorder:    "Disorder",
}

func (b Behaviour) String() string {
	if b < 0 || int(b) >= len(behaviourNames) {
		return "Behaviour(?)"
	}
	return behaviourNames[b]
}

// ParseBehaviour reads the one-letter form of a Behaviour ("S", "O" or "D").
func ParseBehaviour(s string) (Behaviour, error) {
	switch s {
	case "S":
		return Stability, nil
	case "O":
		return Oscillation, nil
	case "D":
		return Disorder, nil
	}
	return 0, errors.Wrapf(goaeon.ErrInvalidInput, "invalid behaviour %q", s)
}
