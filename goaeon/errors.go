package goaeon

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errors
var (
	ErrCancelled       = errors.New("computation cancelled")
	ErrResourceLimit   = errors.New("symbolic size limit exceeded")
	ErrInvalidInput    = errors.New("invalid input")
	ErrBadModel        = errors.New("bad network model")
	ErrUnknownVariable = errors.New("unknown network variable")
	ErrTooManyParams   = errors.New("too many parameter bits")
	ErrBadArchive      = errors.New("bad archive param")
	ErrRunNotFound     = errors.New("archived run not found")
)

// Interrupted is returned when a computation stops early but its partial result is still valid.
//
// Cause is either ErrCancelled or ErrResourceLimit, and errors.Is() sees through to it.
// Partial holds whatever the driving loop had committed when it stopped.
type Interrupted struct {
	Cause   error
	Partial any
}

func (e *Interrupted) Error() string {
	return fmt.Sprintf("interrupted: %v", e.Cause)
}

func (e *Interrupted) Unwrap() error {
	return e.Cause
}

// Interrupt forms an *Interrupted carrying the given partial result.
func Interrupt(cause error, partial any) error {
	return &Interrupted{
		Cause:   cause,
		Partial: partial,
	}
}

// IsInterrupted returns the *Interrupted wrapped by err, if any.
func IsInterrupted(err error) (*Interrupted, bool) {
	var intr *Interrupted
	if errors.As(err, &intr) {
		return intr, true
	}
	return nil, false
}
