// Package parfold reduces a slice with an associative function, combining adjacent pairs concurrently.
package parfold

import (
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/2x3systems/goaeon/goaeon"
)

// ParFold folds items with combine in rounds: each round combines (items[2i], items[2i+1]) in parallel,
// carrying an odd trailing item through unchanged, until one value remains.
//
// combine must be associative; it is never asked to be commutative (operands keep their order).
func ParFold[T any](items []T, combine func(T, T) T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, errors.Wrap(goaeon.ErrInvalidInput, "par_fold of an empty sequence")
	}

	level := items
	for len(level) > 1 {
		next := make([]T, (len(level)+1)/2)

		var group errgroup.Group
		for i := 0; i+1 < len(level); i += 2 {
			i := i
			group.Go(func() error {
				next[i/2] = combine(level[i], level[i+1])
				return nil
			})
		}
		if len(level)%2 == 1 {
			next[len(next)-1] = level[len(level)-1]
		}
		if err := group.Wait(); err != nil {
			return zero, err
		}
		level = next
	}
	return level[0], nil
}
