package symbolic

import (
	"math/big"
	"sync"

	"github.com/dalzilio/rudd"
	"github.com/pkg/errors"

	"github.com/2x3systems/goaeon/goaeon"
)

// Context owns the BDD manager shared by every set of one AsyncGraph.
//
// BDD levels [0, numStates) encode network variables and [numStates, numStates+numParams) encode parameter bits.
// rudd is not safe for concurrent use, so every operation runs under mu.
type Context struct {
	mu        sync.Mutex
	bdd       *rudd.BDD
	numStates int
	numParams int
	stateSet  rudd.Node   // varset of all state levels (for projection onto colors)
	paramSet  rudd.Node   // varset of all parameter levels (for projection onto vertices)
	levelSet  []rudd.Node // single-level varsets, one per state variable
}

// Default BDD manager sizing
const (
	initNodeSize  = 1 << 14
	initCacheSize = 1 << 12
)

func newContext(numStates, numParams int) (*Context, error) {
	if numStates <= 0 {
		return nil, errors.Wrap(goaeon.ErrBadModel, "network has no variables")
	}

	bdd, err := rudd.New(numStates+numParams, rudd.Nodesize(initNodeSize), rudd.Cachesize(initCacheSize))
	if err != nil {
		return nil, errors.Wrap(err, "creating BDD manager")
	}

	ctx := &Context{
		bdd:       bdd,
		numStates: numStates,
		numParams: numParams,
		levelSet:  make([]rudd.Node, numStates),
	}

	states := make([]int, numStates)
	for i := range states {
		states[i] = i
		ctx.levelSet[i] = bdd.Makeset([]int{i})
	}
	ctx.stateSet = bdd.Makeset(states)

	if numParams > 0 {
		params := make([]int, numParams)
		for i := range params {
			params[i] = numStates + i
		}
		ctx.paramSet = bdd.Makeset(params)
	}

	return ctx, nil
}

func (ctx *Context) apply(fn func(b *rudd.BDD) rudd.Node) rudd.Node {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	return fn(ctx.bdd)
}

func (ctx *Context) test(fn func(b *rudd.BDD) bool) bool {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	return fn(ctx.bdd)
}

func (ctx *Context) isEmpty(n rudd.Node) bool {
	return ctx.test(func(b *rudd.BDD) bool {
		return b.Equal(n, b.False())
	})
}

func (ctx *Context) equal(n, m rudd.Node) bool {
	return ctx.test(func(b *rudd.BDD) bool {
		return b.Equal(n, m)
	})
}

// isSubset tests n ⊆ m, i.e. n ∧ ¬m is false.
func (ctx *Context) isSubset(n, m rudd.Node) bool {
	return ctx.test(func(b *rudd.BDD) bool {
		return b.Equal(b.And(n, b.Not(m)), b.False())
	})
}

// existStates projects n onto parameter levels.
func (ctx *Context) existStates(b *rudd.BDD, n rudd.Node) rudd.Node {
	return b.Exist(n, ctx.stateSet)
}

// existParams projects n onto state levels.
func (ctx *Context) existParams(b *rudd.BDD, n rudd.Node) rudd.Node {
	if ctx.numParams == 0 {
		return n
	}
	return b.Exist(n, ctx.paramSet)
}

// flip maps every valuation in n to the valuation with level v negated.
func (ctx *Context) flip(b *rudd.BDD, n rudd.Node, v int) rudd.Node {
	level := ctx.levelSet[v]
	wasTrue := b.And(b.Exist(b.And(n, b.Ithvar(v)), level), b.NIthvar(v))
	wasFalse := b.And(b.Exist(b.And(n, b.NIthvar(v)), level), b.Ithvar(v))
	return b.Or(wasTrue, wasFalse)
}

// satcount returns the number of satisfying valuations of n over the given number of levels,
// assuming n does not depend on the remaining (free) levels.
func (ctx *Context) satcount(n rudd.Node, freeLevels int) *big.Int {
	ctx.mu.Lock()
	count := new(big.Int).Set(ctx.bdd.Satcount(n))
	ctx.mu.Unlock()
	return count.Rsh(count, uint(freeLevels))
}

func (ctx *Context) nodeCount(n rudd.Node) int {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	count := 0
	err := ctx.bdd.Allnodes(func(id, level, low, high int) error {
		count++
		return nil
	}, n)
	if err != nil {
		return 0
	}
	return count
}

// pickPerColor keeps exactly one vertex (the lexicographically smallest) for every color in n.
func (ctx *Context) pickPerColor(n rudd.Node) rudd.Node {
	return ctx.apply(func(b *rudd.BDD) rudd.Node {
		result := n
		for v := 0; v < ctx.numStates; v++ {
			low := b.And(result, b.NIthvar(v))
			lowColors := ctx.existStates(b, low)
			high := b.And(result, b.Ithvar(v), b.Not(lowColors))
			result = b.Or(low, high)
		}
		return result
	})
}

// readValuation returns the state of the first (smallest) vertex in n.
func (ctx *Context) readValuation(n rudd.Node) []bool {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	b := ctx.bdd
	state := make([]bool, ctx.numStates)
	cur := n
	for v := 0; v < ctx.numStates; v++ {
		low := b.And(cur, b.NIthvar(v))
		if b.Equal(low, b.False()) {
			state[v] = true
			cur = b.And(cur, b.Ithvar(v))
		} else {
			cur = low
		}
	}
	return state
}

func toFloat(count *big.Int) float64 {
	f, _ := new(big.Float).SetInt(count).Float64()
	return f
}
