package classify

import (
	"fmt"
	"sort"
	"strings"
)

// Class is a sorted multiset of behaviours: the attractor behaviours exhibited by one color.
type Class []Behaviour

// CloneExtended returns a copy of c with b added.
func (c Class) CloneExtended(b Behaviour) Class {
	out := make(Class, len(c), len(c)+1)
	copy(out, c)
	out = append(out, b)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Compare orders classes by size, then lexicographically; the empty class is the minimum.
func (c Class) Compare(other Class) int {
	if d := len(c) - len(other); d != 0 {
		return d
	}
	for i, b := range c {
		if d := int(b) - int(other[i]); d != 0 {
			return d
		}
	}
	return 0
}

// ClassComparator is a gods utils.Comparator over Class keys.
func ClassComparator(a, b interface{}) int {
	return a.(Class).Compare(b.(Class))
}

// String renders c as e.g. "1 x Stability, 2 x Oscillation".
func (c Class) String() string {
	var counts [len(behaviourNames)]int
	for _, b := range c {
		counts[b]++
	}

	parts := make([]string, 0, len(counts))
	for b, n := range counts {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d x %v", n, Behaviour(b)))
		}
	}
	return strings.Join(parts, ", ")
}

var behaviourCodes = [...]string{
	Stability:   "S",
	Oscillation: "O",
	Disorder:    "D",
}

// Code renders c in its compact form, e.g. "SOO".
func (c Class) Code() string {
	var b strings.Builder
	for _, bi := range c {
		b.WriteString(behaviourCodes[bi])
	}
	return b.String()
}

// ParseClass reads a Class from its compact form (see Code).
func ParseClass(code string) (Class, error) {
	c := make(Class, 0, len(code))
	for _, r := range code {
		b, err := ParseBehaviour(string(r))
		if err != nil {
			return nil, err
		}
		c = c.CloneExtended(b)
	}
	return c, nil
}
