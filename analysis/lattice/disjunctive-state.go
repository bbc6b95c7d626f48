package lattice

import (
	"fmt"
	"strings"

	"github.com/benbjohnson/immutable"
	"golang.org/x/exp/slices"
)

// DisjunctiveState is a persistent finite set of base-domain states denoting
// their union. The empty set is bottom, and so is the zero value.
type DisjunctiveState[S any] struct {
	disjuncts *immutable.Map[S, struct{}]
}

// Size returns the number of disjuncts.
func (s DisjunctiveState[S]) Size() int {
	if s.disjuncts == nil {
		return 0
	}
	return s.disjuncts.Len()
}

// IsBot checks whether the state has no disjuncts.
func (s DisjunctiveState[S]) IsBot() bool { return s.Size() == 0 }

func (s DisjunctiveState[S]) Contains(x S) bool {
	if s.disjuncts == nil {
		return false
	}
	_, found := s.disjuncts.Get(x)
	return found
}

func (s DisjunctiveState[S]) add(x S) DisjunctiveState[S] {
	return DisjunctiveState[S]{s.disjuncts.Set(x, struct{}{})}
}

// ForEach calls do for every disjunct.
func (s DisjunctiveState[S]) ForEach(do func(S)) {
	if s.disjuncts == nil {
		return
	}
	iter := s.disjuncts.Iterator()
	for !iter.Done() {
		x, _, _ := iter.Next()
		do(x)
	}
}

// Disjuncts returns the disjuncts in iteration order.
func (s DisjunctiveState[S]) Disjuncts() []S {
	xs := make([]S, 0, s.Size())
	s.ForEach(func(x S) { xs = append(xs, x) })
	return xs
}

// Single returns the only disjunct of singleton states.
func (s DisjunctiveState[S]) Single() (S, bool) {
	if s.Size() != 1 {
		var zero S
		return zero, false
	}
	return s.Disjuncts()[0], true
}

func (s DisjunctiveState[S]) String() string {
	strs := make([]string, 0, s.Size())
	s.ForEach(func(x S) { strs = append(strs, fmt.Sprint(x)) })

	switch len(strs) {
	case 0:
		return "false"
	case 1:
		return strs[0]
	}

	slices.Sort(strs)
	return "or(" + strings.Join(strs, ", ") + ")"
}
