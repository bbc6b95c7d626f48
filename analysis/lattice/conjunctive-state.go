package lattice

import (
	"fmt"
	"strings"

	"github.com/benbjohnson/immutable"
	"golang.org/x/exp/slices"

	"github.com/cs-au-dk/absint/utils"
)

// Factoid is an atomic fact over variables of type V, e.g. x = 5.
type Factoid[V comparable, F any] interface {
	utils.HashableEq[F]
	fmt.Stringer
	// HasVar checks whether the factoid constrains v.
	HasVar(v V) bool
	// Vars returns the variables constrained by the factoid.
	Vars() []V
	// Leq approximates implication between factoids: if f.Leq(g) then f
	// implies g. Equality is always a valid implementation.
	Leq(F) bool
}

// ConjunctiveState is a persistent set of factoids denoting their
// conjunction. The zero value is the bottom state (false); the empty set
// of factoids is top (true).
type ConjunctiveState[V comparable, F Factoid[V, F]] struct {
	facts *immutable.Map[F, struct{}]
}

// Conjunction creates the state holding exactly the given factoids.
func Conjunction[V comparable, F Factoid[V, F]](fs ...F) ConjunctiveState[V, F] {
	s := ConjunctiveState[V, F]{immutable.NewMap[F, struct{}](utils.HashableHasher[F]())}
	return s.Add(fs...)
}

// IsBot checks whether the state is false.
func (s ConjunctiveState[V, F]) IsBot() bool { return s.facts == nil }

// IsTop checks whether the state contains no factoids.
func (s ConjunctiveState[V, F]) IsTop() bool { return s.facts != nil && s.facts.Len() == 0 }

// Len returns the number of factoids, which is 0 for bottom.
func (s ConjunctiveState[V, F]) Len() int {
	if s.facts == nil {
		return 0
	}
	return s.facts.Len()
}

func (s ConjunctiveState[V, F]) Contains(f F) bool {
	if s.facts == nil {
		return false
	}
	_, found := s.facts.Get(f)
	return found
}

// Add returns the state extended with the given factoids. Adding to
// bottom yields bottom.
func (s ConjunctiveState[V, F]) Add(fs ...F) ConjunctiveState[V, F] {
	if s.facts == nil {
		return s
	}

	facts := s.facts
	for _, f := range fs {
		facts = facts.Set(f, struct{}{})
	}
	return ConjunctiveState[V, F]{facts}
}

// Remove returns the state without the given factoid.
func (s ConjunctiveState[V, F]) Remove(f F) ConjunctiveState[V, F] {
	if s.facts == nil {
		return s
	}
	return ConjunctiveState[V, F]{s.facts.Delete(f)}
}

// RemoveVar returns the state without the factoids constraining v.
func (s ConjunctiveState[V, F]) RemoveVar(v V) ConjunctiveState[V, F] {
	res := s
	s.ForEach(func(f F) {
		if f.HasVar(v) {
			res = res.Remove(f)
		}
	})
	return res
}

// ForEach calls do for every factoid.
func (s ConjunctiveState[V, F]) ForEach(do func(F)) {
	if s.facts == nil {
		return
	}

	iter := s.facts.Iterator()
	for !iter.Done() {
		f, _, _ := iter.Next()
		do(f)
	}
}

// Exists checks whether some factoid satisfies pred.
func (s ConjunctiveState[V, F]) Exists(pred func(F) bool) bool {
	if s.facts == nil {
		return false
	}

	iter := s.facts.Iterator()
	for !iter.Done() {
		if f, _, _ := iter.Next(); pred(f) {
			return true
		}
	}
	return false
}

// Factoids returns the factoids sorted by their string representation.
func (s ConjunctiveState[V, F]) Factoids() []F {
	fs := make([]F, 0, s.Len())
	s.ForEach(func(f F) { fs = append(fs, f) })
	slices.SortFunc(fs, func(a, b F) bool { return a.String() < b.String() })
	return fs
}

// Vars returns the variables constrained by some factoid.
func (s ConjunctiveState[V, F]) Vars() (vs []V) {
	seen := map[V]struct{}{}
	for _, f := range s.Factoids() {
		for _, v := range f.Vars() {
			if _, found := seen[v]; !found {
				seen[v] = struct{}{}
				vs = append(vs, v)
			}
		}
	}
	return
}

// Hash does not depend on the order of factoids.
func (s ConjunctiveState[V, F]) Hash() uint32 {
	if s.facts == nil {
		return 0xdeadbeef
	}

	var h uint32
	s.ForEach(func(f F) { h += f.Hash() })
	return utils.HashCombine(uint32(s.facts.Len()), h)
}

// Equal checks whether both states contain the same factoids.
func (s ConjunctiveState[V, F]) Equal(o ConjunctiveState[V, F]) bool {
	switch {
	case s.facts == nil || o.facts == nil:
		return s.facts == nil && o.facts == nil
	case s.facts == o.facts:
		return true
	case s.facts.Len() != o.facts.Len():
		return false
	}

	return !s.Exists(func(f F) bool { return !o.Contains(f) })
}

func (s ConjunctiveState[V, F]) String() string {
	switch {
	case s.facts == nil:
		return "false"
	case s.facts.Len() == 0:
		return "true"
	case s.facts.Len() == 1:
		return s.Factoids()[0].String()
	}

	strs := []string{}
	for _, f := range s.Factoids() {
		strs = append(strs, f.String())
	}
	return "and(" + strings.Join(strs, ", ") + ")"
}
