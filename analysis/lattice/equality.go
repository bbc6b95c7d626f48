package lattice

import "fmt"

// Equality states that two variables hold the same value.
type Equality[V any] struct {
	Left, Right V
}

func (e Equality[V]) String() string {
	return fmt.Sprintf("%v=%v", e.Left, e.Right)
}

// EqualityRefiner is implemented by domains that exchange variable
// equalities with the other components of a Cartesian product.
type EqualityRefiner[S, V any] interface {
	// InferEqualities returns equalities entailed by s.
	InferEqualities(s S) []Equality[V]
	// RefineByEqualities strengthens s with equalities learned elsewhere.
	// The boolean result is false if nothing could be learned.
	RefineByEqualities(s S, eqs []Equality[V]) (S, bool)
}
