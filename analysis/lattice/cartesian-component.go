package lattice

import (
	"github.com/cs-au-dk/absint/analysis/absint"
)

// Component is a sub-domain of a Cartesian product. The state type of the
// sub-domain is hidden behind any, which lets products combine domains over
// different state types. Components are created with Sub.
type Component[V, A any] interface {
	String() string
	Bot() any
	Top() any
	Join(x, y any) any
	Meet(x, y any) any
	Widen(x, y any) any
	Narrow(x, y any) any
	Reduce(x any) any
	Leq(x, y any) bool
	Lt(x, y any) bool
	IsBot(x any) bool
	// Transformer returns the transformer of the sub-domain for action, or
	// false if it is the identity.
	Transformer(action A) (func(any) any, string, bool)
	// Refiner returns the equality exchange of the sub-domain, if any.
	Refiner() (ErasedRefiner[V], bool)
}

// ErasedRefiner is an EqualityRefiner over erased states.
type ErasedRefiner[V any] interface {
	InferEqualities(s any) []Equality[V]
	RefineByEqualities(s any, eqs []Equality[V]) (any, bool)
}

type component[S, V, A any] struct {
	lat     *absint.Lattice[S, A]
	refiner EqualityRefiner[S, V]
}

// Sub registers d as a component of a Cartesian product over variables V.
// Whether d exchanges equalities is decided here, once.
func Sub[V any, S, A any](d absint.Domain[S, A]) Component[V, A] {
	lat := absint.MakeLattice(d)

	c := &component[S, V, A]{lat: lat}
	if r, ok := lat.Domain().(EqualityRefiner[S, V]); ok {
		c.refiner = r
	}
	return c
}

func (c *component[S, V, A]) String() string      { return c.lat.String() }
func (c *component[S, V, A]) Bot() any            { return c.lat.Bot() }
func (c *component[S, V, A]) Top() any            { return c.lat.Top() }
func (c *component[S, V, A]) Join(x, y any) any   { return c.lat.Join(x.(S), y.(S)) }
func (c *component[S, V, A]) Meet(x, y any) any   { return c.lat.Meet(x.(S), y.(S)) }
func (c *component[S, V, A]) Widen(x, y any) any  { return c.lat.Widen(x.(S), y.(S)) }
func (c *component[S, V, A]) Narrow(x, y any) any { return c.lat.Narrow(x.(S), y.(S)) }
func (c *component[S, V, A]) Reduce(x any) any    { return c.lat.Reduce(x.(S)) }
func (c *component[S, V, A]) Leq(x, y any) bool   { return c.lat.Leq(x.(S), y.(S)) }
func (c *component[S, V, A]) Lt(x, y any) bool    { return c.lat.Lt(x.(S), y.(S)) }
func (c *component[S, V, A]) IsBot(x any) bool    { return c.lat.Eq(x.(S), c.lat.Bot()) }

func (c *component[S, V, A]) Transformer(action A) (func(any) any, string, bool) {
	t := c.lat.Transformer(action)
	if absint.IsId[S](t) {
		return nil, t.String(), false
	}
	return func(x any) any { return t.Transform(x.(S)) }, t.String(), true
}

func (c *component[S, V, A]) Refiner() (ErasedRefiner[V], bool) {
	if c.refiner == nil {
		return nil, false
	}
	return c, true
}

func (c *component[S, V, A]) InferEqualities(s any) []Equality[V] {
	return c.refiner.InferEqualities(s.(S))
}

func (c *component[S, V, A]) RefineByEqualities(s any, eqs []Equality[V]) (any, bool) {
	return c.refiner.RefineByEqualities(s.(S), eqs)
}
