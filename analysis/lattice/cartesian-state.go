package lattice

import (
	"fmt"
	"strings"

	"github.com/benbjohnson/immutable"
)

// ProductState is a persistent tuple holding one state per component of a
// Cartesian product.
type ProductState struct {
	elems *immutable.List[any]
	// Printed instead of the tuple for the bottom and top of a product.
	label string
}

// NewProductState creates a tuple of the given component states.
func NewProductState(elems ...any) ProductState {
	lst := immutable.NewListBuilder[any]()
	for _, e := range elems {
		lst.Append(e)
	}
	return ProductState{elems: lst.List()}
}

func (p ProductState) Len() int { return p.elems.Len() }

// Get returns the state of component i.
func (p ProductState) Get(i int) any { return p.elems.Get(i) }

// With returns the tuple where component i holds s.
func (p ProductState) With(i int, s any) ProductState {
	return ProductState{elems: p.elems.Set(i, s)}
}

// ForEach calls do for every component in order.
func (p ProductState) ForEach(do func(i int, s any)) {
	for i := 0; i < p.elems.Len(); i++ {
		do(i, p.elems.Get(i))
	}
}

func (p ProductState) String() string {
	if p.label != "" {
		return p.label
	}

	strs := make([]string, 0, p.Len())
	p.ForEach(func(_ int, s any) {
		strs = append(strs, fmt.Sprint(s))
	})
	return "and(" + strings.Join(strs, ", ") + ")"
}

// Get returns the state of component i of p as an S.
func Get[S any](p ProductState, i int) S {
	return p.Get(i).(S)
}
