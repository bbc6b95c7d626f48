package lattice

import (
	"strings"

	"github.com/cs-au-dk/absint/analysis/absint"
)

// Cartesian is the product of several domains over the same actions.
// Operations are applied component-wise, and transformers are followed by a
// reduction in which components exchange the variable equalities they know.
type Cartesian[V, A any] struct {
	components []Component[V, A]
	bot, top   ProductState
	reduceOp   absint.UnaryOperation[ProductState]
}

// MakeCartesian combines the given components, which are created with Sub.
func MakeCartesian[V, A any](components ...Component[V, A]) *Cartesian[V, A] {
	if len(components) == 0 {
		panic(absint.Fault(absint.ErrArity, "product without components"))
	}

	d := &Cartesian[V, A]{components: components}

	bots := make([]any, len(components))
	tops := make([]any, len(components))
	for i, c := range components {
		bots[i], tops[i] = c.Bot(), c.Top()
	}
	d.bot = NewProductState(bots...)
	d.bot.label = "false"
	d.top = NewProductState(tops...)
	d.top.label = "true"

	d.reduceOp = absint.Unary("Reduce_"+d.String(), d.ReduceViaEqualities)
	return d
}

func (d *Cartesian[V, A]) String() string {
	names := make([]string, len(d.components))
	for i, c := range d.components {
		names[i] = c.String()
	}
	return strings.Join(names, "×")
}

// Components returns the number of components.
func (d *Cartesian[V, A]) Components() int { return len(d.components) }

// Component returns the i'th component.
func (d *Cartesian[V, A]) Component(i int) Component[V, A] { return d.components[i] }

// State creates a product state from one state per component.
func (d *Cartesian[V, A]) State(elems ...any) ProductState {
	if len(elems) != len(d.components) {
		panic(absint.Fault(absint.ErrArity, "%s has %d components, got %d states", d, len(d.components), len(elems)))
	}
	return NewProductState(elems...)
}

func (d *Cartesian[V, A]) Bot() ProductState { return d.bot }
func (d *Cartesian[V, A]) Top() ProductState { return d.top }

func (d *Cartesian[V, A]) pointwise(x, y ProductState, op func(c Component[V, A], x, y any) any) ProductState {
	res := x
	for i, c := range d.components {
		res = res.With(i, op(c, x.Get(i), y.Get(i)))
	}
	return res
}

func (d *Cartesian[V, A]) Join(x, y ProductState) ProductState {
	return d.pointwise(x, y, Component[V, A].Join)
}

func (d *Cartesian[V, A]) Meet(x, y ProductState) ProductState {
	return d.pointwise(x, y, Component[V, A].Meet)
}

func (d *Cartesian[V, A]) Widen(x, y ProductState) ProductState {
	return d.pointwise(x, y, Component[V, A].Widen)
}

func (d *Cartesian[V, A]) Narrow(x, y ProductState) ProductState {
	return d.pointwise(x, y, Component[V, A].Narrow)
}

func (d *Cartesian[V, A]) Leq(x, y ProductState) bool {
	for i, c := range d.components {
		if !c.Leq(x.Get(i), y.Get(i)) {
			return false
		}
	}
	return true
}

// Reduce performs the reduction by equalities.
func (d *Cartesian[V, A]) Reduce(x ProductState) ProductState {
	return d.ReduceViaEqualities(x)
}

// Transformer applies the transformers of all components, followed by the
// reduction by equalities. If every component ignores the action, so does
// the product.
func (d *Cartesian[V, A]) Transformer(action A) absint.UnaryOperation[ProductState] {
	fs := make([]func(any) any, len(d.components))
	names := make([]string, len(d.components))
	changes := false
	for i, c := range d.components {
		var isChange bool
		fs[i], names[i], isChange = c.Transformer(action)
		changes = changes || isChange
	}

	if !changes {
		return absint.Id[ProductState]()
	}

	t := absint.Unary("["+strings.Join(names, ", ")+"]", func(p ProductState) ProductState {
		res := p
		for i, f := range fs {
			if f != nil {
				res = res.With(i, f(p.Get(i)))
			}
		}
		return res
	})
	return absint.Compose(t, d.reduceOp)
}

// ReduceViaEqualities lets every component that exchanges equalities learn
// from the equalities inferred by the other components, until no component
// changes. If some component becomes bottom, the product is bottom.
func (d *Cartesian[V, A]) ReduceViaEqualities(p ProductState) ProductState {
	res := p
	for changed := true; changed; {
		changed = false

		eqs := make([][]Equality[V], len(d.components))
		for i, c := range d.components {
			s := res.Get(i)
			if c.IsBot(s) {
				return d.bot
			}
			if r, ok := c.Refiner(); ok {
				eqs[i] = r.InferEqualities(s)
			}
		}

		for i, c := range d.components {
			r, ok := c.Refiner()
			if !ok {
				continue
			}

			s := res.Get(i)
			for j, known := range eqs {
				if j == i || len(known) == 0 {
					continue
				}

				refined, ok := r.RefineByEqualities(s, known)
				if !ok || !c.Lt(refined, s) {
					continue
				}

				refined = c.Reduce(refined)
				if c.IsBot(refined) {
					return d.bot
				}

				changed = true
				s = refined
				res = res.With(i, s)
			}
		}
	}

	return res
}
