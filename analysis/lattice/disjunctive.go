package lattice

import (
	"github.com/benbjohnson/immutable"

	"github.com/cs-au-dk/absint/analysis/absint"
	"github.com/cs-au-dk/absint/config"
)

// Disjunctive is the disjunctive completion of a base domain: its states
// are finite sets of base states, kept free of subsumed disjuncts.
type Disjunctive[S, A any] struct {
	base   *absint.Lattice[S, A]
	hasher immutable.Hasher[S]
	// If set, LoopJoin collapses all disjuncts into one.
	aggressiveLoopJoin bool
}

// MakeDisjunctive creates the disjunctive completion of base. Base states
// are identified by hasher.
func MakeDisjunctive[S, A any](base absint.Domain[S, A], hasher immutable.Hasher[S], aggressiveLoopJoin bool) *Disjunctive[S, A] {
	return &Disjunctive[S, A]{
		base:               absint.MakeLattice(base),
		hasher:             hasher,
		aggressiveLoopJoin: aggressiveLoopJoin,
	}
}

// DisjunctiveFrom creates the disjunctive completion of base with the loop
// join chosen by the aggressive_loop_join analysis option.
func DisjunctiveFrom[S, A any](cfg config.Config, base absint.Domain[S, A], hasher immutable.Hasher[S]) *Disjunctive[S, A] {
	return MakeDisjunctive(base, hasher, cfg.Analysis.AggressiveLoopJoin)
}

func (d *Disjunctive[S, A]) String() string {
	return "P(" + d.base.String() + ")"
}

// Base returns the lattice of disjuncts.
func (d *Disjunctive[S, A]) Base() *absint.Lattice[S, A] { return d.base }

// State creates the set of the given disjuncts.
func (d *Disjunctive[S, A]) State(xs ...S) DisjunctiveState[S] {
	s := DisjunctiveState[S]{immutable.NewMap[S, struct{}](d.hasher)}
	for _, x := range xs {
		s = s.add(x)
	}
	return s
}

func (d *Disjunctive[S, A]) Bot() DisjunctiveState[S] { return d.State() }
func (d *Disjunctive[S, A]) Top() DisjunctiveState[S] { return d.State(d.base.Top()) }

// maximal keeps the candidates that are not below some other candidate. Of
// equivalent candidates only the first is kept.
func (d *Disjunctive[S, A]) maximal(cands []S) DisjunctiveState[S] {
	res := d.State()
	for i, c := range cands {
		subsumed := false
		for j, o := range cands {
			if i != j && d.base.Leq(c, o) && (j < i || !d.base.Leq(o, c)) {
				subsumed = true
				break
			}
		}

		if !subsumed {
			res = res.add(c)
		}
	}
	return res
}

// Join is the union of both states without subsumed disjuncts.
func (d *Disjunctive[S, A]) Join(x, y DisjunctiveState[S]) DisjunctiveState[S] {
	switch {
	case x.IsBot():
		return y
	case y.IsBot():
		return x
	}

	return d.maximal(append(x.Disjuncts(), y.Disjuncts()...))
}

// collapse joins all disjuncts of both states into a single disjunct.
func (d *Disjunctive[S, A]) collapse(x, y DisjunctiveState[S]) DisjunctiveState[S] {
	acc := d.base.Bot()
	join := func(s S) { acc = d.base.Join(acc, s) }
	x.ForEach(join)
	y.ForEach(join)
	return d.single(acc)
}

func (d *Disjunctive[S, A]) single(s S) DisjunctiveState[S] {
	if d.base.Eq(s, d.base.Bot()) {
		return d.Bot()
	}
	return d.State(s)
}

// LoopJoin collapses both states into a single disjunct, unless the domain
// was created without aggressive loop joins.
func (d *Disjunctive[S, A]) LoopJoin(x, y DisjunctiveState[S]) DisjunctiveState[S] {
	if !d.aggressiveLoopJoin {
		return d.Join(x, y)
	}
	return d.collapse(x, y)
}

// Widen widens singleton states in the base domain. Other states are
// collapsed into a single disjunct.
func (d *Disjunctive[S, A]) Widen(x, y DisjunctiveState[S]) DisjunctiveState[S] {
	a, ok1 := x.Single()
	b, ok2 := y.Single()
	if ok1 && ok2 {
		return d.single(d.base.Widen(a, b))
	}
	return d.collapse(x, y)
}

// Narrow narrows singleton states in the base domain, and otherwise keeps
// the first state.
func (d *Disjunctive[S, A]) Narrow(x, y DisjunctiveState[S]) DisjunctiveState[S] {
	a, ok1 := x.Single()
	b, ok2 := y.Single()
	if ok1 && ok2 {
		return d.single(d.base.Narrow(a, b))
	}
	return x
}

// Meet intersects disjuncts pairwise. Requires a base domain with meet.
func (d *Disjunctive[S, A]) Meet(x, y DisjunctiveState[S]) DisjunctiveState[S] {
	cands := []S{}
	bot := d.base.Bot()
	x.ForEach(func(a S) {
		y.ForEach(func(b S) {
			if m := d.base.Meet(a, b); !d.base.Eq(m, bot) {
				cands = append(cands, m)
			}
		})
	})
	return d.maximal(cands)
}

// Leq holds if every disjunct of x is below some disjunct of y.
func (d *Disjunctive[S, A]) Leq(x, y DisjunctiveState[S]) bool {
	for _, a := range x.Disjuncts() {
		below := false
		for _, b := range y.Disjuncts() {
			if d.base.Leq(a, b) {
				below = true
				break
			}
		}

		if !below {
			return false
		}
	}
	return true
}

// Transformer applies the base transformer to every disjunct, dropping the
// disjuncts that become bottom.
func (d *Disjunctive[S, A]) Transformer(action A) absint.UnaryOperation[DisjunctiveState[S]] {
	t := d.base.Transformer(action)
	if absint.IsId[S](t) {
		return absint.Id[DisjunctiveState[S]]()
	}

	bot := d.base.Bot()
	f := func(s DisjunctiveState[S]) DisjunctiveState[S] {
		res := d.State()
		s.ForEach(func(x S) {
			if y := t.Transform(x); !d.base.Eq(y, bot) {
				res = res.add(y)
			}
		})
		return res
	}

	return absint.Unary("P("+t.String()+")", f)
}
