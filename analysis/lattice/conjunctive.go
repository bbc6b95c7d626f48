package lattice

// Conjunctive provides the lattice operations of domains whose states are
// conjunctions of factoids. Concrete domains embed it and add transformers.
// The zero value is ready for use. Domains that saturate states or detect
// inconsistent ones do so in a Reduce method, which absint.Lattice applies
// to the result of Meet.
type Conjunctive[V comparable, F Factoid[V, F]] struct {
	// Implication overrides the test deciding whether a state implies a
	// factoid.
	Implication func(ConjunctiveState[V, F], F) bool
}

func (d *Conjunctive[V, F]) Bot() ConjunctiveState[V, F] {
	return ConjunctiveState[V, F]{}
}

func (d *Conjunctive[V, F]) Top() ConjunctiveState[V, F] {
	return Conjunction[V, F]()
}

// Implies checks whether s implies f. By default that is the case if some
// factoid of s is below f.
func (d *Conjunctive[V, F]) Implies(s ConjunctiveState[V, F], f F) bool {
	if d.Implication != nil {
		return d.Implication(s, f)
	}

	if s.IsBot() || s.Contains(f) {
		return true
	}
	return s.Exists(func(g F) bool { return g.Leq(f) })
}

// Join keeps the factoids of either state that are implied by the other.
func (d *Conjunctive[V, F]) Join(x, y ConjunctiveState[V, F]) ConjunctiveState[V, F] {
	switch {
	case x.IsBot():
		return y
	case y.IsBot():
		return x
	}

	res := d.Top()
	x.ForEach(func(f F) {
		if d.Implies(y, f) {
			res = res.Add(f)
		}
	})
	y.ForEach(func(f F) {
		if d.Implies(x, f) {
			res = res.Add(f)
		}
	})
	return res
}

// Meet conjoins the factoids of both states, without reducing them.
func (d *Conjunctive[V, F]) Meet(x, y ConjunctiveState[V, F]) ConjunctiveState[V, F] {
	switch {
	case x.IsBot() || y.IsTop():
		return x
	case y.IsBot() || x.IsTop():
		return y
	}

	res := x
	y.ForEach(func(f F) { res = res.Add(f) })
	return res
}

// Leq holds if joining x into y loses none of the factoids of y.
func (d *Conjunctive[V, F]) Leq(x, y ConjunctiveState[V, F]) bool {
	switch {
	case x.IsBot():
		return true
	case y.IsBot():
		return false
	case y.IsTop():
		return true
	}

	ub := d.Join(x, y)
	return !y.Exists(func(f F) bool { return !ub.Contains(f) })
}
