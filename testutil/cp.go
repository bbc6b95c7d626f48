package testutil

import (
	"fmt"

	"github.com/cs-au-dk/absint/analysis/absint"
	L "github.com/cs-au-dk/absint/analysis/lattice"
	"github.com/cs-au-dk/absint/utils"
)

// CPFactoid states that a variable holds a constant.
type CPFactoid struct {
	Var   string
	Value int
}

func (f CPFactoid) Hash() uint32 {
	return utils.HashCombine(utils.HashOf(f.Var), utils.HashOf(f.Value))
}

func (f CPFactoid) Equal(o CPFactoid) bool { return f == o }
func (f CPFactoid) Leq(o CPFactoid) bool   { return f == o }
func (f CPFactoid) HasVar(v string) bool   { return f.Var == v }
func (f CPFactoid) Vars() []string         { return []string{f.Var} }
func (f CPFactoid) String() string         { return fmt.Sprintf("%s=%d", f.Var, f.Value) }

type CPState = L.ConjunctiveState[string, CPFactoid]

// CP is a constant propagation domain over the toy language.
type CP struct {
	L.Conjunctive[string, CPFactoid]
}

// NewCP creates the constant propagation domain.
func NewCP() *CP { return &CP{} }

// CPLattice creates the lattice of the constant propagation domain.
func CPLattice() *absint.Lattice[CPState, Action] {
	return absint.MakeLattice[CPState, Action](NewCP())
}

func (d *CP) String() string { return "CP" }

// State creates the state with the given constants.
func (d *CP) State(fs ...CPFactoid) CPState {
	return d.Reduce(L.Conjunction[string](fs...))
}

// Lookup returns the constant held by v in s.
func Lookup(s CPState, v string) (int, bool) {
	var (
		c     int
		found bool
	)
	s.ForEach(func(f CPFactoid) {
		if f.Var == v {
			c, found = f.Value, true
		}
	})
	return c, found
}

// Reduce returns bottom if a variable is bound to two different constants.
func (d *CP) Reduce(s CPState) CPState {
	seen := map[string]int{}
	if s.Exists(func(f CPFactoid) bool {
		if c, found := seen[f.Var]; found && c != f.Value {
			return true
		}
		seen[f.Var] = f.Value
		return false
	}) {
		return d.Bot()
	}
	return s
}

func (d *CP) assign(name, v string, value func(CPState) (int, bool)) absint.UnaryOperation[CPState] {
	return absint.Unary(name, func(s CPState) CPState {
		if s.IsBot() {
			return s
		}

		c, known := value(s)
		s = s.RemoveVar(v)
		if known {
			s = s.Add(CPFactoid{v, c})
		}
		return s
	})
}

func (d *CP) Transformer(action Action) absint.UnaryOperation[CPState] {
	switch a := action.(type) {
	case Const:
		return d.assign(a.String(), a.Var, func(CPState) (int, bool) { return a.Value, true })
	case Copy:
		if a.Dst == a.Src {
			break
		}
		return d.assign(a.String(), a.Dst, func(s CPState) (int, bool) { return Lookup(s, a.Src) })
	case Incr:
		return d.assign(a.String(), a.Var, func(s CPState) (int, bool) {
			c, ok := Lookup(s, a.Var)
			return c + 1, ok
		})
	case Havoc:
		return d.assign(a.String(), a.Var, func(CPState) (int, bool) { return 0, false })
	case Assume:
		return absint.Assume(a.Polarity, a.Cond.String(), func(s CPState) CPState {
			if s.IsBot() {
				return s
			}
			return d.assume(s, a.Cond, a.Polarity)
		})
	}

	return absint.Id[CPState]()
}

func (d *CP) assume(s CPState, cond Cond, polarity bool) CPState {
	switch c := cond.(type) {
	case Less:
		if x, ok := Lookup(s, c.Var); ok && (x < c.Bound) != polarity {
			return d.Bot()
		}
	case EqConst:
		x, ok := Lookup(s, c.Var)
		switch {
		case ok && (x == c.Value) != polarity:
			return d.Bot()
		case !ok && polarity:
			return s.Add(CPFactoid{c.Var, c.Value})
		}
	case EqVar:
		x, okx := Lookup(s, c.Left)
		y, oky := Lookup(s, c.Right)
		switch {
		case okx && oky && (x == y) != polarity:
			return d.Bot()
		case !polarity:
		case okx && !oky:
			return s.Add(CPFactoid{c.Right, x})
		case oky && !okx:
			return s.Add(CPFactoid{c.Left, y})
		}
	}
	return s
}

// InferEqualities relates the variables holding the same constant.
func (d *CP) InferEqualities(s CPState) (eqs []L.Equality[string]) {
	fs := s.Factoids()
	for i, f := range fs {
		for _, g := range fs[i+1:] {
			if f.Value == g.Value {
				eqs = append(eqs, L.Equality[string]{Left: f.Var, Right: g.Var})
			}
		}
	}
	return
}

// RefineByEqualities propagates constants across equalities.
func (d *CP) RefineByEqualities(s CPState, eqs []L.Equality[string]) (CPState, bool) {
	if s.IsBot() {
		return s, false
	}

	res := s
	for _, eq := range eqs {
		c1, ok1 := Lookup(res, eq.Left)
		c2, ok2 := Lookup(res, eq.Right)
		switch {
		case ok1 && ok2 && c1 != c2:
			return d.Bot(), true
		case ok1 && !ok2:
			res = res.Add(CPFactoid{eq.Right, c1})
		case ok2 && !ok1:
			res = res.Add(CPFactoid{eq.Left, c2})
		}
	}

	return res, res.Len() != s.Len()
}
