package testutil

import (
	uf "github.com/spakin/disjoint"

	"github.com/cs-au-dk/absint/analysis/absint"
	L "github.com/cs-au-dk/absint/analysis/lattice"
	"github.com/cs-au-dk/absint/utils"
)

// EqFactoid states that two distinct variables hold the same value.
// Create them with Eq, which normalizes the order of the variables.
type EqFactoid struct {
	Left, Right string
}

// Eq relates x and y.
func Eq(x, y string) EqFactoid {
	if y < x {
		x, y = y, x
	}
	return EqFactoid{x, y}
}

func (f EqFactoid) Hash() uint32 {
	return utils.HashCombine(utils.HashOf(f.Left), utils.HashOf(f.Right))
}

func (f EqFactoid) Equal(o EqFactoid) bool { return f == o }
func (f EqFactoid) Leq(o EqFactoid) bool   { return f == o }
func (f EqFactoid) HasVar(v string) bool   { return f.Left == v || f.Right == v }
func (f EqFactoid) Vars() []string         { return []string{f.Left, f.Right} }
func (f EqFactoid) String() string         { return f.Left + "=" + f.Right }

type VarEqState = L.ConjunctiveState[string, EqFactoid]

// VarEq tracks equalities between variables. States are kept transitively
// closed.
type VarEq struct {
	L.Conjunctive[string, EqFactoid]
}

func NewVarEq() *VarEq { return &VarEq{} }

func VarEqLattice() *absint.Lattice[VarEqState, Action] {
	return absint.MakeLattice[VarEqState, Action](NewVarEq())
}

func (d *VarEq) String() string { return "VarEq" }

// State creates the closure of the given equalities.
func (d *VarEq) State(fs ...EqFactoid) VarEqState {
	return d.Reduce(L.Conjunction[string](fs...))
}

// Reduce adds the equalities implied by transitivity.
func (d *VarEq) Reduce(s VarEqState) VarEqState {
	if s.IsBot() {
		return s
	}

	elems := map[string]*uf.Element{}
	elem := func(v string) *uf.Element {
		if e, found := elems[v]; found {
			return e
		}
		e := uf.NewElement()
		e.Data = v
		elems[v] = e
		return e
	}

	s.ForEach(func(f EqFactoid) {
		uf.Union(elem(f.Left), elem(f.Right))
	})

	classes := map[*uf.Element][]string{}
	for _, v := range s.Vars() {
		rep := elems[v].Find()
		classes[rep] = append(classes[rep], v)
	}

	res := s
	for _, vs := range classes {
		for i, x := range vs {
			for _, y := range vs[i+1:] {
				res = res.Add(Eq(x, y))
			}
		}
	}
	return res
}

func (d *VarEq) kill(name, v string) absint.UnaryOperation[VarEqState] {
	return absint.Unary(name, func(s VarEqState) VarEqState {
		return s.RemoveVar(v)
	})
}

func (d *VarEq) Transformer(action Action) absint.UnaryOperation[VarEqState] {
	switch a := action.(type) {
	case Const:
		return d.kill(a.String(), a.Var)
	case Incr:
		return d.kill(a.String(), a.Var)
	case Havoc:
		return d.kill(a.String(), a.Var)
	case Copy:
		if a.Dst == a.Src {
			break
		}
		return absint.Unary(a.String(), func(s VarEqState) VarEqState {
			return d.Reduce(s.RemoveVar(a.Dst).Add(Eq(a.Dst, a.Src)))
		})
	case Assume:
		if c, ok := a.Cond.(EqVar); ok && a.Polarity && c.Left != c.Right {
			return absint.Assume(true, c.String(), func(s VarEqState) VarEqState {
				return d.Reduce(s.Add(Eq(c.Left, c.Right)))
			})
		}
	}

	return absint.Id[VarEqState]()
}

func (d *VarEq) InferEqualities(s VarEqState) (eqs []L.Equality[string]) {
	for _, f := range s.Factoids() {
		eqs = append(eqs, L.Equality[string]{Left: f.Left, Right: f.Right})
	}
	return
}

func (d *VarEq) RefineByEqualities(s VarEqState, eqs []L.Equality[string]) (VarEqState, bool) {
	if s.IsBot() {
		return s, false
	}

	res := s
	for _, eq := range eqs {
		if eq.Left != eq.Right {
			res = res.Add(Eq(eq.Left, eq.Right))
		}
	}
	res = d.Reduce(res)
	return res, res.Len() != s.Len()
}
