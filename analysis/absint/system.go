package absint

import (
	"strings"

	"github.com/cs-au-dk/absint/utils/graph"
)

// System is a set of equations, indexed in both directions: every variable
// has at most one defining equation, and every variable knows the equations
// that read it.
type System[S any] struct {
	equations  []*Equation[S]
	defs       map[*Var[S]]*Equation[S]
	dependents map[*Var[S]][]*Equation[S]
	// All variables mentioned by equations, in order of first appearance.
	vars  []*Var[S]
	known map[*Var[S]]struct{}
}

func NewSystem[S any]() *System[S] {
	return &System[S]{
		defs:       make(map[*Var[S]]*Equation[S]),
		dependents: make(map[*Var[S]][]*Equation[S]),
		known:      make(map[*Var[S]]struct{}),
	}
}

// AddEquation adds eq to the system. Panics with ErrRedefinition if the
// left-hand side variable is already defined.
func (sys *System[S]) AddEquation(eq *Equation[S]) {
	if def, found := sys.defs[eq.lhs]; found {
		panic(Fault(ErrRedefinition, "%s is defined by both %q and %q", eq.lhs, def, eq))
	}

	eq.index = len(sys.equations)
	sys.equations = append(sys.equations, eq)
	sys.defs[eq.lhs] = eq
	sys.addVar(eq.lhs)

	for _, arg := range eq.args {
		sys.addVar(arg)

		deps := sys.dependents[arg]
		if len(deps) == 0 || deps[len(deps)-1] != eq {
			sys.dependents[arg] = append(deps, eq)
		}
	}
}

// Add creates and adds the equation lhs = op(args...).
func (sys *System[S]) Add(desc string, lhs *Var[S], op Operation[S], args ...*Var[S]) *Equation[S] {
	eq := NewEquation(lhs, op, args...)
	eq.SourceDescription = desc
	sys.AddEquation(eq)
	return eq
}

func (sys *System[S]) addVar(v *Var[S]) {
	if _, found := sys.known[v]; !found {
		sys.known[v] = struct{}{}
		sys.vars = append(sys.vars, v)
	}
}

// Len returns the number of equations.
func (sys *System[S]) Len() int { return len(sys.equations) }

// Equations returns the equations in the order they were added.
func (sys *System[S]) Equations() []*Equation[S] {
	return append([]*Equation[S](nil), sys.equations...)
}

// DefiningEquation returns the equation with v as left-hand side.
func (sys *System[S]) DefiningEquation(v *Var[S]) (*Equation[S], bool) {
	eq, found := sys.defs[v]
	return eq, found
}

// DependentEquations returns the equations reading v.
func (sys *System[S]) DependentEquations(v *Var[S]) []*Equation[S] {
	return sys.dependents[v]
}

// Heads returns the equations without arguments.
func (sys *System[S]) Heads() (heads []*Equation[S]) {
	for _, eq := range sys.equations {
		if len(eq.args) == 0 {
			heads = append(heads, eq)
		}
	}
	return
}

// AllVars returns every variable mentioned in the system, in order of first
// appearance.
func (sys *System[S]) AllVars() []*Var[S] {
	return append([]*Var[S](nil), sys.vars...)
}

// Undefined returns the variables that are read but never defined.
func (sys *System[S]) Undefined() (res []*Var[S]) {
	for _, v := range sys.vars {
		if _, found := sys.defs[v]; !found {
			res = append(res, v)
		}
	}
	return
}

// IsWellFormed checks that every variable used as an argument is defined by
// some equation.
func (sys *System[S]) IsWellFormed() bool {
	return len(sys.Undefined()) == 0
}

// InitializeValues assigns s to every variable.
func (sys *System[S]) InitializeValues(s S) {
	for _, v := range sys.vars {
		v.assign(s)
	}
}

// AllInitialized checks whether every variable holds a value.
func (sys *System[S]) AllInitialized() bool {
	for _, v := range sys.vars {
		if !v.initialized {
			return false
		}
	}
	return true
}

// Solution returns the current values of all variables.
func (sys *System[S]) Solution() *Solution[S] {
	sol := &Solution[S]{values: make(map[*Var[S]]S, len(sys.vars))}
	for _, v := range sys.vars {
		if v.initialized {
			sol.vars = append(sol.vars, v)
			sol.values[v] = v.value
		}
	}
	return sol
}

// Graph returns the dependency graph of the system: there is an edge from
// each variable to the variables defined from it.
func (sys *System[S]) Graph() graph.Graph[*Var[S]] {
	return graph.OfHashable(func(v *Var[S]) (succs []*Var[S]) {
		for _, eq := range sys.dependents[v] {
			succs = append(succs, eq.lhs)
		}
		return
	})
}

// Unreachable returns the variables whose value cannot be influenced by
// any of the given variables.
func (sys *System[S]) Unreachable(from ...*Var[S]) (res []*Var[S]) {
	reached := map[*Var[S]]bool{}
	for _, v := range sys.Graph().Reachable(from...) {
		reached[v] = true
	}

	for _, v := range sys.vars {
		if !reached[v] {
			res = append(res, v)
		}
	}
	return
}

func (sys *System[S]) String() string {
	lines := make([]string, 0, len(sys.equations))
	for _, eq := range sys.equations {
		lines = append(lines, eq.String())
	}
	return strings.Join(lines, "\n")
}
