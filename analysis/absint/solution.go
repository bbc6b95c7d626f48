package absint

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Solution maps the variables of a system to their values, in the order
// the variables appeared in the system.
type Solution[S any] struct {
	vars   []*Var[S]
	values map[*Var[S]]S
}

func (sol *Solution[S]) Get(v *Var[S]) (S, bool) {
	s, found := sol.values[v]
	return s, found
}

// Vars returns the variables of the solution in order.
func (sol *Solution[S]) Vars() []*Var[S] { return append([]*Var[S](nil), sol.vars...) }

func (sol *Solution[S]) Len() int { return len(sol.vars) }

// ForEach calls do for every variable in order.
func (sol *Solution[S]) ForEach(do func(v *Var[S], s S)) {
	for _, v := range sol.vars {
		do(v, sol.values[v])
	}
}

func (sol *Solution[S]) String() string {
	lines := make([]string, 0, len(sol.vars))
	sol.ForEach(func(v *Var[S], s S) {
		lines = append(lines, fmt.Sprintf("%s = %v", v, s))
	})
	return strings.Join(lines, "\n")
}

var colorize = struct {
	Var   func(...interface{}) string
	Op    func(...interface{}) string
	Value func(...interface{}) string
	Desc  func(...interface{}) string
}{
	Var:   color.New(color.FgHiBlue).SprintFunc(),
	Op:    color.New(color.FgYellow).SprintFunc(),
	Value: color.New(color.FgHiGreen).SprintFunc(),
	Desc:  color.New(color.Faint).SprintFunc(),
}

// Pretty renders the solution for terminals.
func (sol *Solution[S]) Pretty() string {
	lines := make([]string, 0, len(sol.vars))
	sol.ForEach(func(v *Var[S], s S) {
		lines = append(lines, colorize.Var(v.name)+" = "+colorize.Value(fmt.Sprint(s)))
	})
	return strings.Join(lines, "\n")
}

// Pretty renders the equations of the system for terminals.
func (sys *System[S]) Pretty() string {
	lines := make([]string, 0, len(sys.equations))
	for _, eq := range sys.equations {
		names := make([]string, len(eq.args))
		for i, arg := range eq.args {
			names[i] = colorize.Var(arg.name)
		}

		line := colorize.Var(eq.lhs.name) + " = " + colorize.Op(Format(eq.op, names...))
		if eq.SourceDescription != "" {
			line += " " + colorize.Desc("// "+eq.SourceDescription)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
