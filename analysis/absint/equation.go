package absint

import (
	"github.com/cs-au-dk/absint/utils"
)

// Equation defines a variable as an operation applied to other variables.
type Equation[S any] struct {
	lhs  *Var[S]
	op   Operation[S]
	args []*Var[S]

	// Priority orders the processing of equations by solvers. Equations
	// with lower priority are processed first.
	Priority int
	// SourceDescription relates the equation to the analysed program.
	SourceDescription string

	// Position in the owning system, used to break priority ties.
	index int
}

// NewEquation creates the equation lhs = op(args...). The number of
// arguments must match the arity of op.
func NewEquation[S any](lhs *Var[S], op Operation[S], args ...*Var[S]) *Equation[S] {
	if len(args) != op.Arity() {
		panic(Fault(ErrArity, "%s = %s applied to %d arguments, expected %d", lhs, op, len(args), op.Arity()))
	}

	return &Equation[S]{
		lhs:   lhs,
		op:    op,
		args:  append([]*Var[S](nil), args...),
		index: -1,
	}
}

func (eq *Equation[S]) Lhs() *Var[S]      { return eq.lhs }
func (eq *Equation[S]) Op() Operation[S]  { return eq.op }
func (eq *Equation[S]) Args() []*Var[S]   { return append([]*Var[S](nil), eq.args...) }
func (eq *Equation[S]) Arg(i int) *Var[S] { return eq.args[i] }
func (eq *Equation[S]) NumArgs() int      { return len(eq.args) }

// Index is the order in which the equation was added to its system, or -1.
func (eq *Equation[S]) Index() int { return eq.index }

// Update evaluates the operation over the current values of the arguments
// and assigns the result to the left-hand side variable.
func (eq *Equation[S]) Update() S {
	inputs := make([]S, len(eq.args))
	for i, arg := range eq.args {
		if !arg.initialized {
			panic(Fault(ErrUninitialized, "%s is read by %s before being initialized", arg, eq))
		}
		inputs[i] = arg.value
	}

	res := Apply(eq.op, inputs...)
	if utils.IsNil(res) {
		panic(Fault(ErrNilResult, "%s", eq))
	}

	eq.lhs.assign(res)
	return res
}

func (eq *Equation[S]) String() string {
	names := make([]string, len(eq.args))
	for i, arg := range eq.args {
		names[i] = arg.name
	}

	str := eq.lhs.name + " = " + Format(eq.op, names...)
	if eq.SourceDescription != "" {
		str += " // " + eq.SourceDescription
	}
	return str
}
