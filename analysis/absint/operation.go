package absint

import (
	"fmt"
	"strings"
)

// Operation is an n-ary function over abstract states. Operations are
// immutable and may be shared between equations. Concrete operations
// implement one of the arity-specific views below, which Apply dispatches on.
type Operation[S any] interface {
	fmt.Stringer
	// Arity is the number of inputs expected by the operation.
	Arity() int
}

type (
	// NullaryOperation is an operation without inputs.
	NullaryOperation[S any] interface {
		Operation[S]
		Value() S
	}

	// UnaryOperation is an abstract transformer.
	UnaryOperation[S any] interface {
		Operation[S]
		Transform(S) S
	}

	// BinaryOperation combines two abstract states.
	BinaryOperation[S any] interface {
		Operation[S]
		Combine(x, y S) S
	}

	// NaryOperation accepts an arbitrary, but fixed, number of inputs.
	NaryOperation[S any] interface {
		Operation[S]
		ApplyN(inputs []S) S
	}
)

// Formatter is implemented by operations that control how they are printed
// when applied to named arguments.
type Formatter interface {
	Format(args []string) string
}

// Apply evaluates op over the given inputs, dispatching to the view that
// matches the number of inputs.
func Apply[S any](op Operation[S], inputs ...S) S {
	if op.Arity() != len(inputs) {
		panic(Fault(ErrArity, "%s expects %d arguments, got %d", op, op.Arity(), len(inputs)))
	}

	switch len(inputs) {
	case 0:
		if o, ok := op.(NullaryOperation[S]); ok {
			return o.Value()
		}
	case 1:
		if o, ok := op.(UnaryOperation[S]); ok {
			return o.Transform(inputs[0])
		}
	case 2:
		if o, ok := op.(BinaryOperation[S]); ok {
			return o.Combine(inputs[0], inputs[1])
		}
	}

	if o, ok := op.(NaryOperation[S]); ok {
		return o.ApplyN(inputs)
	}

	panic(Fault(ErrArity, "%s does not support %d arguments", op, len(inputs)))
}

// Format renders op applied to the named arguments.
func Format[S any](op Operation[S], args ...string) string {
	if f, ok := op.(Formatter); ok {
		return f.Format(args)
	}
	if len(args) == 0 {
		return op.String()
	}
	return op.String() + "(" + strings.Join(args, ", ") + ")"
}
