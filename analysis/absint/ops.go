package absint

import (
	"fmt"
	"strings"
)

// idOperation is the identity transformer. Its zero-size value is the unique
// instance for each state type, which lets callers detect it by comparison.
type idOperation[S any] struct{}

func (idOperation[S]) Arity() int      { return 1 }
func (idOperation[S]) Transform(x S) S { return x }
func (idOperation[S]) String() string  { return "id" }
func (idOperation[S]) Format(args []string) string {
	return strings.Join(args, ", ")
}

// Id returns the identity transformer over S.
func Id[S any]() UnaryOperation[S] {
	return idOperation[S]{}
}

// IsId checks whether op is the identity transformer.
func IsId[S any](op Operation[S]) bool {
	_, ok := op.(idOperation[S])
	return ok
}

type constant[S any] struct {
	name  string
	value S
}

// Constant creates a nullary operation which always produces v. The name is
// used for printing; if empty, v itself is printed.
func Constant[S any](name string, v S) NullaryOperation[S] {
	return &constant[S]{name, v}
}

func (*constant[S]) Arity() int { return 0 }
func (c *constant[S]) Value() S { return c.value }
func (c *constant[S]) String() string {
	if c.name != "" {
		return c.name
	}
	return fmt.Sprint(c.value)
}

type unary[S any] struct {
	name string
	f    func(S) S
}

// Unary wraps f as a named transformer.
func Unary[S any](name string, f func(S) S) UnaryOperation[S] {
	return &unary[S]{name, f}
}

func (*unary[S]) Arity() int        { return 1 }
func (u *unary[S]) Transform(x S) S { return u.f(x) }
func (u *unary[S]) String() string  { return u.name }

type binary[S any] struct {
	name string
	f    func(S, S) S
}

// Binary wraps f as a named binary operation.
func Binary[S any](name string, f func(S, S) S) BinaryOperation[S] {
	return &binary[S]{name, f}
}

func (*binary[S]) Arity() int         { return 2 }
func (b *binary[S]) Combine(x, y S) S { return b.f(x, y) }
func (b *binary[S]) String() string   { return b.name }

type nary[S any] struct {
	name  string
	arity int
	f     func([]S) S
}

// Nary wraps f as a named operation over exactly arity inputs.
func Nary[S any](name string, arity int, f func([]S) S) NaryOperation[S] {
	return &nary[S]{name, arity, f}
}

func (n *nary[S]) Arity() int      { return n.arity }
func (n *nary[S]) ApplyN(xs []S) S { return n.f(xs) }
func (n *nary[S]) String() string  { return n.name }

// AssumeTransformer is a transformer for one outcome of a branch. The
// polarity tells which outcome and only affects how the transformer is
// printed.
type AssumeTransformer[S any] interface {
	UnaryOperation[S]
	Polarity() bool
}

type assume[S any] struct {
	unary[S]
	polarity bool
}

// Assume creates the transformer assuming that the condition described by
// name evaluates to polarity.
func Assume[S any](polarity bool, name string, f func(S) S) AssumeTransformer[S] {
	return &assume[S]{unary[S]{name, f}, polarity}
}

func (a *assume[S]) Polarity() bool { return a.polarity }
func (a *assume[S]) String() string {
	if a.polarity {
		return "assume(" + a.name + ")"
	}
	return "assume(!" + a.name + ")"
}

type composed[S any] struct {
	first, second UnaryOperation[S]
}

func (*composed[S]) Arity() int { return 1 }
func (c *composed[S]) Transform(x S) S {
	return c.second.Transform(c.first.Transform(x))
}
func (c *composed[S]) String() string {
	return c.second.String() + "(" + c.first.String() + ")"
}
func (c *composed[S]) Format(args []string) string {
	return Format[S](c.second, Format[S](c.first, args...))
}

type composedAssume[S any] struct {
	composed[S]
	polarity bool
}

func (c *composedAssume[S]) Polarity() bool { return c.polarity }

// Compose returns the transformer applying first and then second. The
// identity is never part of a composition: if either side is the identity,
// the other side is returned as is. Composing with an assume transformer
// yields an assume transformer of the same polarity.
func Compose[S any](first, second UnaryOperation[S]) UnaryOperation[S] {
	switch {
	case IsId[S](first):
		return second
	case IsId[S](second):
		return first
	}

	c := composed[S]{first, second}
	if a, ok := first.(AssumeTransformer[S]); ok {
		return &composedAssume[S]{c, a.Polarity()}
	}
	if a, ok := second.(AssumeTransformer[S]); ok {
		return &composedAssume[S]{c, a.Polarity()}
	}
	return &c
}
