package absint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	inc = Unary("inc", func(x int) int { return x + 1 })
	dbl = Unary("dbl", func(x int) int { return 2 * x })
)

func TestIdentity(t *testing.T) {
	id := Id[int]()
	assert.True(t, IsId[int](id))
	assert.True(t, IsId[int](Id[int]()))
	assert.False(t, IsId[int](inc))
	assert.Equal(t, 7, Apply[int](id, 7))
	assert.Equal(t, "x", Format[int](id, "x"))
}

func TestCompose(t *testing.T) {
	assert.True(t, Compose(Id[int](), inc) == inc, "identity on the left must be dropped")
	assert.True(t, Compose(inc, Id[int]()) == inc, "identity on the right must be dropped")
	assert.True(t, IsId[int](Compose(Id[int](), Id[int]())))

	c := Compose(inc, dbl)
	assert.Equal(t, 8, Apply[int](c, 3))
	assert.Equal(t, "dbl(inc)", c.String())
	assert.Equal(t, "dbl(inc(x))", Format[int](c, "x"))

	_, isAssume := c.(AssumeTransformer[int])
	assert.False(t, isAssume)
}

func TestAssume(t *testing.T) {
	pos := Assume(true, "x < 5", func(x int) int { return x })
	neg := Assume(false, "x < 5", func(x int) int { return 0 })

	assert.Equal(t, "assume(x < 5)", pos.String())
	assert.Equal(t, "assume(!x < 5)", neg.String())
	assert.Equal(t, 0, Apply[int](neg, 3))

	for _, c := range []UnaryOperation[int]{Compose[int](neg, inc), Compose[int](inc, neg)} {
		a, ok := c.(AssumeTransformer[int])
		require.True(t, ok, "%s should be an assume transformer", c)
		assert.False(t, a.Polarity())
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		op       Operation[int]
		inputs   []int
		expected int
	}{
		{Constant("five", 5), nil, 5},
		{inc, []int{1}, 2},
		{Binary("sub", func(x, y int) int { return x - y }), []int{5, 3}, 2},
		{Nary("sum", 3, func(xs []int) int { return xs[0] + xs[1] + xs[2] }), []int{1, 2, 3}, 6},
		// Nary operations of arity 2 are not binary operations.
		{Nary("sub2", 2, func(xs []int) int { return xs[0] - xs[1] }), []int{5, 3}, 2},
	}

	for _, test := range tests {
		if res := Apply(test.op, test.inputs...); res != test.expected {
			t.Errorf("%s = %d, expected %d", Format(test.op), res, test.expected)
		}
	}
}

func TestApplyArityMismatch(t *testing.T) {
	err := recovered(func() { Apply[int](inc, 1, 2) })
	assert.ErrorIs(t, err, ErrArity)

	err = recovered(func() { Apply[int](Constant("c", 1), 1) })
	assert.ErrorIs(t, err, ErrArity)
}

func TestConstantName(t *testing.T) {
	assert.Equal(t, "five", Constant("five", 5).String())
	assert.Equal(t, "5", Constant("", 5).String())
}

func TestPhased(t *testing.T) {
	first := Binary("first", func(x, _ int) int { return x })
	second := Binary("second", func(_, y int) int { return y })

	p := Phased[int](first, second)
	assert.Equal(t, 2, p.Arity())
	assert.Equal(t, 2, p.Phases())
	assert.Equal(t, WidenPhase, p.Phase())
	assert.Equal(t, 1, Apply[int](p, 1, 2))
	assert.Equal(t, "first(a, b)", Format[int](p, "a", "b"))

	p.Advance()
	assert.Equal(t, NarrowPhase, p.Phase())
	assert.Equal(t, 2, Apply[int](p, 1, 2))
	assert.Equal(t, "second", p.String())

	err := recovered(p.Advance)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
	assert.ErrorContains(t, err, "phase 2 of second out of range")

	p.SetPhase(WidenPhase)
	assert.Equal(t, 1, Apply[int](p, 1, 2))
}

func TestPhasedArity(t *testing.T) {
	err := recovered(func() { Phased[int](inc, Binary("b", func(x, _ int) int { return x })) })
	assert.ErrorIs(t, err, ErrArity)

	assert.ErrorIs(t, recovered(func() { Phased[int]() }), ErrArity)
}
