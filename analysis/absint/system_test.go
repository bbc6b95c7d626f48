package absint

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSystem struct {
	sys        *System[int]
	a, b, c, d *Var[int]
}

// loopSystem builds
//
//	a = one
//	b = inc(a)
//	c = Join_Max(a, d)
//	d = Widen_Max(d, b)
func loopSystem() testSystem {
	l := MakeLattice[int, string](namedMax{})
	s := testSystem{
		sys: NewSystem[int](),
		a:   NewVar[int]("a"),
		b:   NewVar[int]("b"),
		c:   NewVar[int]("c"),
		d:   NewVar[int]("d"),
	}

	s.sys.Add("entry", s.a, Constant("one", 1))
	s.sys.Add("step", s.b, inc, s.a)
	s.sys.Add("", s.c, l.JoinOperation(), s.a, s.d)
	s.sys.Add("loop", s.d, Phased[int](l.WideningOperation(), l.NarrowingOperation()), s.d, s.b)
	return s
}

func TestSystemString(t *testing.T) {
	s := loopSystem()
	goldie.New(t).Assert(t, "system", []byte(s.sys.String()))
}

func TestRedefinition(t *testing.T) {
	s := loopSystem()
	err := recovered(func() { s.sys.Add("again", s.b, inc, s.c) })
	assert.ErrorIs(t, err, ErrRedefinition)
	assert.Equal(t, 4, s.sys.Len())
}

func TestEquationArity(t *testing.T) {
	x := NewVar[int]("x")
	err := recovered(func() { NewEquation[int](x, inc) })
	assert.ErrorIs(t, err, ErrArity)
}

func TestSystemIndices(t *testing.T) {
	s := loopSystem()

	for i, eq := range s.sys.Equations() {
		assert.Equal(t, i, eq.Index())
	}

	eq, found := s.sys.DefiningEquation(s.c)
	require.True(t, found)
	assert.Equal(t, s.c, eq.Lhs())
	assert.Equal(t, []*Var[int]{s.a, s.d}, eq.Args())
	assert.Equal(t, 2, eq.NumArgs())
	assert.Equal(t, s.d, eq.Arg(1))

	deps := s.sys.DependentEquations(s.d)
	require.Len(t, deps, 2)
	assert.Equal(t, s.c, deps[0].Lhs())
	assert.Equal(t, s.d, deps[1].Lhs())

	heads := s.sys.Heads()
	require.Len(t, heads, 1)
	assert.Equal(t, s.a, heads[0].Lhs())

	assert.Equal(t, []*Var[int]{s.a, s.b, s.c, s.d}, s.sys.AllVars())
}

func TestDependentsAreUnique(t *testing.T) {
	sys := NewSystem[int]()
	x, y := NewVar[int]("x"), NewVar[int]("y")
	sys.Add("", x, Constant("zero", 0))
	sys.Add("", y, MakeLattice[int, string](maxDomain{}).JoinOperation(), x, x)

	assert.Len(t, sys.DependentEquations(x), 1)
}

func TestWellFormed(t *testing.T) {
	s := loopSystem()
	assert.True(t, s.sys.IsWellFormed())
	assert.Empty(t, s.sys.Undefined())

	free := NewVar[int]("free")
	s.sys.Add("", NewVar[int]("e"), inc, free)
	assert.False(t, s.sys.IsWellFormed())
	assert.Equal(t, []*Var[int]{free}, s.sys.Undefined())
}

func TestUpdate(t *testing.T) {
	s := loopSystem()
	eqs := s.sys.Equations()

	err := recovered(func() { eqs[1].Update() })
	assert.ErrorIs(t, err, ErrUninitialized)

	assert.Equal(t, 1, eqs[0].Update())
	assert.Equal(t, 2, eqs[1].Update())
	assert.True(t, s.b.Initialized())
	assert.Equal(t, 2, s.b.Value())
}

func TestNilResult(t *testing.T) {
	sys := NewSystem[*int]()
	x := NewVar[*int]("x")
	eq := sys.Add("", x, Constant[*int]("nil", nil))

	assert.ErrorIs(t, recovered(func() { eq.Update() }), ErrNilResult)
	assert.False(t, x.Initialized())
}

func TestInitialization(t *testing.T) {
	s := loopSystem()
	assert.False(t, s.sys.AllInitialized())
	assert.Equal(t, 0, s.sys.Solution().Len())

	s.sys.InitializeValues(0)
	assert.True(t, s.sys.AllInitialized())
	for _, eq := range s.sys.Equations() {
		eq.Update()
	}

	sol := s.sys.Solution()
	assert.Equal(t, "a = 1\nb = 2\nc = 1\nd = 100", sol.String())
	assert.Equal(t, []*Var[int]{s.a, s.b, s.c, s.d}, sol.Vars())
	v, found := sol.Get(s.d)
	assert.True(t, found)
	assert.Equal(t, 100, v)
}

func TestUnreachable(t *testing.T) {
	s := loopSystem()
	isolated := NewVar[int]("isolated")
	s.sys.Add("", isolated, Constant("zero", 0))

	assert.Equal(t, []*Var[int]{isolated}, s.sys.Unreachable(s.a))
	assert.Equal(t, []*Var[int]{s.a, s.b}, s.sys.Unreachable(s.d, isolated))
}

type messages []string

func (m messages) Messages() []string { return m }

func TestFindings(t *testing.T) {
	sys := NewSystem[messages]()
	ok, failed := NewVar[messages]("ok"), NewVar[messages]("failed")
	sys.Add("", ok, Constant("ok", messages{}))
	eq := sys.Add("assert", failed, Unary("fail", func(m messages) messages {
		return append(m, "assertion may fail")
	}), ok)

	sys.InitializeValues(messages{})
	for _, eq := range sys.Equations() {
		eq.Update()
	}

	findings := sys.Findings()
	require.Len(t, findings, 1)
	assert.Equal(t, failed, findings[0].Var)
	assert.Equal(t, eq, findings[0].Equation)
	assert.Equal(t, []string{"assertion may fail"}, findings[0].Messages)
}

func TestToDot(t *testing.T) {
	s := loopSystem()
	s.sys.InitializeValues(0)
	s.sys.Equations()[0].Update()

	var buf bytes.Buffer
	require.NoError(t, s.sys.ToDot("loop").WriteDot(&buf))

	out := buf.String()
	for _, frag := range []string{
		`digraph "loop" {`,
		`"a" [ label="a\n1"; shape="ellipse"; ]`,
		`"a" -> "b" [ label="inc"; ]`,
		`"d" -> "d" [ label="Widen_Max"; ]`,
		`"b" -> "d" [ label="Widen_Max"; ]`,
	} {
		assert.True(t, strings.Contains(out, frag), "expected %q in\n%s", frag, out)
	}
}
