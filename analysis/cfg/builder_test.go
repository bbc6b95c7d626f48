package cfg_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cs-au-dk/absint/analysis/absint"
	"github.com/cs-au-dk/absint/analysis/cfg"
	L "github.com/cs-au-dk/absint/analysis/lattice"
	"github.com/cs-au-dk/absint/analysis/solver"
	"github.com/cs-au-dk/absint/config"
	tu "github.com/cs-au-dk/absint/testutil"
)

func build[S any](p *tu.Program, lat *absint.Lattice[S, tu.Action], widening bool) *cfg.Result[int, S] {
	return cfg.Build[int, S, tu.Action](p, lat, cfg.Options{Widening: widening})
}

func TestCountingLoopShape(t *testing.T) {
	tests := []struct {
		widening  bool
		equations int
	}{
		{false, 7},
		{true, 8},
	}

	for _, test := range tests {
		res := build(tu.CountingLoop(5), tu.NewBound("i", 10), test.widening)

		assert.Equal(t, map[int]bool{1: true}, res.LoopHeads)
		assert.Empty(t, res.Unreachable)
		assert.Equal(t, test.equations, res.System.Len())
		assert.True(t, res.System.IsWellFormed())
		assert.Equal(t, "V[0]", res.Entry.Name())

		assert.Len(t, res.Out, 4)
		assert.Len(t, res.False, 1)
		assert.Contains(t, res.False, 1)
		assert.Contains(t, res.Join, 1)

		assert.Equal(t, res.Entry, res.In(0))
		if test.widening {
			assert.Equal(t, res.Box[1], res.In(1))
		} else {
			assert.Empty(t, res.Box)
			assert.Equal(t, res.Join[1], res.In(1))
		}
	}
}

func TestLoopHeadOperations(t *testing.T) {
	res := build(tu.CountingLoop(5), tu.NewBound("i", 10), true)

	join, found := res.System.DefiningEquation(res.Join[1])
	require.True(t, found)
	assert.Equal(t, "JoinLoop_Bound(i)", join.Op().String())
	assert.Equal(t, "join before 1: if i < 5", join.SourceDescription)

	box, found := res.System.DefiningEquation(res.Box[1])
	require.True(t, found)
	phased, ok := box.Op().(*absint.PhasedOperation[tu.Bound])
	require.True(t, ok)
	assert.Equal(t, 2, phased.Phases())
	assert.Equal(t, []*absint.Var[tu.Bound]{res.Box[1], res.Join[1]}, box.Args())

	n, found := res.UnitOf(box)
	assert.True(t, found)
	assert.Equal(t, 1, n)
}

func TestPriorities(t *testing.T) {
	res := build(tu.CountingLoop(5), tu.NewBound("i", 10), true)
	eqs := res.System.Equations()

	assert.Equal(t, -1, eqs[0].Priority)
	for _, eq := range eqs[1:] {
		assert.GreaterOrEqual(t, eq.Priority, 0, "%s", eq)
	}

	prio := func(v *absint.Var[tu.Bound]) int {
		eq, _ := res.System.DefiningEquation(v)
		return eq.Priority
	}
	// Units before the loop come first, and units after it come last.
	assert.Less(t, prio(res.Out[0]), prio(res.Box[1]))
	assert.Less(t, prio(res.Box[1]), prio(res.Out[2]))
	assert.Less(t, prio(res.Out[2]), prio(res.Out[3]))
}

func TestUnreachableUnits(t *testing.T) {
	p := tu.NewProgram()
	p.Stmt(tu.Const{Var: "x", Value: 1}, 2)
	p.Stmt(tu.Const{Var: "x", Value: 2}, 2)
	p.Stmt(tu.Skip{})

	res := build(p, tu.CPLattice(), false)
	assert.Equal(t, []int{1}, res.Unreachable)
	assert.Empty(t, res.LoopHeads)
	assert.Equal(t, res.Entry, res.In(1))

	dead, _ := res.System.DefiningEquation(res.Out[1])
	for _, eq := range res.System.Equations() {
		if eq != dead {
			assert.Less(t, eq.Priority, dead.Priority, "%s", eq)
		}
	}
}

// 1 and 2 can both be entered from 0, so neither dominates the other.
func irreducible() *tu.Program {
	p := tu.NewProgram()
	p.If(tu.Less{Var: "i", Bound: 1}, 1, 2)
	p.Stmt(tu.Incr{Var: "i"}, 2)
	p.If(tu.Less{Var: "i", Bound: 3}, 1, 3)
	p.Stmt(tu.Skip{})
	return p
}

func TestIrreducibleLoop(t *testing.T) {
	res := build(irreducible(), tu.NewBound("i", 10), true)

	assert.Equal(t, map[int]bool{1: true}, res.LoopHeads)
	require.Contains(t, res.Box, 1)
	assert.Equal(t, res.Box[1], res.In(1))

	head, _ := res.System.DefiningEquation(res.Join[1])
	assert.Equal(t, "JoinLoop_Bound(i)", head.Op().String())
	other, _ := res.System.DefiningEquation(res.Join[2])
	assert.Equal(t, "Join_Bound(i)", other.Op().String())
}

func TestResultToDot(t *testing.T) {
	res := build(tu.CountingLoop(5), tu.NewBound("i", 10), true)
	dg := res.ToDot("loop")

	require.Len(t, dg.Clusters, 4)
	assert.Len(t, dg.Clusters[1].Nodes, 4)
	assert.Equal(t, "1: if i < 5", dg.Clusters[1].Attrs["label"])
	require.Len(t, dg.Nodes, 1)
	assert.Equal(t, res.Entry.Name(), dg.Nodes[0].ID)

	var buf bytes.Buffer
	require.NoError(t, dg.WriteDot(&buf))
	assert.Contains(t, buf.String(), `subgraph "cluster_1" {`)
	assert.Contains(t, buf.String(), `label="1: if i < 5";`)
}

func TestMultiJoin(t *testing.T) {
	p := tu.NewProgram()
	p.If(tu.Less{Var: "x", Bound: 1}, 1, 2)
	p.Stmt(tu.Const{Var: "x", Value: 1}, 3)
	p.If(tu.EqConst{Var: "x", Value: 5}, 3, 3)
	p.Stmt(tu.Skip{})

	res := build(p, tu.NewBound("x", 10), true)
	join, found := res.System.DefiningEquation(res.Join[3])
	require.True(t, found)
	assert.Equal(t, "MultiJoin_Bound(x)/3", join.Op().String())
	assert.Equal(t, 3, join.NumArgs())
}

type noTransformers struct {
	*tu.BoundDomain
}

func (noTransformers) Transformer(tu.Action) absint.UnaryOperation[tu.Bound] { return nil }

func TestMissingTransformer(t *testing.T) {
	lat := absint.MakeLattice[tu.Bound, tu.Action](noTransformers{&tu.BoundDomain{Var: "i", Max: 10}})

	defer func() {
		err, _ := recover().(error)
		assert.True(t, errors.Is(err, absint.ErrUnsupportedOperation), "unexpected panic: %v", err)
	}()
	build(tu.CountingLoop(5), lat, true)
	t.Error("expected a panic")
}

func TestOptionsFrom(t *testing.T) {
	c := config.Default()
	assert.True(t, cfg.OptionsFrom(c).Widening)

	c.Analysis.Widening = false
	assert.False(t, cfg.OptionsFrom(c).Widening)
}

// deadBranch is the program
//
//	0: a := 5
//	1: b := a
//	2: if b == 5 goto 3 else goto 4
//	3: c := 1; goto 5
//	4: c := 2; goto 5
//	5: skip
func deadBranch() *tu.Program {
	p := tu.NewProgram()
	p.Stmt(tu.Const{Var: "a", Value: 5}, 1)
	p.Stmt(tu.Copy{Dst: "b", Src: "a"}, 2)
	p.If(tu.EqConst{Var: "b", Value: 5}, 3, 4)
	p.Stmt(tu.Const{Var: "c", Value: 1}, 5)
	p.Stmt(tu.Const{Var: "c", Value: 2}, 5)
	p.Stmt(tu.Skip{})
	return p
}

func TestConstantPropagation(t *testing.T) {
	lat := tu.CPLattice()
	res := build(deadBranch(), lat, true)
	solver.New[tu.CPState](config.Default()).Solve(res.System, lat)

	assert.Equal(t, "and(a=5, b=5)", res.Out[1].Value().String())
	assert.True(t, res.False[2].Value().IsBot())
	assert.True(t, res.Out[4].Value().IsBot())
	assert.Equal(t, "and(a=5, b=5, c=1)", res.Out[5].Value().String())
}

// havocCopy is the program
//
//	0: a := ?
//	1: b := a
//	2: if a == 5 goto 3 else goto 4
//	3: skip
//	4: skip
func havocCopy() *tu.Program {
	p := tu.NewProgram()
	p.Stmt(tu.Havoc{Var: "a"}, 1)
	p.Stmt(tu.Copy{Dst: "b", Src: "a"}, 2)
	p.If(tu.EqConst{Var: "a", Value: 5}, 3, 4)
	p.Stmt(tu.Skip{})
	p.Stmt(tu.Skip{})
	return p
}

func TestReducedProduct(t *testing.T) {
	prod := L.MakeCartesian[string, tu.Action](
		L.Sub[string, tu.CPState, tu.Action](tu.NewCP()),
		L.Sub[string, tu.VarEqState, tu.Action](tu.NewVarEq()),
	)
	lat := absint.MakeLattice[L.ProductState, tu.Action](prod)

	res := build(havocCopy(), lat, false)
	solver.NewChaoticIteration[L.ProductState](nil).Solve(res.System, lat)

	onTrue := res.Out[2].Value()
	assert.Equal(t, "and(a=5, b=5)", L.Get[tu.CPState](onTrue, 0).String())
	assert.Equal(t, "a=b", L.Get[tu.VarEqState](onTrue, 1).String())

	onFalse := res.False[2].Value()
	assert.True(t, L.Get[tu.CPState](onFalse, 0).IsTop())
	assert.Equal(t, "a=b", L.Get[tu.VarEqState](onFalse, 1).String())

	// Without the equalities, nothing is learned about b.
	cp := tu.CPLattice()
	alone := build(havocCopy(), cp, false)
	solver.NewChaoticIteration[tu.CPState](nil).Solve(alone.System, cp)
	assert.Equal(t, "a=5", alone.Out[2].Value().String())
}
