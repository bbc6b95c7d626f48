package cfg

import (
	"fmt"

	"github.com/cs-au-dk/absint/analysis/absint"
	"github.com/cs-au-dk/absint/config"
	"github.com/cs-au-dk/absint/utils"
	"github.com/cs-au-dk/absint/utils/graph"
)

// Options control the shape of the generated equation system.
type Options struct {
	// Add a widening/narrowing variable to every loop head.
	Widening bool
}

// OptionsFrom extracts the builder options of a configuration.
func OptionsFrom(cfg config.Config) Options {
	return Options{Widening: cfg.Analysis.Widening}
}

// Result is an equation system built from a program, together with the
// mapping between units and variables.
type Result[N comparable, S any] struct {
	System *absint.System[S]
	// Defined by the top constant. Units without predecessors read it.
	Entry *absint.Var[S]
	// Output of each unit. For branches, the state when the condition holds.
	Out map[N]*absint.Var[S]
	// State of branch units when the condition does not hold.
	False map[N]*absint.Var[S]
	// Join of the predecessors of units with more than one predecessor.
	Join map[N]*absint.Var[S]
	// Widening/narrowing variables of loop heads.
	Box map[N]*absint.Var[S]
	// Targets of back edges.
	LoopHeads map[N]bool
	// Units that cannot be reached from the entry.
	Unreachable []N

	units map[*absint.Equation[S]]N
	in    map[N]*absint.Var[S]
	order []N
	descs map[N]string
}

// UnitOf returns the unit an equation was generated for.
func (r *Result[N, S]) UnitOf(eq *absint.Equation[S]) (N, bool) {
	n, found := r.units[eq]
	return n, found
}

// In returns the variable holding the input state of n.
func (r *Result[N, S]) In(n N) *absint.Var[S] {
	return r.in[n]
}

type builder[N comparable, S, A any] struct {
	prog Program[N, A]
	lat  *absint.Lattice[S, A]
	opts Options
	res  *Result[N, S]
	prio map[N]int
	vars int
}

// Build translates a program into an equation system over the given
// lattice.
func Build[N comparable, S, A any](prog Program[N, A], lat *absint.Lattice[S, A], opts Options) *Result[N, S] {
	b := &builder[N, S, A]{
		prog: prog,
		lat:  lat,
		opts: opts,
		res: &Result[N, S]{
			System:    absint.NewSystem[S](),
			Out:       make(map[N]*absint.Var[S]),
			False:     make(map[N]*absint.Var[S]),
			Join:      make(map[N]*absint.Var[S]),
			Box:       make(map[N]*absint.Var[S]),
			LoopHeads: make(map[N]bool),
			units:     make(map[*absint.Equation[S]]N),
			in:        make(map[N]*absint.Var[S]),
			descs:     make(map[N]string),
		},
		prio: make(map[N]int),
	}

	b.analyzeLoops()
	b.build()
	return b.res
}

func (b *builder[N, S, A]) newVar() *absint.Var[S] {
	v := absint.NewVar[S](fmt.Sprintf("V[%d]", b.vars))
	b.vars++
	return v
}

// analyzeLoops finds loop heads and unreachable units, and assigns
// priorities. Loop heads are targets of edges from units they dominate.
// A cycle without such an edge is irreducible; its first unit in reverse
// post-order becomes the loop head. Priorities order units by the
// topological order of the strongly connected components of the graph,
// then by reverse post-order.
func (b *builder[N, S, A]) analyzeLoops() {
	entry := b.prog.Entry()
	G := graph.OfHashable(func(n N) []N { return successors(b.prog, n) })

	dom := G.DominatorTree(entry)
	scc := G.SCC([]N{entry})

	units := b.prog.Units()
	size := len(units) + 1
	for i, n := range units {
		if !dom.Reachable(n) {
			b.res.Unreachable = append(b.res.Unreachable, n)
			b.prio[n] = size*size + i
			continue
		}

		b.prio[n] = scc.TopologicalRank(n)*size + dom.RPONumber(n)
		for _, h := range G.Edges(n) {
			if dom.Dominates(h, n) {
				b.res.LoopHeads[h] = true
			}
		}
	}

	for c, members := range scc.Components {
		if !scc.Cyclic(c) {
			continue
		}

		head, headed := members[0], false
		for _, n := range members {
			if b.res.LoopHeads[n] {
				headed = true
				break
			}
			if dom.RPONumber(n) < dom.RPONumber(head) {
				head = n
			}
		}
		if !headed {
			b.res.LoopHeads[head] = true
		}
	}
}

func (b *builder[N, S, A]) add(n N, desc string, lhs *absint.Var[S], op absint.Operation[S], args ...*absint.Var[S]) {
	eq := b.res.System.Add(desc, lhs, op, args...)
	eq.Priority = b.prio[n]
	b.res.units[eq] = n
}

func (b *builder[N, S, A]) transformer(n N, action A) absint.UnaryOperation[S] {
	t := b.lat.Transformer(action)
	if utils.IsNil(t) {
		panic(absint.Fault(absint.ErrUnsupportedOperation, "no transformer for %v at %s", action, b.prog.Describe(n)))
	}
	return t
}

func (b *builder[N, S, A]) build() {
	res, prog := b.res, b.prog
	units := prog.Units()

	res.Entry = b.newVar()
	entryEq := res.System.Add("entry", res.Entry, b.lat.TopOperation())
	entryEq.Priority = -1

	preds := map[N][]*absint.Var[S]{
		prog.Entry(): {res.Entry},
	}
	for _, n := range units {
		res.Out[n] = b.newVar()
		if t, f, ok := prog.Branch(n); ok {
			res.False[n] = b.newVar()
			preds[t] = append(preds[t], res.Out[n])
			preds[f] = append(preds[f], res.False[n])
			continue
		}

		for _, s := range prog.Successors(n) {
			preds[s] = append(preds[s], res.Out[n])
		}
	}

	res.order = units
	for _, n := range units {
		desc := prog.Describe(n)
		res.descs[n] = desc

		ps := preds[n]
		if len(ps) == 0 {
			ps = []*absint.Var[S]{res.Entry}
		}

		in := ps[0]
		if len(ps) > 1 {
			in = b.join(n, desc, ps)
		}
		res.in[n] = in

		if _, _, ok := prog.Branch(n); ok {
			b.add(n, "assume "+desc, res.Out[n], b.transformer(n, prog.Assume(n, true)), in)
			b.add(n, "assume !"+desc, res.False[n], b.transformer(n, prog.Assume(n, false)), in)
		} else {
			b.add(n, desc, res.Out[n], b.transformer(n, prog.Action(n)), in)
		}
	}
}

// join defines the join variable of n, and the widening variable if n is a
// loop head.
func (b *builder[N, S, A]) join(n N, desc string, ps []*absint.Var[S]) *absint.Var[S] {
	loop := b.res.LoopHeads[n]

	var op absint.Operation[S]
	switch {
	case loop && len(ps) == 2:
		op = b.lat.LoopJoinOperation()
	case loop:
		op = b.lat.MultiLoopJoinOperation(len(ps))
	case len(ps) == 2:
		op = b.lat.JoinOperation()
	default:
		op = b.lat.MultiJoinOperation(len(ps))
	}

	join := b.newVar()
	b.res.Join[n] = join
	b.add(n, "join before "+desc, join, op, ps...)

	if !loop || !b.opts.Widening {
		return join
	}

	box := b.newVar()
	b.res.Box[n] = box
	phased := absint.Phased[S](b.lat.WideningOperation(), b.lat.NarrowingOperation())
	b.add(n, "loop head "+desc, box, phased, box, join)
	return box
}
