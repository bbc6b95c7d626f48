package absint

import (
	"fmt"
	"sync"

	"github.com/cs-au-dk/absint/utils"
)

// Lattice completes a Domain with the default implementations of the
// optional operations, the derived order predicates, and shared operation
// objects. Operation objects are created once, so equations built from the
// same Lattice share them.
type Lattice[S, A any] struct {
	dom  Domain[S, A]
	name string

	meet     func(x, y S) S
	loopJoin func(x, y S) S
	widen    func(x, y S) S
	narrow   func(x, y S) S
	reduce   func(x S) S

	botOp, topOp                          NullaryOperation[S]
	joinOp, loopJoinOp, widenOp, narrowOp BinaryOperation[S]
	reduceOp                              UnaryOperation[S]

	// Guards the per-arity caches below.
	mu            sync.Mutex
	multiJoin     map[int]NaryOperation[S]
	multiLoopJoin map[int]NaryOperation[S]
}

// MakeLattice resolves the optional capabilities of d. Making a lattice
// from a lattice returns it unchanged.
func MakeLattice[S, A any](d Domain[S, A]) *Lattice[S, A] {
	if l, ok := d.(*Lattice[S, A]); ok {
		return l
	}

	l := &Lattice[S, A]{
		dom:           d,
		multiJoin:     make(map[int]NaryOperation[S]),
		multiLoopJoin: make(map[int]NaryOperation[S]),
	}
	if s, ok := d.(fmt.Stringer); ok {
		l.name = s.String()
	}

	if r, ok := d.(Reducer[S]); ok {
		l.reduce = r.Reduce
		l.reduceOp = Unary(l.opName("Reduce"), r.Reduce)
	} else {
		l.reduce = func(x S) S { return x }
		l.reduceOp = Id[S]()
	}

	l.loopJoin = d.Join
	l.widen = d.Join
	if m, ok := d.(Meeter[S]); ok {
		l.meet = func(x, y S) S { return l.reduce(m.Meet(x, y)) }
	}
	if lj, ok := d.(LoopJoiner[S]); ok {
		l.loopJoin = lj.LoopJoin
	}
	if w, ok := d.(Widener[S]); ok {
		l.widen = w.Widen
	}
	if n, ok := d.(Narrower[S]); ok {
		l.narrow = n.Narrow
	} else {
		l.narrow = l.Meet
	}

	l.botOp = Constant(l.opName("Bot"), d.Bot())
	l.topOp = Constant(l.opName("Top"), d.Top())
	l.joinOp = Binary(l.opName("Join"), d.Join)
	l.loopJoinOp = Binary(l.opName("JoinLoop"), l.loopJoin)
	l.widenOp = Binary(l.opName("Widen"), l.widen)
	l.narrowOp = Binary(l.opName("Narrow"), l.narrow)

	return l
}

func (l *Lattice[S, A]) opName(op string) string {
	if l.name == "" {
		return op
	}
	return op + "_" + l.name
}

// Domain returns the domain the lattice was made from.
func (l *Lattice[S, A]) Domain() Domain[S, A] { return l.dom }

func (l *Lattice[S, A]) String() string {
	if l.name == "" {
		return fmt.Sprintf("%T", l.dom)
	}
	return l.name
}

func (l *Lattice[S, A]) Bot() S                            { return l.dom.Bot() }
func (l *Lattice[S, A]) Top() S                            { return l.dom.Top() }
func (l *Lattice[S, A]) Join(x, y S) S                     { return l.dom.Join(x, y) }
func (l *Lattice[S, A]) Leq(x, y S) bool                   { return l.dom.Leq(x, y) }
func (l *Lattice[S, A]) Transformer(a A) UnaryOperation[S] { return l.dom.Transformer(a) }

// HasMeet reports whether the domain supports Meet.
func (l *Lattice[S, A]) HasMeet() bool { return l.meet != nil }

// Meet computes a lower bound of x and y, followed by the domain's
// reduction. Panics with ErrUnsupportedOperation if the domain does not
// provide one.
func (l *Lattice[S, A]) Meet(x, y S) S {
	if l.meet == nil {
		panic(Fault(ErrUnsupportedOperation, "%s does not implement meet", l))
	}
	return l.meet(x, y)
}

// LoopJoin defaults to Join.
func (l *Lattice[S, A]) LoopJoin(x, y S) S { return l.loopJoin(x, y) }

// Widen defaults to Join, which only terminates for domains without
// infinite ascending chains.
func (l *Lattice[S, A]) Widen(x, y S) S { return l.widen(x, y) }

// Narrow defaults to Meet.
func (l *Lattice[S, A]) Narrow(x, y S) S { return l.narrow(x, y) }

// Reduce defaults to the identity.
func (l *Lattice[S, A]) Reduce(x S) S { return l.reduce(x) }

// Lt is the strict order.
func (l *Lattice[S, A]) Lt(x, y S) bool {
	return l.dom.Leq(x, y) && !l.dom.Leq(y, x)
}

func (l *Lattice[S, A]) Gt(x, y S) bool {
	return l.Lt(y, x)
}

func (l *Lattice[S, A]) Geq(x, y S) bool {
	return l.dom.Leq(y, x)
}

// Eq checks whether x and y are equivalent in the order.
func (l *Lattice[S, A]) Eq(x, y S) bool {
	if utils.Identical(x, y) {
		return true
	}
	return l.dom.Leq(x, y) && l.dom.Leq(y, x)
}

// Comparable checks whether x and y are ordered in either direction.
func (l *Lattice[S, A]) Comparable(x, y S) bool {
	return l.dom.Leq(x, y) || l.dom.Leq(y, x)
}

func (l *Lattice[S, A]) BottomOperation() NullaryOperation[S] { return l.botOp }
func (l *Lattice[S, A]) TopOperation() NullaryOperation[S]    { return l.topOp }
func (l *Lattice[S, A]) JoinOperation() BinaryOperation[S]    { return l.joinOp }
func (l *Lattice[S, A]) LoopJoinOperation() BinaryOperation[S] {
	return l.loopJoinOp
}
func (l *Lattice[S, A]) WideningOperation() BinaryOperation[S]  { return l.widenOp }
func (l *Lattice[S, A]) NarrowingOperation() BinaryOperation[S] { return l.narrowOp }

// ReductionOperation is the identity if the domain has no reduction.
func (l *Lattice[S, A]) ReductionOperation() UnaryOperation[S] { return l.reduceOp }

// MultiJoinOperation left-folds Join over n inputs.
func (l *Lattice[S, A]) MultiJoinOperation(n int) NaryOperation[S] {
	return l.multi(l.multiJoin, "MultiJoin", n, l.dom.Join)
}

// MultiLoopJoinOperation left-folds LoopJoin over n inputs.
func (l *Lattice[S, A]) MultiLoopJoinOperation(n int) NaryOperation[S] {
	return l.multi(l.multiLoopJoin, "MultiJoinLoop", n, l.loopJoin)
}

func (l *Lattice[S, A]) multi(cache map[int]NaryOperation[S], name string, n int, join func(x, y S) S) NaryOperation[S] {
	if n < 1 {
		panic(Fault(ErrArity, "%s needs at least one input, got %d", name, n))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if op, found := cache[n]; found {
		return op
	}

	op := Nary(fmt.Sprintf("%s/%d", l.opName(name), n), n, func(xs []S) S {
		res := xs[0]
		for _, x := range xs[1:] {
			res = join(res, x)
		}
		return res
	})
	cache[n] = op
	return op
}
