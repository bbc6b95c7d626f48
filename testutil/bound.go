package testutil

import (
	"fmt"
	"math"

	"github.com/cs-au-dk/absint/analysis/absint"
)

// Bound is an upper bound of a non-negative integer variable.
type Bound int

const (
	BotBound Bound = -1
	TopBound Bound = math.MaxInt
)

func (b Bound) String() string {
	switch b {
	case BotBound:
		return "⊥"
	case TopBound:
		return "⊤"
	}
	return fmt.Sprintf("≤%d", int(b))
}

// BoundDomain tracks an upper bound of a single variable. Bounds above Max
// are not represented, which makes the domain of finite height.
type BoundDomain struct {
	Var string
	Max int
}

// NewBound creates the lattice of upper bounds of v.
func NewBound(v string, max int) *absint.Lattice[Bound, Action] {
	return absint.MakeLattice[Bound, Action](&BoundDomain{v, max})
}

func (d *BoundDomain) String() string { return "Bound(" + d.Var + ")" }

func (d *BoundDomain) Bot() Bound { return BotBound }
func (d *BoundDomain) Top() Bound { return TopBound }

func (d *BoundDomain) Join(x, y Bound) Bound {
	if x < y {
		return y
	}
	return x
}

func (d *BoundDomain) Meet(x, y Bound) Bound {
	if x < y {
		return x
	}
	return y
}

func (d *BoundDomain) Leq(x, y Bound) bool { return x <= y }

// Widen jumps to top as soon as the bound grows.
func (d *BoundDomain) Widen(x, y Bound) Bound {
	switch {
	case y <= x:
		return x
	case x == BotBound:
		return y
	}
	return TopBound
}

// Narrow only refines top.
func (d *BoundDomain) Narrow(x, y Bound) Bound {
	if x == TopBound {
		return y
	}
	return x
}

func (d *BoundDomain) bound(v int) Bound {
	switch {
	case v < 0:
		return 0
	case v > d.Max:
		return TopBound
	}
	return Bound(v)
}

func (d *BoundDomain) Transformer(action Action) absint.UnaryOperation[Bound] {
	unlessBot := func(f func(Bound) Bound) func(Bound) Bound {
		return func(b Bound) Bound {
			if b == BotBound {
				return b
			}
			return f(b)
		}
	}

	switch a := action.(type) {
	case Const:
		if a.Var == d.Var {
			return absint.Unary(a.String(), unlessBot(func(Bound) Bound {
				return d.bound(a.Value)
			}))
		}
	case Incr:
		if a.Var == d.Var {
			return absint.Unary(a.String(), unlessBot(func(b Bound) Bound {
				if b == TopBound {
					return b
				}
				return d.bound(int(b) + 1)
			}))
		}
	case Havoc:
		if a.Var == d.Var {
			return absint.Unary(a.String(), unlessBot(func(Bound) Bound { return TopBound }))
		}
	case Copy:
		if a.Dst == d.Var && a.Src != d.Var {
			return absint.Unary(a.String(), unlessBot(func(Bound) Bound { return TopBound }))
		}
	case Assume:
		return d.assume(a)
	}

	return absint.Id[Bound]()
}

func (d *BoundDomain) assume(a Assume) absint.UnaryOperation[Bound] {
	switch c := a.Cond.(type) {
	case Less:
		if c.Var != d.Var {
			break
		}

		if a.Polarity {
			return absint.Assume(true, c.String(), func(b Bound) Bound {
				if c.Bound <= 0 {
					return BotBound
				}
				return d.Meet(b, d.bound(c.Bound-1))
			})
		}
		return absint.Assume(false, c.String(), func(b Bound) Bound {
			if b != TopBound && int(b) < c.Bound {
				return BotBound
			}
			return b
		})
	case EqConst:
		if c.Var != d.Var || !a.Polarity {
			break
		}

		return absint.Assume(true, c.String(), func(b Bound) Bound {
			if c.Value < 0 || (b != TopBound && int(b) < c.Value) {
				return BotBound
			}
			return d.Meet(b, d.bound(c.Value))
		})
	}

	return absint.Id[Bound]()
}
