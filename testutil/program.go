package testutil

import "fmt"

type unit struct {
	action Action
	cond   Cond
	succs  []int
}

// Program is a control-flow graph of the toy language. Units are numbered
// in the order they are added and unit 0 is the entry. Successors may refer
// to units added later.
type Program struct {
	units []unit
}

func NewProgram() *Program {
	return &Program{}
}

// Stmt adds a unit executing a.
func (p *Program) Stmt(a Action, succs ...int) int {
	p.units = append(p.units, unit{action: a, succs: succs})
	return len(p.units) - 1
}

// If adds a unit branching on c.
func (p *Program) If(c Cond, onTrue, onFalse int) int {
	p.units = append(p.units, unit{cond: c, succs: []int{onTrue, onFalse}})
	return len(p.units) - 1
}

func (p *Program) Entry() int { return 0 }

func (p *Program) Units() []int {
	res := make([]int, len(p.units))
	for i := range res {
		res[i] = i
	}
	return res
}

func (p *Program) Successors(n int) []int { return p.units[n].succs }

func (p *Program) Branch(n int) (int, int, bool) {
	u := p.units[n]
	if u.cond == nil {
		return 0, 0, false
	}
	return u.succs[0], u.succs[1], true
}

func (p *Program) Action(n int) Action { return p.units[n].action }

func (p *Program) Assume(n int, polarity bool) Action {
	return Assume{p.units[n].cond, polarity}
}

func (p *Program) Describe(n int) string {
	if u := p.units[n]; u.cond != nil {
		return fmt.Sprintf("%d: if %s", n, u.cond)
	}
	return fmt.Sprintf("%d: %s", n, p.units[n].action)
}

// CountingLoop is the program
//
//	0: i := 0
//	1: if i < bound goto 2 else goto 3
//	2: i++; goto 1
//	3: skip
func CountingLoop(bound int) *Program {
	p := NewProgram()
	p.Stmt(Const{"i", 0}, 1)
	p.If(Less{"i", bound}, 2, 3)
	p.Stmt(Incr{"i"}, 1)
	p.Stmt(Skip{})
	return p
}
