package testutil

import "fmt"

// Action is a statement of the toy language used to exercise domains.
type Action interface {
	fmt.Stringer
}

type (
	// Skip does nothing.
	Skip struct{}
	// Const assigns a constant.
	Const struct {
		Var   string
		Value int
	}
	// Copy assigns a variable to another.
	Copy struct {
		Dst, Src string
	}
	// Incr increments a variable.
	Incr struct {
		Var string
	}
	// Havoc assigns an unknown value.
	Havoc struct {
		Var string
	}
	// Assume restricts execution to states where Cond evaluates to
	// Polarity.
	Assume struct {
		Cond     Cond
		Polarity bool
	}
)

func (Skip) String() string    { return "skip" }
func (a Const) String() string { return fmt.Sprintf("%s := %d", a.Var, a.Value) }
func (a Copy) String() string  { return fmt.Sprintf("%s := %s", a.Dst, a.Src) }
func (a Incr) String() string  { return a.Var + "++" }
func (a Havoc) String() string { return a.Var + " := ?" }
func (a Assume) String() string {
	if a.Polarity {
		return "assume " + a.Cond.String()
	}
	return "assume !(" + a.Cond.String() + ")"
}

// Cond is a branch condition of the toy language.
type Cond interface {
	fmt.Stringer
	cond()
}

type (
	// Less compares a variable against a constant.
	Less struct {
		Var   string
		Bound int
	}
	// EqConst compares a variable with a constant.
	EqConst struct {
		Var   string
		Value int
	}
	// EqVar compares two variables.
	EqVar struct {
		Left, Right string
	}
)

func (Less) cond()    {}
func (EqConst) cond() {}
func (EqVar) cond()   {}

func (c Less) String() string    { return fmt.Sprintf("%s < %d", c.Var, c.Bound) }
func (c EqConst) String() string { return fmt.Sprintf("%s == %d", c.Var, c.Value) }
func (c EqVar) String() string   { return fmt.Sprintf("%s == %s", c.Left, c.Right) }
