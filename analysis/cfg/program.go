package cfg

// Program is the control-flow graph of a procedure as consumed by Build.
// N identifies control-flow units and A is the type of their actions.
type Program[N comparable, A any] interface {
	// Entry is the unit where execution starts.
	Entry() N
	// Units returns all units in program order.
	Units() []N
	// Successors returns the successors of a unit that is not a branch.
	Successors(n N) []N
	// Branch returns the targets of a two-way branch. The last result is
	// false if n is not a branch.
	Branch(n N) (onTrue, onFalse N, ok bool)
	// Action returns the action of a unit that is not a branch.
	Action(n N) A
	// Assume returns the action assuming the branch condition of n
	// evaluates to polarity.
	Assume(n N, polarity bool) A
	// Describe returns a human-readable description of n.
	Describe(n N) string
}

// successors returns the targets of n, whether it is a branch or not.
func successors[N comparable, A any](p Program[N, A], n N) []N {
	if t, f, ok := p.Branch(n); ok {
		return []N{t, f}
	}
	return p.Successors(n)
}
