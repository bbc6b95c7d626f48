package absint

// Domain is the contract every abstract domain over states S and program
// actions A implements. Optional operations are provided by implementing the
// capability interfaces below; MakeLattice resolves them once.
type Domain[S, A any] interface {
	// Bot is the least element.
	Bot() S
	// Top is the greatest element.
	Top() S
	// Join is an upper bound of x and y.
	Join(x, y S) S
	// Leq is the partial order of the domain.
	Leq(x, y S) bool
	// Transformer returns the abstract semantics of action.
	Transformer(action A) UnaryOperation[S]
}

type (
	// Meeter is implemented by domains with a lower bound operation.
	Meeter[S any] interface {
		Meet(x, y S) S
	}

	// LoopJoiner is implemented by domains with a more aggressive join for
	// loop heads.
	LoopJoiner[S any] interface {
		LoopJoin(x, y S) S
	}

	// Widener is implemented by domains with a widening operator. Domains
	// of infinite height must implement it for the analysis to terminate.
	Widener[S any] interface {
		Widen(x, y S) S
	}

	// Narrower is implemented by domains with a narrowing operator.
	Narrower[S any] interface {
		Narrow(x, y S) S
	}

	// Reducer is implemented by domains with a reduction: Reduce(x) ≤ x and
	// denotes the same concrete states. Lattice applies it to every meet.
	Reducer[S any] interface {
		Reduce(x S) S
	}
)
