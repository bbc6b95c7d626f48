package absint

// Phases of the loop-head operations built for widening and narrowing.
const (
	WidenPhase = iota
	NarrowPhase
)

// PhasedOperation switches between operations of the same arity. It is the
// only operation with mutable state: solvers move it to the next phase
// between fixed-point iterations.
type PhasedOperation[S any] struct {
	phases []Operation[S]
	phase  int
}

// Phased creates an operation that starts out as the first of the given
// operations.
func Phased[S any](phases ...Operation[S]) *PhasedOperation[S] {
	if len(phases) == 0 {
		panic(Fault(ErrArity, "phased operation without phases"))
	}
	for _, op := range phases[1:] {
		if op.Arity() != phases[0].Arity() {
			panic(Fault(ErrArity, "phases %s and %s disagree on arity", phases[0], op))
		}
	}

	return &PhasedOperation[S]{phases: phases}
}

func (p *PhasedOperation[S]) Arity() int { return p.phases[0].Arity() }

func (p *PhasedOperation[S]) ApplyN(inputs []S) S {
	return Apply(p.Current(), inputs...)
}

func (p *PhasedOperation[S]) String() string {
	return p.Current().String()
}

func (p *PhasedOperation[S]) Format(args []string) string {
	return Format(p.Current(), args...)
}

// Current returns the operation of the current phase.
func (p *PhasedOperation[S]) Current() Operation[S] { return p.phases[p.phase] }

// Phase returns the index of the current phase.
func (p *PhasedOperation[S]) Phase() int { return p.phase }

// Phases returns the number of phases.
func (p *PhasedOperation[S]) Phases() int { return len(p.phases) }

// Advance moves to the next phase.
func (p *PhasedOperation[S]) Advance() {
	p.SetPhase(p.phase + 1)
}

// SetPhase moves to the given phase.
func (p *PhasedOperation[S]) SetPhase(phase int) {
	if phase < 0 || phase >= len(p.phases) {
		panic(Fault(ErrUnsupportedOperation, "phase %d of %s out of range for %d phases", phase, p, len(p.phases)))
	}
	p.phase = phase
}
