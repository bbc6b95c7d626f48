package absint

// ErrorState is implemented by abstract states that carry possible error
// findings, e.g. a possible assertion violation. Solvers treat such states
// like any other state.
type ErrorState interface {
	Messages() []string
}

// Finding is an error reported by the state of a variable.
type Finding[S any] struct {
	Var      *Var[S]
	Equation *Equation[S]
	Messages []string
}

// Findings collects the error messages of all variables whose value
// implements ErrorState and reports at least one message.
func (sys *System[S]) Findings() (res []Finding[S]) {
	for _, v := range sys.vars {
		if !v.initialized {
			continue
		}

		es, ok := any(v.value).(ErrorState)
		if !ok {
			continue
		}

		if msgs := es.Messages(); len(msgs) > 0 {
			res = append(res, Finding[S]{v, sys.defs[v], msgs})
		}
	}
	return
}
