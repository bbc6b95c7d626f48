package solver

import (
	"github.com/sirupsen/logrus"

	"github.com/cs-au-dk/absint/analysis/absint"
	"github.com/cs-au-dk/absint/utils/pq"
)

// ChaoticIteration computes the least fixed point of an equation system
// with a worklist, starting from bottom. Termination relies on the domain:
// the operations of the system must not produce infinite ascending chains.
type ChaoticIteration[S any] struct {
	log *logrus.Logger
}

// NewChaoticIteration creates a solver logging to log, or nowhere if log
// is nil.
func NewChaoticIteration[S any](log *logrus.Logger) *ChaoticIteration[S] {
	if log == nil {
		log = quietLogger()
	}
	return &ChaoticIteration[S]{log}
}

// Solve sets every variable to bottom and iterates up to a fixed point.
func (s *ChaoticIteration[S]) Solve(sys *absint.System[S], dom Domain[S]) Stats {
	sys.InitializeValues(dom.Bot())
	stats := s.IterateUp(sys, dom)
	checkInitialized(sys)
	s.done(sys, stats)
	return stats
}

// IterateUp processes the equations without arguments, or all equations if
// there are none, and queues the dependents of every variable whose value
// is not below its previous value. All variables must be initialized.
func (s *ChaoticIteration[S]) IterateUp(sys *absint.System[S], dom Domain[S]) Stats {
	seeds := sys.Heads()
	if len(seeds) == 0 {
		seeds = sys.Equations()
	}

	return s.iterate("up", sys, seeds, func(prev, next S) bool {
		return !dom.Leq(next, prev)
	})
}

// IterateDown processes all equations, and queues the dependents of every
// variable whose value strictly decreased. All variables must be
// initialized.
func (s *ChaoticIteration[S]) IterateDown(sys *absint.System[S], dom Domain[S]) Stats {
	return s.iterate("down", sys, sys.Equations(), func(prev, next S) bool {
		return dom.Leq(next, prev) && !dom.Leq(prev, next)
	})
}

func (s *ChaoticIteration[S]) iterate(
	direction string,
	sys *absint.System[S],
	seeds []*absint.Equation[S],
	changed func(prev, next S) bool,
) (stats Stats) {
	// Lower priorities first. Ties are broken by the order in which
	// equations were added to the system.
	worklist := pq.Empty(func(a, b *absint.Equation[S]) bool {
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.Index() < b.Index()
	})
	for _, eq := range seeds {
		worklist.Add(eq)
	}

	debug := s.log.IsLevelEnabled(logrus.DebugLevel)
	trace := s.log.IsLevelEnabled(logrus.TraceLevel)

	for !worklist.IsEmpty() {
		eq := worklist.GetNext()
		stats.Updates++

		if debug {
			s.log.WithFields(logrus.Fields{
				"direction": direction,
				"iteration": stats.Updates,
				"priority":  eq.Priority,
				"worklist":  worklist.Len(),
			}).Debug(eq)
		}

		lhs := eq.Lhs()
		prev := lhs.Value()
		next := eq.Update()

		if trace {
			s.log.WithField("value", next).Trace(lhs)
		}

		if !changed(prev, next) {
			continue
		}

		stats.Changes++
		for _, dep := range sys.DependentEquations(lhs) {
			if dep != eq {
				worklist.Add(dep)
			}
		}
	}

	return
}

func (s *ChaoticIteration[S]) done(sys *absint.System[S], stats Stats) {
	s.log.WithFields(logrus.Fields{
		"equations": sys.Len(),
		"updates":   stats.Updates,
		"changes":   stats.Changes,
	}).Info("Fixed point reached")

	if s.log.IsLevelEnabled(logrus.DebugLevel) {
		s.log.Debug("Solution:\n" + sys.Solution().Pretty())
	}
}
