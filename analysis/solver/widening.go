package solver

import (
	"github.com/sirupsen/logrus"

	"github.com/cs-au-dk/absint/analysis/absint"
)

// WideningNarrowing iterates up to a fixed point with the phased operations
// of the system in their widening phase, then switches them to narrowing and
// iterates down.
type WideningNarrowing[S any] struct {
	ChaoticIteration[S]
}

func NewWideningNarrowing[S any](log *logrus.Logger) *WideningNarrowing[S] {
	return &WideningNarrowing[S]{*NewChaoticIteration[S](log)}
}

func (s *WideningNarrowing[S]) Solve(sys *absint.System[S], dom Domain[S]) Stats {
	phased := []*absint.PhasedOperation[S]{}
	seen := map[*absint.PhasedOperation[S]]bool{}
	for _, eq := range sys.Equations() {
		if p, ok := eq.Op().(*absint.PhasedOperation[S]); ok && !seen[p] {
			seen[p] = true
			p.SetPhase(absint.WidenPhase)
			phased = append(phased, p)
		}
	}

	sys.InitializeValues(dom.Bot())
	stats := s.IterateUp(sys, dom)

	for _, p := range phased {
		p.Advance()
	}

	s.log.WithField("operations", len(phased)).Debug("Switched to narrowing")

	stats = stats.add(s.IterateDown(sys, dom))
	checkInitialized(sys)
	s.done(sys, stats)
	return stats
}
