package solver

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/cs-au-dk/absint/analysis/absint"
	"github.com/cs-au-dk/absint/config"
)

// Domain is the part of an abstract domain solvers rely on. Every
// absint.Domain, and hence every absint.Lattice, satisfies it.
type Domain[S any] interface {
	Bot() S
	Leq(x, y S) bool
}

// Solver computes a solution of an equation system in place.
type Solver[S any] interface {
	Solve(sys *absint.System[S], dom Domain[S]) Stats
}

// Stats summarizes a solver run.
type Stats struct {
	// Number of equation updates.
	Updates int
	// Number of updates after which dependent equations were queued.
	Changes int
}

func (s Stats) add(o Stats) Stats {
	return Stats{s.Updates + o.Updates, s.Changes + o.Changes}
}

// New creates the solver selected by the configuration: widening followed
// by narrowing if both are enabled, plain chaotic iteration otherwise.
func New[S any](cfg config.Config) Solver[S] {
	if cfg.Solver.NoColorize {
		color.NoColor = true
	}

	log := NewLogger(cfg.Solver, os.Stderr)
	if cfg.Analysis.Widening && cfg.Analysis.Narrowing {
		return NewWideningNarrowing[S](log)
	}
	return NewChaoticIteration[S](log)
}

// NewLogger creates a logger at the level of the configuration.
func NewLogger(cfg config.SolverConfig, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(cfg.Level())
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:    color.NoColor,
		DisableTimestamp: true,
	})
	return log
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.PanicLevel)
	return log
}

func checkInitialized[S any](sys *absint.System[S]) {
	if sys.AllInitialized() {
		return
	}

	names := []string{}
	for _, v := range sys.AllVars() {
		if !v.Initialized() {
			names = append(names, v.Name())
		}
	}
	panic(absint.Fault(absint.ErrUninitialized, "%s after solving", strings.Join(names, ", ")))
}
