package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// Config holds the options of an analysis run.
type Config struct {
	Analysis AnalysisConfig `toml:"analysis"`
	Solver   SolverConfig   `toml:"solver"`
}

type AnalysisConfig struct {
	// Insert widening/narrowing operations at loop heads.
	Widening bool `toml:"widening"`
	// Run a descending iteration after widening.
	Narrowing bool `toml:"narrowing"`
	// Collapse disjunctive states at loop heads.
	AggressiveLoopJoin bool `toml:"aggressive_loop_join"`
}

type SolverConfig struct {
	// Trace every equation update.
	Debug bool `toml:"debug"`
	// A logrus level name.
	LogLevel   string `toml:"log_level"`
	NoColorize bool   `toml:"no_colorize"`
}

var defaultConfig = Config{
	Analysis: AnalysisConfig{
		Widening:           true,
		Narrowing:          true,
		AggressiveLoopJoin: true,
	},
	Solver: SolverConfig{
		LogLevel: "warning",
	},
}

// Default returns the default configuration.
func Default() Config {
	return defaultConfig
}

// Parse decodes a TOML document. Options not mentioned in the document
// keep their default values.
func Parse(doc string) (Config, error) {
	cfg := Default()
	meta, err := toml.Decode(doc, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decoding configuration: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown configuration keys: %s", strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the configuration from the TOML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the consistency of the options.
func (cfg Config) Validate() error {
	if _, err := logrus.ParseLevel(cfg.Solver.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if cfg.Analysis.Narrowing && !cfg.Analysis.Widening {
		return fmt.Errorf("narrowing requires widening")
	}
	return nil
}

// Level returns the effective log level of solvers. Debugging lowers the
// level to at least debug.
func (c SolverConfig) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		lvl = logrus.WarnLevel
	}
	if c.Debug && lvl < logrus.DebugLevel {
		lvl = logrus.DebugLevel
	}
	return lvl
}
