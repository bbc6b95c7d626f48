package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Analysis.Widening)
	assert.True(t, cfg.Analysis.Narrowing)
	assert.True(t, cfg.Analysis.AggressiveLoopJoin)
	assert.False(t, cfg.Solver.Debug)
	assert.Equal(t, logrus.WarnLevel, cfg.Solver.Level())
	require.NoError(t, cfg.Validate())
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse(`
[analysis]
narrowing = false

[solver]
debug = true
`)
	require.NoError(t, err)

	assert.True(t, cfg.Analysis.Widening)
	assert.False(t, cfg.Analysis.Narrowing)
	assert.True(t, cfg.Analysis.AggressiveLoopJoin)
	assert.True(t, cfg.Solver.Debug)
	assert.Equal(t, logrus.DebugLevel, cfg.Solver.Level())
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":    "[analysis]\nwidenning = true\n",
		"bad level":      "[solver]\nlog_level = \"loud\"\n",
		"bad syntax":     "[analysis\n",
		"narrow w/o wid": "[analysis]\nwidening = false\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(doc)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absint.toml")
	require.NoError(t, os.WriteFile(path, []byte("[solver]\nlog_level = \"trace\"\nno_colorize = true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, logrus.TraceLevel, cfg.Solver.Level())
	assert.True(t, cfg.Solver.NoColorize)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
