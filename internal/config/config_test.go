package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paper-fold-renderer/internal/fold"
	"paper-fold-renderer/internal/imageio"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadAndResolve(t *testing.T) {
	path := writeConfig(t, `{
		"input": "/tmp/card.png",
		"joints": 5,
		"direction": "right-to-left",
		"perspective": 500,
		"frames": 12,
		"solver_strategy": "step",
		"format": "png"
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)

	angle := 0.0
	cfg.Resolve(Flags{Joints: 7, Angle: &angle, Workers: 2})

	assert.Equal(t, "/tmp/card.png", cfg.Input)
	assert.Equal(t, 7, cfg.Joints, "flag wins")
	assert.Equal(t, 500.0, cfg.Perspective)
	assert.Equal(t, 12, cfg.Frames)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 1.0, cfg.Scale)
	assert.Equal(t, 1.0, cfg.OutputScale)
	assert.Equal(t, 90.0, cfg.EndAngle)

	dir, err := cfg.FoldDirection()
	require.NoError(t, err)
	assert.Equal(t, fold.RightToLeft, dir)

	solver, err := cfg.SolverOptions()
	require.NoError(t, err)
	assert.Equal(t, fold.StrategyStep, solver.Strategy)
	assert.Equal(t, fold.DefaultSolverStep, solver.Step)
	assert.Equal(t, fold.DefaultSolverIterations, solver.MaxIterations)

	f, err := cfg.OutputFormat()
	require.NoError(t, err)
	assert.Equal(t, imageio.FormatPNG, f)
	assert.NoError(t, cfg.Validate())
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})
	assert.Equal(t, 3, cfg.Joints)
	assert.Equal(t, "top-to-bottom", cfg.Direction)
	assert.Equal(t, fold.DefaultPerspectiveDistance, cfg.Perspective)
	assert.Equal(t, 2, cfg.Supersample)
	assert.Equal(t, "webp", cfg.Format)
	assert.Positive(t, cfg.Workers)
	assert.NoError(t, cfg.Validate())
}

func TestLayoutMustAgree(t *testing.T) {
	cfg := Config{Direction: "top-to-bottom", Layout: "horizontal"}
	cfg.Resolve(Flags{})
	_, err := cfg.FoldDirection()
	assert.ErrorIs(t, err, fold.ErrIncompatibleDirectionLayout)
	assert.Error(t, cfg.Validate())

	cfg.Layout = "vertical"
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejects(t *testing.T) {
	tests := map[string]Config{
		"direction": {Direction: "sideways"},
		"layout":    {Layout: "diagonal"},
		"format":    {Format: "gif"},
		"strategy":  {SolverStrategy: "newton"},
		"crop":      {Crop: "circle"},
	}
	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			cfg.Resolve(Flags{})
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, `{"joints": "many"}`))
	assert.Error(t, err)
}
