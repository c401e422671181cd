package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"paper-fold-renderer/internal/fold"
	"paper-fold-renderer/internal/imageio"
)

// Config holds the source, fold and output settings.
type Config struct {
	// Source
	Input string  `json:"input"`
	Scale float64 `json:"scale"` // source pixels per point

	// Fold
	Joints       int      `json:"joints"`
	Direction    string   `json:"direction"`
	Layout       string   `json:"layout,omitempty"` // optional, must agree with direction
	Angle        float64  `json:"angle"`
	Perspective  float64  `json:"perspective"`
	UnfoldExtent *float64 `json:"unfold_extent,omitempty"`

	// Sweep (animate)
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
	Frames     int     `json:"frames"`

	// Solver
	SolverStrategy      string  `json:"solver_strategy"`
	SolverStep          float64 `json:"solver_step"`
	SolverMaxIterations int     `json:"solver_max_iterations"`
	SolverTolerance     float64 `json:"solver_tolerance"`

	// Output
	OutputDir   string  `json:"output_dir"`
	OutputScale float64 `json:"output_scale"` // output pixels per point, 0 = source scale
	Supersample int     `json:"supersample"`
	Format      string  `json:"format"`
	Crop        string  `json:"crop"` // "", "footprint" or "alpha"
	Workers     int     `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Zero values leave the file setting alone; Angle is a pointer because 0 is
// a meaningful override.
type Flags struct {
	Input       string
	OutputDir   string
	Joints      int
	Direction   string
	Angle       *float64
	Perspective float64
	Frames      int
	Format      string
	Supersample int
	Workers     int
}

// Resolve applies flag overrides, then fills any empty field with its default.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Input != "" {
		c.Input = flags.Input
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Joints > 0 {
		c.Joints = flags.Joints
	}
	if flags.Direction != "" {
		c.Direction = flags.Direction
	}
	if flags.Angle != nil {
		c.Angle = *flags.Angle
	}
	if flags.Perspective > 0 {
		c.Perspective = flags.Perspective
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Resolve input relative to the working directory
	if c.Input != "" && !filepath.IsAbs(c.Input) {
		if abs, err := filepath.Abs(c.Input); err == nil {
			c.Input = abs
		}
	}

	// Defaults
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.Joints <= 0 {
		c.Joints = 3
	}
	if c.Direction == "" {
		c.Direction = fold.TopToBottom.String()
	}
	if c.Perspective <= 0 {
		c.Perspective = fold.DefaultPerspectiveDistance
	}
	if c.Frames <= 0 {
		c.Frames = 1
	}
	if c.StartAngle == 0 && c.EndAngle == 0 {
		c.EndAngle = 90
	}
	if c.SolverStep <= 0 {
		c.SolverStep = fold.DefaultSolverStep
	}
	if c.SolverMaxIterations <= 0 {
		c.SolverMaxIterations = fold.DefaultSolverIterations
	}
	if c.SolverTolerance <= 0 {
		c.SolverTolerance = fold.DefaultSolverTolerance
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.OutputScale <= 0 {
		c.OutputScale = c.Scale
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Format == "" {
		c.Format = imageio.FormatWebP.String()
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// FoldDirection parses Direction and checks it against Layout when one is
// given.
func (c *Config) FoldDirection() (fold.Direction, error) {
	dir, err := fold.ParseDirection(c.Direction)
	if err != nil {
		return 0, fmt.Errorf("config: %w", err)
	}
	if c.Layout != "" {
		layout, err := fold.ParseLayout(c.Layout)
		if err != nil {
			return 0, fmt.Errorf("config: %w", err)
		}
		if err := fold.CheckLayout(dir, layout); err != nil {
			return 0, fmt.Errorf("config: %w", err)
		}
	}
	return dir, nil
}

// SolverOptions builds the solver settings.
func (c *Config) SolverOptions() (fold.SolverOptions, error) {
	strategy, err := fold.ParseStrategy(c.SolverStrategy)
	if err != nil {
		return fold.SolverOptions{}, fmt.Errorf("config: %w", err)
	}
	return fold.SolverOptions{
		Strategy:      strategy,
		Step:          c.SolverStep,
		MaxIterations: c.SolverMaxIterations,
		Tolerance:     c.SolverTolerance,
	}, nil
}

// EngineOptions returns the options for fold.New. The angle is left out;
// callers set it per frame.
func (c *Config) EngineOptions() ([]fold.Option, error) {
	solver, err := c.SolverOptions()
	if err != nil {
		return nil, err
	}
	return []fold.Option{
		fold.WithPerspectiveDistance(c.Perspective),
		fold.WithSolverOptions(solver),
	}, nil
}

// OutputFormat parses Format.
func (c *Config) OutputFormat() (imageio.Format, error) {
	f, err := imageio.ParseFormat(c.Format)
	if err != nil {
		return 0, fmt.Errorf("config: %w", err)
	}
	return f, nil
}

// Validate checks every enumerated field without touching the filesystem.
func (c *Config) Validate() error {
	if _, err := c.FoldDirection(); err != nil {
		return err
	}
	if _, err := c.SolverOptions(); err != nil {
		return err
	}
	if _, err := c.OutputFormat(); err != nil {
		return err
	}
	switch c.Crop {
	case "", "footprint", "alpha":
	default:
		return fmt.Errorf("config: unknown crop mode %q", c.Crop)
	}
	return nil
}
