package fold

import (
	"fmt"
	"log/slog"
	"math"

	"paper-fold-renderer/internal/mathutil"
)

// Strategy selects how the unfold extent is turned into an angle.
type Strategy int

const (
	// StrategyBisect bisects |angle| over [0°, 90°], where the footprint
	// shrinks monotonically.
	StrategyBisect Strategy = iota
	// StrategyStep nudges the angle by a fixed step until the footprint
	// crosses the target.
	StrategyStep
)

func (s Strategy) String() string {
	switch s {
	case StrategyBisect:
		return "bisect"
	case StrategyStep:
		return "step"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy accepts "bisect" or "step".
func ParseStrategy(s string) (Strategy, error) {
	switch normalizeName(s) {
	case "bisect", "bisection", "":
		return StrategyBisect, nil
	case "step", "stepping":
		return StrategyStep, nil
	}
	return 0, fmt.Errorf("fold: unknown solver strategy %q", s)
}

const (
	DefaultSolverStep = 0.5
	// DefaultSolverIterations is ceil(180 / DefaultSolverStep).
	DefaultSolverIterations = 360
	DefaultSolverTolerance  = 1e-3
)

// SolverOptions bounds the unfold-extent search.
type SolverOptions struct {
	Strategy Strategy
	// Step is the angle increment in degrees for StrategyStep.
	Step float64
	// MaxIterations caps the number of angle updates.
	MaxIterations int
	// Tolerance is the accepted distance between extent and target, in points.
	Tolerance float64
}

func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Strategy:      StrategyBisect,
		Step:          DefaultSolverStep,
		MaxIterations: DefaultSolverIterations,
		Tolerance:     DefaultSolverTolerance,
	}
}

func (o SolverOptions) validate() error {
	if o.Strategy != StrategyBisect && o.Strategy != StrategyStep {
		return fmt.Errorf("fold: unknown solver strategy %d", int(o.Strategy))
	}
	if !(o.Step > 0) || math.IsInf(o.Step, 0) {
		return fmt.Errorf("fold: solver step %g must be positive", o.Step)
	}
	if o.MaxIterations < 1 {
		return fmt.Errorf("fold: solver needs at least one iteration, got %d", o.MaxIterations)
	}
	if !(o.Tolerance >= 0) {
		return fmt.Errorf("fold: solver tolerance %g must not be negative", o.Tolerance)
	}
	return nil
}

// Controller is the part of the engine the solver drives. The solver only
// nudges the angle and reads the footprint back.
type Controller interface {
	Angle() float64
	SetAngle(float64)
	Footprint() mathutil.Rect
	Layout() Layout
}

// SolveResult describes where a solve ended.
type SolveResult struct {
	Angle      float64
	Extent     float64
	Iterations int
}

// Extent returns the footprint dimension along the layout axis.
func Extent(c Controller) float64 {
	fp := c.Footprint()
	if c.Layout() == Vertical {
		return fp.Height
	}
	return fp.Width
}

// Solve drives c until its extent reaches target. On ErrNonConvergence the
// controller is left at the closest angle seen and the result describes it.
func Solve(c Controller, target float64, opts SolverOptions) (SolveResult, error) {
	if err := opts.validate(); err != nil {
		return SolveResult{}, err
	}
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return SolveResult{Angle: c.Angle(), Extent: Extent(c)},
			fmt.Errorf("%w: target %g", ErrNonConvergence, target)
	}

	var (
		res SolveResult
		err error
	)
	if opts.Strategy == StrategyStep {
		res, err = solveStep(c, target, opts)
	} else {
		res, err = solveBisect(c, target, opts)
	}

	l := Logger()
	if err != nil {
		l.Warn("fold: unfold solve gave up",
			slog.Float64("target", target),
			slog.Float64("extent", res.Extent),
			slog.Float64("angle", res.Angle),
			slog.Int("iterations", res.Iterations),
			slog.String("strategy", opts.Strategy.String()))
	} else {
		l.Debug("fold: unfold solved",
			slog.Float64("target", target),
			slog.Float64("extent", res.Extent),
			slog.Float64("angle", res.Angle),
			slog.Int("iterations", res.Iterations))
	}
	return res, err
}

// tracker remembers the closest angle seen so a failed solve can fall back
// to it.
type tracker struct {
	c          Controller
	target     float64
	bestAngle  float64
	bestDist   float64
	iterations int
}

func newTracker(c Controller, target float64) *tracker {
	return &tracker{
		c:         c,
		target:    target,
		bestAngle: c.Angle(),
		bestDist:  math.Abs(Extent(c) - target),
	}
}

func (t *tracker) set(angle float64) float64 {
	t.c.SetAngle(angle)
	t.iterations++
	ext := Extent(t.c)
	if d := math.Abs(ext - t.target); d < t.bestDist {
		t.bestDist = d
		t.bestAngle = angle
	}
	return ext
}

func (t *tracker) result() SolveResult {
	return SolveResult{Angle: t.c.Angle(), Extent: Extent(t.c), Iterations: t.iterations}
}

func (t *tracker) fail(reason string) (SolveResult, error) {
	if t.c.Angle() != t.bestAngle {
		t.c.SetAngle(t.bestAngle)
	}
	return t.result(), fmt.Errorf("%w: %s after %d iterations", ErrNonConvergence, reason, t.iterations)
}

// magnitudeSign is +1 unless the fold currently opens the other way; steps
// toward and away from a flat sheet then follow the angle's sign.
func magnitudeSign(angle float64) float64 {
	if angle < 0 {
		return -1
	}
	return 1
}

func solveStep(c Controller, target float64, opts SolverOptions) (SolveResult, error) {
	t := newTracker(c, target)
	cur := Extent(c)
	if math.Abs(cur-target) <= opts.Tolerance {
		return t.result(), nil
	}

	sign := magnitudeSign(c.Angle())
	opening := cur < target
	for t.iterations < opts.MaxIterations {
		if opening {
			cur = t.set(c.Angle() - sign*opts.Step)
			if cur >= target {
				return t.result(), nil
			}
		} else {
			cur = t.set(c.Angle() + sign*opts.Step)
			if cur <= target {
				return t.result(), nil
			}
		}
		if math.Abs(cur-target) <= opts.Tolerance {
			return t.result(), nil
		}
	}
	return t.fail(fmt.Sprintf("extent %g never crossed %g", cur, target))
}

func solveBisect(c Controller, target float64, opts SolverOptions) (SolveResult, error) {
	t := newTracker(c, target)
	if math.Abs(Extent(c)-target) <= opts.Tolerance {
		return t.result(), nil
	}

	sign := magnitudeSign(c.Angle())
	lo, hi := 0.0, 90.0

	flat := t.set(sign * lo)
	if math.Abs(flat-target) <= opts.Tolerance {
		return t.result(), nil
	}
	if t.iterations >= opts.MaxIterations {
		return t.fail("iteration budget spent")
	}
	closed := t.set(sign * hi)
	if math.Abs(closed-target) <= opts.Tolerance {
		return t.result(), nil
	}
	if target > flat || target < closed {
		return t.fail(fmt.Sprintf("target %g outside reachable extent [%g, %g]", target, closed, flat))
	}

	for t.iterations < opts.MaxIterations {
		mid := (lo + hi) / 2
		ext := t.set(sign * mid)
		if math.Abs(ext-target) <= opts.Tolerance {
			return t.result(), nil
		}
		if ext > target {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < 1e-12 {
			break
		}
	}
	return t.fail("extent did not settle within tolerance")
}

// SetUnfoldExtent folds or unfolds until the footprint along the layout axis
// reaches target. The target is remembered even when the solve fails.
func (e *Engine) SetUnfoldExtent(target float64) error {
	e.unfoldExtent = target
	_, err := Solve(e, target, e.solver)
	return err
}

// UnfoldExtent returns the last requested target, not the current extent.
func (e *Engine) UnfoldExtent() float64 { return e.unfoldExtent }

// SolverOptions returns the engine's solver settings.
func (e *Engine) SolverOptions() SolverOptions { return e.solver }
