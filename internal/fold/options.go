package fold

import "paper-fold-renderer/internal/mathutil"

// Option configures an Engine during construction.
//
// Example:
//
//	e, err := fold.New(capture, 3, fold.TopToBottom,
//		fold.WithInitialAngle(20),
//		fold.WithPerspectiveDistance(500))
type Option func(*options)

type options struct {
	angle       float64
	perspective float64
	base        *mathutil.Rect
	solver      SolverOptions
}

func defaultOptions() options {
	return options{
		perspective: DefaultPerspectiveDistance,
		solver:      DefaultSolverOptions(),
	}
}

// WithInitialAngle sets the fold angle, in degrees, applied right after the
// chain is built.
func WithInitialAngle(deg float64) Option {
	return func(o *options) {
		o.angle = deg
	}
}

// WithPerspectiveDistance sets the eye distance of the shared projection.
// Smaller values give stronger distortion.
func WithPerspectiveDistance(d float64) Option {
	return func(o *options) {
		o.perspective = d
	}
}

// WithBaseBounds overrides the rectangle the footprint is scaled from.
// Hosts that display the fold inside a view of a different size pass that
// view's bounds here. The default is the container bounds.
func WithBaseBounds(r mathutil.Rect) Option {
	return func(o *options) {
		o.base = &r
	}
}

// WithSolverOptions replaces the unfold-extent solver settings.
func WithSolverOptions(s SolverOptions) Option {
	return func(o *options) {
		o.solver = s
	}
}
