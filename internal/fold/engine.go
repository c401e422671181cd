package fold

import (
	"fmt"
	"log/slog"
	"math"

	"paper-fold-renderer/internal/mathutil"
)

const (
	// MaxJointCount bounds the chain length.
	MaxJointCount = 255

	// MaxShadowDensity is the shadow opacity reached at a 90° fold.
	MaxShadowDensity = 0.8
)

// Engine owns the fold state: strips, joints, shadows, angle and footprint.
// An Engine is not safe for concurrent use; callers serialize access.
type Engine struct {
	source    RasterImage
	direction Direction
	strips    []StripImage
	chain     *Chain
	container *PerspectiveContainer
	base      mathutil.Rect
	solver    SolverOptions

	angle        float64
	unfoldExtent float64
	footprint    mathutil.Rect
}

// New captures the surface, slices it into jointCount+1 strips and builds the
// hinge chain for dir. Arguments are validated before rasterize is called;
// any failure returns no engine.
func New(rasterize RasterizeFunc, jointCount int, dir Direction, opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if !dir.Valid() {
		return nil, invalidGeometry("unknown direction %d", int(dir))
	}
	if jointCount < 1 || jointCount > MaxJointCount {
		return nil, invalidGeometry("joint count %d out of range [1, %d]", jointCount, MaxJointCount)
	}
	if !(o.perspective > 0) || math.IsInf(o.perspective, 0) {
		return nil, invalidGeometry("perspective distance %g must be positive and finite", o.perspective)
	}
	if err := o.solver.validate(); err != nil {
		return nil, err
	}
	if rasterize == nil {
		return nil, fmt.Errorf("fold: no rasterize function")
	}

	src, err := rasterize()
	if err != nil {
		return nil, fmt.Errorf("fold: rasterize: %w", err)
	}

	strips, err := Slice(src, jointCount, dir.Layout())
	if err != nil {
		return nil, err
	}
	chain, err := BuildChain(strips, dir)
	if err != nil {
		return nil, err
	}
	container, err := Configure(chain.ContainerSize, o.perspective)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		source:    src,
		direction: dir,
		strips:    strips,
		chain:     chain,
		container: container,
		base:      container.Bounds(),
		solver:    o.solver,
	}
	if o.base != nil {
		e.base = *o.base
	}
	e.SetAngle(o.angle)

	Logger().Debug("fold: engine built",
		slog.String("direction", dir.String()),
		slog.Int("strips", len(strips)),
		slog.String("strip", chain.StripSize.String()),
		slog.String("container", chain.ContainerSize.String()),
		slog.Float64("perspective", o.perspective))
	return e, nil
}

// NewWithLayout is New for callers that still specify the layout separately.
// A layout that contradicts dir fails with ErrIncompatibleDirectionLayout
// before anything is captured.
func NewWithLayout(rasterize RasterizeFunc, jointCount int, layout Layout, dir Direction, opts ...Option) (*Engine, error) {
	if err := CheckLayout(dir, layout); err != nil {
		return nil, err
	}
	return New(rasterize, jointCount, dir, opts...)
}

// ShadowOpacity is the crease shadow opacity for a fold angle in degrees.
// The result is not clamped and exceeds 1 beyond 112.5°.
func ShadowOpacity(angle float64) float64 {
	return math.Abs(MaxShadowDensity * (math.Abs(angle) / 90))
}

// JointAngle is the local rotation, in degrees, of joint i: the root turns
// by -angle and the rest alternate +2·angle, -2·angle so the chain zig-zags.
func JointAngle(i int, angle float64) float64 {
	switch {
	case i == 0:
		return -angle
	case i%2 == 1:
		return 2 * angle
	default:
		return -2 * angle
	}
}

// SetAngle sets the fold angle in degrees and synchronously recomputes every
// joint transform, shadow opacity and the footprint. Any value is accepted.
func (e *Engine) SetAngle(angle float64) {
	e.angle = angle
	axis := e.chain.Axis
	for i := range e.chain.Joints {
		e.chain.Joints[i].Transform = mathutil.RotationAbout(JointAngle(i, angle), axis)
	}

	opacity := ShadowOpacity(angle)
	for i := range e.chain.Shadows {
		e.chain.Shadows[i].Opacity = opacity
	}

	// Only the root's axis-aligned scale is used; deeper joints are ignored.
	scaled := e.chain.Joints[0].Transform.Affine().ScaleSize(e.base.Size())
	e.footprint = mathutil.Rect{
		X:      e.base.X,
		Y:      e.base.Y,
		Width:  scaled.Width,
		Height: scaled.Height,
	}
}

// Angle returns the current fold angle in degrees.
func (e *Engine) Angle() float64 { return e.angle }

// Footprint returns the bounding box derived from the last SetAngle.
func (e *Engine) Footprint() mathutil.Rect { return e.footprint }

// Layout returns the strip layout derived from the direction.
func (e *Engine) Layout() Layout { return e.direction.Layout() }

func (e *Engine) Direction() Direction { return e.direction }

// StripCount is jointCount+1.
func (e *Engine) StripCount() int { return len(e.strips) }

// Strips returns copies of the slices in source order, pixels included.
func (e *Engine) Strips() []StripImage {
	out := make([]StripImage, len(e.strips))
	for i, s := range e.strips {
		out[i] = s.clone()
	}
	return out
}

// Source returns the captured image the strips were cut from.
func (e *Engine) Source() RasterImage { return e.source }

// Container returns the root perspective container.
func (e *Engine) Container() *PerspectiveContainer { return e.container }

// BaseBounds returns the rectangle the footprint is scaled from.
func (e *Engine) BaseBounds() mathutil.Rect { return e.base }

// PerspectiveDistance returns the eye distance of the shared projection.
func (e *Engine) PerspectiveDistance() float64 { return e.container.Distance() }

// SetPerspectiveDistance updates the container projection in place; the
// chain is left untouched.
func (e *Engine) SetPerspectiveDistance(d float64) error {
	if err := e.container.SetDistance(d); err != nil {
		return err
	}
	Logger().Debug("fold: perspective updated", slog.Float64("distance", d))
	return nil
}

// ShadowOpacities returns the opacity of each shadow in joint order.
func (e *Engine) ShadowOpacities() []float64 {
	out := make([]float64, len(e.chain.Shadows))
	for i, s := range e.chain.Shadows {
		out[i] = s.Opacity
	}
	return out
}

// WorldTransform maps joint i's bounds into container space, including the
// perspective projection: placement(i) × placement(parent) × ... × container.
func (e *Engine) WorldTransform(i int) mathutil.Mat4 {
	m := mathutil.Mat4Identity()
	for j := i; j != NoParent; j = e.chain.Joints[j].Parent {
		m = m.Then(e.chain.Joints[j].Placement())
	}
	return m.Then(e.container.ChildTransform())
}

// JointSnapshot is a read-only view of one joint for a compositor.
type JointSnapshot struct {
	Index     int
	Parent    int
	Anchor    mathutil.Point
	Position  mathutil.Point
	Size      mathutil.Size
	Transform mathutil.Mat4
	World     mathutil.Mat4
	// Content is a copy of the joint's strip. Its Pixels buffer is shared
	// with the engine and must not be written.
	Content   StripImage
	HasShadow bool
	// ShadowOpacity is the raw formula value; renderers clamp it.
	ShadowOpacity float64
}

// Joints returns a snapshot of every joint in chain order.
func (e *Engine) Joints() []JointSnapshot {
	out := make([]JointSnapshot, len(e.chain.Joints))
	for i := range e.chain.Joints {
		j := &e.chain.Joints[i]
		s := JointSnapshot{
			Index:     j.Index,
			Parent:    j.Parent,
			Anchor:    j.Anchor,
			Position:  j.Position,
			Size:      j.Size,
			Transform: j.Transform,
			World:     e.WorldTransform(i),
			Content:   e.strips[j.Strip],
		}
		if j.Shadow >= 0 {
			s.HasShadow = true
			s.ShadowOpacity = e.chain.Shadows[j.Shadow].Opacity
		}
		out[i] = s
	}
	return out
}
