package fold

import (
	"math"

	"paper-fold-renderer/internal/mathutil"
)

// DefaultPerspectiveDistance is the eye distance used when none is given.
const DefaultPerspectiveDistance = 700.0

// PerspectiveContainer is the root node of the chain. Its sublayer transform
// carries the single-point projection shared by every joint. The distance
// only changes through SetDistance, which keeps the sublayer in step.
type PerspectiveContainer struct {
	size     mathutil.Size
	distance float64
	// sublayer is identity with m34 = -1/distance.
	sublayer mathutil.Mat4
}

// Configure creates a container of the given size.
func Configure(size mathutil.Size, distance float64) (*PerspectiveContainer, error) {
	c := &PerspectiveContainer{size: size}
	if err := c.SetDistance(distance); err != nil {
		return nil, err
	}
	return c, nil
}

// SetDistance updates the projection in place.
func (c *PerspectiveContainer) SetDistance(distance float64) error {
	if !(distance > 0) || math.IsInf(distance, 0) {
		return invalidGeometry("perspective distance %g must be positive and finite", distance)
	}
	c.distance = distance
	c.sublayer = mathutil.Perspective(distance)
	return nil
}

func (c *PerspectiveContainer) Size() mathutil.Size { return c.size }

// Distance is the eye distance of the projection.
func (c *PerspectiveContainer) Distance() float64 { return c.distance }

// Sublayer returns the projection matrix applied to every child.
func (c *PerspectiveContainer) Sublayer() mathutil.Mat4 { return c.sublayer }

// Bounds is the container rectangle at the origin.
func (c *PerspectiveContainer) Bounds() mathutil.Rect {
	return mathutil.Rect{Width: c.size.Width, Height: c.size.Height}
}

// ChildTransform applies the sublayer about the container's center, which is
// where the vanishing point sits.
func (c *PerspectiveContainer) ChildTransform() mathutil.Mat4 {
	cx, cy := c.size.Width/2, c.size.Height/2
	return mathutil.Translation(-cx, -cy, 0).
		Then(c.sublayer).
		Then(mathutil.Translation(cx, cy, 0))
}
