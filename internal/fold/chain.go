package fold

import (
	"paper-fold-renderer/internal/mathutil"
)

// NoParent marks a joint mounted directly under the perspective container.
const NoParent = -1

// JointNode is one hinge segment. Joints live in a flat slice; Parent is an
// index into the same slice, so joint i+1 hangs off joint i.
type JointNode struct {
	Index  int
	Parent int
	// Strip is the index of the StripImage this joint displays.
	Strip int
	// Anchor is the pivot, normalized to the joint's own bounds.
	Anchor mathutil.Point
	// Position is where the pivot sits in the parent's coordinate space.
	Position mathutil.Point
	Size     mathutil.Size
	// Transform is the joint's local rotation, rewritten on every angle update.
	Transform mathutil.Mat4
	// Shadow indexes Chain.Shadows, or is -1 for even joints.
	Shadow int
}

// Placement maps the joint's bounds into its parent's space:
// move the anchor to the origin, rotate, then move it to Position.
func (j *JointNode) Placement() mathutil.Mat4 {
	ax := j.Anchor.X * j.Size.Width
	ay := j.Anchor.Y * j.Size.Height
	return mathutil.Translation(-ax, -ay, 0).
		Then(j.Transform).
		Then(mathutil.Translation(j.Position.X, j.Position.Y, 0))
}

// ShadowOverlay darkens an odd joint's strip in proportion to fold progress.
type ShadowOverlay struct {
	Joint   int
	Frame   mathutil.Rect
	Opacity float64
}

// Chain is the built hinge chain plus the sizes the container needs.
type Chain struct {
	Direction Direction
	Joints    []JointNode
	Shadows   []ShadowOverlay
	StripSize mathutil.Size
	// ContainerSize is the unfolded extent of all strips laid end to end.
	ContainerSize mathutil.Size
	// Axis is the hinge axis shared by every joint.
	Axis mathutil.Vec3
}

// BuildChain wires strips into a linear hinge chain for the given direction.
func BuildChain(strips []StripImage, dir Direction) (*Chain, error) {
	if !dir.Valid() {
		return nil, invalidGeometry("unknown direction %d", int(dir))
	}
	m := len(strips)
	if m == 0 {
		return nil, invalidGeometry("no strips")
	}

	layout := dir.Layout()
	w, h := strips[0].Width, strips[0].Height
	if !(w > 0) || !(h > 0) {
		return nil, invalidGeometry("strip size %gx%g", w, h)
	}

	c := &Chain{
		Direction: dir,
		Joints:    make([]JointNode, m),
		StripSize: mathutil.Size{Width: w, Height: h},
		Axis:      layout.Axis(),
	}
	if layout == Horizontal {
		c.ContainerSize = mathutil.Size{Width: w * float64(m), Height: h}
	} else {
		c.ContainerSize = mathutil.Size{Width: w, Height: h * float64(m)}
	}

	for i := 0; i < m; i++ {
		j := JointNode{
			Index:     i,
			Parent:    i - 1,
			Strip:     i,
			Size:      c.StripSize,
			Transform: mathutil.Mat4Identity(),
			Shadow:    -1,
		}
		if i == 0 {
			j.Parent = NoParent
		}
		if dir.Reversed() {
			j.Strip = m - 1 - i
		}

		switch dir {
		case LeftToRight:
			j.Anchor = mathutil.Point{X: 0, Y: 0.5}
			j.Position = mathutil.Point{X: w, Y: h / 2}
			if i == 0 {
				j.Position.X = 0
			}
		case RightToLeft:
			j.Anchor = mathutil.Point{X: 1, Y: 0.5}
			j.Position = mathutil.Point{X: 0, Y: h / 2}
			if i == 0 {
				j.Position.X = w * float64(m)
			}
		case TopToBottom:
			j.Anchor = mathutil.Point{X: 0.5, Y: 0}
			j.Position = mathutil.Point{X: w / 2, Y: h}
			if i == 0 {
				j.Position.Y = 0
			}
		case BottomToTop:
			j.Anchor = mathutil.Point{X: 0.5, Y: 1}
			j.Position = mathutil.Point{X: w / 2, Y: 0}
			if i == 0 {
				j.Position.Y = h * float64(m)
			}
		}

		if i%2 == 1 {
			j.Shadow = len(c.Shadows)
			c.Shadows = append(c.Shadows, ShadowOverlay{
				Joint: i,
				Frame: mathutil.Rect{Width: w, Height: h},
			})
		}
		c.Joints[i] = j
	}
	return c, nil
}
