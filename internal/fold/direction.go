package fold

import (
	"fmt"
	"strings"

	"paper-fold-renderer/internal/mathutil"
)

// Direction is the edge-to-edge direction in which the chain closes.
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
	TopToBottom
	BottomToTop
)

// Layout is the axis along which the source is cut into strips.
type Layout int

const (
	Horizontal Layout = iota
	Vertical
)

var directionNames = [...]string{
	LeftToRight: "left-to-right",
	RightToLeft: "right-to-left",
	TopToBottom: "top-to-bottom",
	BottomToTop: "bottom-to-top",
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

func (d Direction) Valid() bool {
	return d >= LeftToRight && d <= BottomToTop
}

// Layout derives the strip layout from the direction. There is no other way
// to obtain a layout for an engine.
func (d Direction) Layout() Layout {
	if d == TopToBottom || d == BottomToTop {
		return Vertical
	}
	return Horizontal
}

// Reversed reports whether the chain is anchored at the far edge, in which
// case joint i displays strip M-1-i.
func (d Direction) Reversed() bool {
	return d == RightToLeft || d == BottomToTop
}

// Axis is the hinge rotation axis: y for horizontal layouts, x for vertical.
func (l Layout) Axis() mathutil.Vec3 {
	if l == Vertical {
		return mathutil.AxisX
	}
	return mathutil.AxisY
}

func (l Layout) String() string {
	switch l {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// CheckLayout validates a layout given independently of the direction.
func CheckLayout(d Direction, l Layout) error {
	if !d.Valid() {
		return invalidGeometry("unknown direction %d", int(d))
	}
	if l != Horizontal && l != Vertical {
		return invalidGeometry("unknown layout %d", int(l))
	}
	if d.Layout() != l {
		return fmt.Errorf("%w: %s cannot be used in a %s layout", ErrIncompatibleDirectionLayout, d, l)
	}
	return nil
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}

// ParseDirection accepts "left-to-right", "leftToRight", "ltr" and the like.
func ParseDirection(s string) (Direction, error) {
	switch normalizeName(s) {
	case "lefttoright", "ltr":
		return LeftToRight, nil
	case "righttoleft", "rtl":
		return RightToLeft, nil
	case "toptobottom", "ttb":
		return TopToBottom, nil
	case "bottomtotop", "btt":
		return BottomToTop, nil
	}
	return 0, fmt.Errorf("fold: unknown direction %q", s)
}

// ParseLayout accepts "horizontal" or "vertical".
func ParseLayout(s string) (Layout, error) {
	switch normalizeName(s) {
	case "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	}
	return 0, fmt.Errorf("fold: unknown layout %q", s)
}
