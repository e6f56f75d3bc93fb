package interaction

import "github.com/iwvelando/marketchart/pkg/mathutil"

// Size is a width and height in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Position is the top-left corner of a placed box.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Place positions a tooltip box of the given size next to the pointer,
// offset by pad. A box that would overflow the right or bottom edge of
// screen is flipped to the other side of the pointer on that axis, and the
// result is finally clamped to stay pad away from the edges.
func Place(pointer Position, box, screen Size, pad float64) Position {
	x := pointer.X + pad
	if x+box.Width > screen.Width {
		x = pointer.X - pad - box.Width
	}
	y := pointer.Y + pad
	if y+box.Height > screen.Height {
		y = pointer.Y - pad - box.Height
	}

	x = mathutil.Max(pad, mathutil.Min(x, screen.Width-box.Width-pad))
	y = mathutil.Max(pad, mathutil.Min(y, screen.Height-box.Height-pad))
	return Position{X: x, Y: y}
}
