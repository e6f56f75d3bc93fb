// Package geometry maps aligned values to viewport coordinates: value and
// index scales, polyline paths and adaptive axis ticks.
package geometry

import (
	"github.com/iwvelando/marketchart/pkg/constants"
	"github.com/iwvelando/marketchart/pkg/mathutil"
)

// Padding is the space reserved around the plot area for axes and labels.
type Padding struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Viewport is the drawing surface in internal (viewBox) units.
type Viewport struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding Padding `json:"padding"`
}

// DefaultViewport returns the 1200x400 surface used by the index charts.
func DefaultViewport() Viewport {
	return Viewport{
		Width:  constants.DefaultViewportWidth,
		Height: constants.DefaultViewportHeight,
		Padding: Padding{
			Top:    constants.DefaultPaddingTop,
			Right:  constants.DefaultPaddingRight,
			Bottom: constants.DefaultPaddingBottom,
			Left:   constants.DefaultPaddingLeft,
		},
	}
}

// NewViewport builds a viewport whose plot area is never empty. Non-positive
// sizes fall back to the defaults, negative padding becomes zero, and padding
// that would swallow an axis is scaled down on that axis.
func NewViewport(width, height float64, pad Padding) Viewport {
	if width <= 0 {
		width = constants.DefaultViewportWidth
	}
	if height <= 0 {
		height = constants.DefaultViewportHeight
	}
	pad.Top = mathutil.Max(pad.Top, 0)
	pad.Right = mathutil.Max(pad.Right, 0)
	pad.Bottom = mathutil.Max(pad.Bottom, 0)
	pad.Left = mathutil.Max(pad.Left, 0)

	pad.Left, pad.Right = fitPadding(width, pad.Left, pad.Right)
	pad.Top, pad.Bottom = fitPadding(height, pad.Top, pad.Bottom)

	return Viewport{Width: width, Height: height, Padding: pad}
}

// fitPadding shrinks a pair of paddings proportionally so at least
// MinChartDimension remains between them.
func fitPadding(total, a, b float64) (float64, float64) {
	room := total - constants.MinChartDimension
	if a+b <= room {
		return a, b
	}
	if room <= 0 {
		return 0, 0
	}
	scale := room / (a + b)
	return a * scale, b * scale
}

// ChartWidth is the plot area width. It is always positive.
func (v Viewport) ChartWidth() float64 {
	return mathutil.Max(v.Width-v.Padding.Left-v.Padding.Right, constants.MinChartDimension)
}

// ChartHeight is the plot area height. It is always positive.
func (v Viewport) ChartHeight() float64 {
	return mathutil.Max(v.Height-v.Padding.Top-v.Padding.Bottom, constants.MinChartDimension)
}

// Bottom is the y coordinate of the plot area's lower edge.
func (v Viewport) Bottom() float64 {
	return v.Padding.Top + v.ChartHeight()
}

// Right is the x coordinate of the plot area's right edge.
func (v Viewport) Right() float64 {
	return v.Padding.Left + v.ChartWidth()
}
