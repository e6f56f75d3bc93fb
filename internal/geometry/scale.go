package geometry

import (
	"math"

	"github.com/iwvelando/marketchart/pkg/constants"
	"github.com/iwvelando/marketchart/pkg/mathutil"
)

// Extent is the value range mapped onto the plot area's height.
type Extent struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Span returns Max-Min, or 1 for a degenerate extent.
func (e Extent) Span() float64 {
	if s := e.Max - e.Min; s > 0 {
		return s
	}
	return 1
}

// extentLimit bounds both ends of an extent so its span stays finite.
const extentLimit = math.MaxFloat64 / 4

// ComputeExtent returns the range of the finite values widened on both sides
// by paddingRatio times the span. Equal values are centred in a span of
// MinimalExtentSpan; no finite values yields {0, 1}. Values beyond
// ±MaxFloat64/4 are clamped.
func ComputeExtent(values []float64, paddingRatio float64) Extent {
	lo, hi, ok := mathutil.MinMax(values)
	if !ok {
		return Extent{Min: 0, Max: 1}
	}
	lo = mathutil.Clamp(lo, -extentLimit, extentLimit)
	hi = mathutil.Clamp(hi, -extentLimit, extentLimit)
	if hi == lo {
		lo -= constants.MinimalExtentSpan / 2
		hi += constants.MinimalExtentSpan / 2
	}
	pad := (hi - lo) * mathutil.Max(paddingRatio, 0)
	return Extent{
		Min: mathutil.Clamp(lo-pad, -2*extentLimit, lo),
		Max: mathutil.Clamp(hi+pad, hi, 2*extentLimit),
	}
}

// DynamicPaddingRatio picks a padding ratio for a value span: tighter spans
// get proportionally more room.
func DynamicPaddingRatio(span float64) float64 {
	switch {
	case span < 10:
		return 0.01
	case span < 50:
		return 0.005
	default:
		return 0.003
	}
}

// ValueToY maps a value onto the vertical axis. Extent.Max lands on the top
// padding and Extent.Min on the plot area's bottom edge. Values outside the
// extent are pinned to its edges.
func ValueToY(value float64, e Extent, vp Viewport) float64 {
	if e.Min < e.Max {
		value = mathutil.Clamp(value, e.Min, e.Max)
	}
	return vp.Padding.Top + (e.Max-value)/e.Span()*vp.ChartHeight()
}

// YToValue inverts ValueToY.
func YToValue(y float64, e Extent, vp Viewport) float64 {
	return e.Max - (y-vp.Padding.Top)/vp.ChartHeight()*e.Span()
}

// IndexToX maps a sample index onto the horizontal axis. A single sample is
// placed at the centre of the plot area.
func IndexToX(index, count int, vp Viewport) float64 {
	if count <= 1 {
		return vp.Padding.Left + vp.ChartWidth()/2
	}
	return vp.Padding.Left + float64(index)/float64(count-1)*vp.ChartWidth()
}
