package chart

import (
	"github.com/iwvelando/marketchart/internal/geometry"
	"github.com/iwvelando/marketchart/internal/series"
	"github.com/iwvelando/marketchart/pkg/constants"
)

// RelativeMode selects when series are drawn as percent change.
type RelativeMode string

const (
	// RelativeAuto switches to percent change when more than one series is
	// visible.
	RelativeAuto   RelativeMode = constants.RelativeAuto
	RelativeAlways RelativeMode = constants.RelativeAlways
	RelativeNever  RelativeMode = constants.RelativeNever
)

// ParseRelativeMode maps a config value onto a RelativeMode. Empty input is
// RelativeAuto.
func ParseRelativeMode(s string) (RelativeMode, bool) {
	switch RelativeMode(s) {
	case "", RelativeAuto:
		return RelativeAuto, true
	case RelativeAlways, RelativeNever:
		return RelativeMode(s), true
	}
	return RelativeAuto, false
}

// Options configures a Chart. Zero fields take the defaults noted.
type Options struct {
	// Viewport is the drawing surface. Zero means DefaultViewport.
	Viewport geometry.Viewport

	// Range is the initial period preset. Zero means series.DefaultRange.
	Range series.RangeKey

	Relative RelativeMode

	// PaddingRatio widens the value extent. Zero picks a ratio from the
	// value span.
	PaddingRatio float64

	// BaselineIndex is the frame index relative change is measured from.
	BaselineIndex int

	GapPolicy series.GapPolicy

	// Calendar lays daily series out on every calendar day in range instead
	// of only the days that have samples.
	Calendar bool

	// FrameRate caps pointer recomputations per second.
	FrameRate int

	// ValueTickSteps is the number of y-axis intervals.
	ValueTickSteps int
}

func (o Options) withDefaults() Options {
	if o.Viewport.Width <= 0 || o.Viewport.Height <= 0 {
		o.Viewport = geometry.DefaultViewport()
	} else {
		o.Viewport = geometry.NewViewport(o.Viewport.Width, o.Viewport.Height, o.Viewport.Padding)
	}
	if r, ok := series.ParseRangeKey(string(o.Range)); ok {
		o.Range = r
	} else {
		o.Range = series.DefaultRange
	}
	if _, ok := ParseRelativeMode(string(o.Relative)); !ok || o.Relative == "" {
		o.Relative = RelativeAuto
	}
	if o.PaddingRatio < 0 {
		o.PaddingRatio = 0
	}
	if o.BaselineIndex < 0 {
		o.BaselineIndex = 0
	}
	if o.FrameRate <= 0 {
		o.FrameRate = constants.DefaultFrameRate
	}
	if o.ValueTickSteps <= 0 {
		o.ValueTickSteps = constants.DefaultValueTickSteps
	}
	return o
}
