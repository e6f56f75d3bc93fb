// Package change converts absolute series values into percentage change so
// series with unrelated magnitudes can share one axis.
package change

import (
	"math"

	"github.com/iwvelando/marketchart/pkg/constants"
	"github.com/iwvelando/marketchart/pkg/mathutil"
)

// ToRelativeChange returns the percent change of every value against
// values[baselineIndex]. When the baseline is zero, absent (NaN) or out of
// range every output is 0. Absent inputs stay NaN, and so does a change too
// large to represent.
func ToRelativeChange(values []float64, baselineIndex int) []float64 {
	out := make([]float64, len(values))
	if baselineIndex < 0 || baselineIndex >= len(values) {
		return out
	}
	base := values[baselineIndex]
	if !mathutil.IsFinite(base) || base == 0 {
		return out
	}
	for i, v := range values {
		if !mathutil.IsFinite(v) {
			out[i] = math.NaN()
			continue
		}
		pct := (v - base) / base * constants.PercentageMultiplier
		if !mathutil.IsFinite(pct) {
			pct = math.NaN()
		}
		out[i] = pct
	}
	return out
}

// FirstFinite returns the index of the first finite value, or -1.
func FirstFinite(values []float64) int {
	for i, v := range values {
		if mathutil.IsFinite(v) {
			return i
		}
	}
	return -1
}

// Rate returns the percent change from start to current, or 0 when start is
// zero or not finite or the change overflows.
func Rate(current, start float64) float64 {
	if !mathutil.IsFinite(start) || start == 0 || !mathutil.IsFinite(current) {
		return 0
	}
	return finiteOrZero((current - start) / start * constants.PercentageMultiplier)
}

// Delta returns current - previous, or 0 when the difference overflows.
func Delta(current, previous float64) float64 {
	return finiteOrZero(current - previous)
}

func finiteOrZero(v float64) float64 {
	if !mathutil.IsFinite(v) {
		return 0
	}
	return v
}

// PeriodChange returns the absolute and percent change from the first to the
// last finite value.
func PeriodChange(values []float64) (delta, percent float64) {
	finite := mathutil.FiniteValues(values)
	if len(finite) < 2 {
		return 0, 0
	}
	first, last := finite[0], finite[len(finite)-1]
	return Delta(last, first), Rate(last, first)
}
