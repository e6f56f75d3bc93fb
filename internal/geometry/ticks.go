package geometry

import (
	"github.com/iwvelando/marketchart/pkg/constants"
	"github.com/iwvelando/marketchart/pkg/datetime"
	"github.com/iwvelando/marketchart/pkg/format"
	"github.com/iwvelando/marketchart/pkg/mathutil"
)

// Tick is one x-axis label at a sample index.
type Tick struct {
	Index    int     `json:"index"`
	Position float64 `json:"position"`
	Label    string  `json:"label"`
}

// ValueTick is one y-axis label.
type ValueTick struct {
	Value    float64 `json:"value"`
	Position float64 `json:"position"`
	Label    string  `json:"label"`
}

// SelectAxisTicks picks the x-axis labels for keys shown over a range of
// rangeDays. Daily keys are thinned by range length: short ranges label every
// Nth sample, medium ranges the first sample of each month, long ranges the
// first of each quarter (or year for more than YearlyLabelThreshold keys).
// Monthly keys label every second month and quarterly keys every quarter.
// The first and last key are always labelled.
func SelectAxisTicks(keys []datetime.PeriodKey, rangeDays int, vp Viewport) []Tick {
	n := len(keys)
	ticks := make([]Tick, 0)
	if n == 0 {
		return ticks
	}

	add := func(i int, label string) {
		ticks = append(ticks, Tick{Index: i, Position: IndexToX(i, n, vp), Label: label})
	}

	var labelOf func(datetime.PeriodKey) string
	switch granularityOf(keys) {
	case datetime.GranularityQuarter:
		labelOf = datetime.ShortLabel
		for i := range keys {
			add(i, labelOf(keys[i]))
		}
	case datetime.GranularityMonth:
		labelOf = datetime.ShortLabel
		for i := 0; i < n; i += 2 {
			add(i, labelOf(keys[i]))
		}
	default:
		switch {
		case rangeDays <= constants.ShortRangeDays:
			labelOf = datetime.ShortLabel
			step := (n + constants.MaxShortRangeLabels - 1) / constants.MaxShortRangeLabels
			if step < 1 {
				step = 1
			}
			for i := 0; i < n; i += step {
				add(i, labelOf(keys[i]))
			}
		case rangeDays <= constants.MediumRangeDays:
			labelOf = datetime.MonthLabel
			firstPerBucket(keys, labelOf, add)
		case n > constants.YearlyLabelThreshold:
			labelOf = datetime.YearLabel
			firstPerBucket(keys, labelOf, add)
		default:
			labelOf = datetime.QuarterLabel
			firstPerBucket(keys, labelOf, add)
		}
	}

	if ticks[len(ticks)-1].Index != n-1 {
		add(n-1, labelOf(keys[n-1]))
	}
	return ticks
}

// firstPerBucket labels the first key of every distinct bucket label.
func firstPerBucket(keys []datetime.PeriodKey, bucket func(datetime.PeriodKey) string, add func(int, string)) {
	prev := ""
	for i, k := range keys {
		if label := bucket(k); i == 0 || label != prev {
			add(i, label)
			prev = label
		}
	}
}

// granularityOf returns the finest granularity among keys.
func granularityOf(keys []datetime.PeriodKey) datetime.Granularity {
	g := datetime.GranularityUnknown
	for _, k := range keys {
		g = datetime.Finer(g, k.Granularity)
	}
	return g
}

// ValueTicks returns steps+1 evenly spaced y-axis labels from Extent.Max down
// to Extent.Min. Relative axes are labelled as signed percentages.
func ValueTicks(e Extent, vp Viewport, steps int, relative bool) []ValueTick {
	if steps < 1 {
		steps = constants.DefaultValueTickSteps
	}
	ticks := make([]ValueTick, 0, steps+1)
	for i := 0; i <= steps; i++ {
		v := e.Max - float64(i)/float64(steps)*(e.Max-e.Min)
		if mathutil.IsZero(v) {
			v = 0
		}
		ticks = append(ticks, ValueTick{
			Value:    v,
			Position: vp.Padding.Top + float64(i)/float64(steps)*vp.ChartHeight(),
			Label:    valueLabel(v, e, relative),
		})
	}
	return ticks
}

func valueLabel(v float64, e Extent, relative bool) string {
	if relative {
		return format.Percent(v, 1)
	}
	if e.Max-e.Min < 10 {
		return format.Fixed(v, 2)
	}
	return format.Number(v)
}
