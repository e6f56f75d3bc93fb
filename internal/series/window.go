package series

import (
	"strings"

	"github.com/iwvelando/marketchart/pkg/datetime"
)

// RangeKey names a period selector preset.
type RangeKey string

const (
	Range1W  RangeKey = "1W"
	Range1M  RangeKey = "1M"
	Range3M  RangeKey = "3M"
	Range6M  RangeKey = "6M"
	Range1Y  RangeKey = "1Y"
	RangeMax RangeKey = "MAX"
)

// DefaultRange is used when no range, or an unknown one, is requested.
const DefaultRange = Range6M

var rangeDays = map[RangeKey]int{
	Range1W:  7,
	Range1M:  31,
	Range3M:  92,
	Range6M:  180,
	Range1Y:  365,
	RangeMax: 10000,
}

// Days returns the look-back length of the preset. Unknown presets use the
// default range's length.
func (r RangeKey) Days() int {
	if d, ok := rangeDays[r]; ok {
		return d
	}
	return rangeDays[DefaultRange]
}

// ParseRangeKey matches s case-insensitively against the presets.
func ParseRangeKey(s string) (RangeKey, bool) {
	r := RangeKey(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := rangeDays[r]
	return r, ok
}

// WindowStart returns the first day of a window of days ending at last.
func WindowStart(last datetime.PeriodKey, days int) datetime.PeriodKey {
	return datetime.DayKey(last.Start().AddDate(0, 0, -days))
}

// Window keeps the samples that start no earlier than days before the last
// sample. days <= 0 returns s unchanged.
func Window(s Series, days int) Series {
	if days <= 0 || len(s.Samples) == 0 {
		return s
	}
	cutoff := WindowStart(s.Samples[len(s.Samples)-1].Key, days).Start()
	i := 0
	for i < len(s.Samples) && s.Samples[i].Key.Start().Before(cutoff) {
		i++
	}
	return Series{Identity: s.Identity, Samples: s.Samples[i:]}
}
