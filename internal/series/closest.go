package series

import (
	"sort"
	"time"

	"github.com/iwvelando/marketchart/pkg/datetime"
)

// FindClosestKey returns the key in the ascending keys nearest to target by
// period start. An exact match wins; equidistant neighbours resolve to the
// earlier key. It reports false only for an empty slice.
func FindClosestKey(keys []datetime.PeriodKey, target datetime.PeriodKey) (datetime.PeriodKey, bool) {
	if len(keys) == 0 {
		return datetime.PeriodKey{}, false
	}

	i := sort.Search(len(keys), func(i int) bool {
		return datetime.Compare(keys[i], target) >= 0
	})
	switch {
	case i < len(keys) && datetime.Compare(keys[i], target) == 0:
		return keys[i], true
	case i == 0:
		return keys[0], true
	case i == len(keys):
		return keys[len(keys)-1], true
	}

	before, after := keys[i-1], keys[i]
	if distance(target, after) < distance(before, target) {
		return after, true
	}
	return before, true
}

// FindClosestDate is FindClosestKey over raw date strings. Entries that do
// not parse are ignored, the input need not be sorted, and the matching
// entry is returned as it was given.
func FindClosestDate(dates []string, target string) (string, bool) {
	t, ok := datetime.ParsePeriodKey(target)
	if !ok {
		return "", false
	}

	keys := make([]datetime.PeriodKey, 0, len(dates))
	raw := make(map[datetime.PeriodKey]string, len(dates))
	for _, d := range dates {
		k, ok := datetime.ParsePeriodKey(d)
		if !ok {
			continue
		}
		if _, dup := raw[k]; !dup {
			keys = append(keys, k)
			raw[k] = d
		}
	}
	sortKeys(keys)

	k, ok := FindClosestKey(keys, t)
	if !ok {
		return "", false
	}
	return raw[k], true
}

func distance(a, b datetime.PeriodKey) time.Duration {
	d := b.Start().Sub(a.Start())
	if d < 0 {
		return -d
	}
	return d
}
