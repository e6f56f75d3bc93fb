// Package series builds sorted, deduplicated series from raw feed points and
// aligns several of them onto one shared timeline.
package series

import (
	"math"
	"sort"

	"github.com/iwvelando/marketchart/pkg/datetime"
)

// Point is one raw feed entry. Date may use any encoding accepted by
// datetime.ParsePeriodKey.
type Point struct {
	Date  string  `json:"date" yaml:"date"`
	Value float64 `json:"value" yaml:"value"`
}

// Identity names a series for legends and tooltips.
type Identity struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
	Unit  string `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// Sample is one finite value at a period key.
type Sample struct {
	Key   datetime.PeriodKey
	Value float64
}

// Series is a key-ordered sequence of samples with no duplicate keys.
type Series struct {
	Identity
	Samples []Sample
}

// NewSeries parses and sorts points into a Series. Points with unparseable
// dates, non-finite values or a granularity different from the first valid
// point are dropped; the number dropped is returned. When two points share a
// key the later one wins.
func NewSeries(id Identity, points []Point) (Series, int) {
	dropped := 0
	gran := datetime.GranularityUnknown
	byKey := make(map[datetime.PeriodKey]float64, len(points))

	for _, p := range points {
		key, ok := datetime.ParsePeriodKey(p.Date)
		if !ok || math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			dropped++
			continue
		}
		if gran == datetime.GranularityUnknown {
			gran = key.Granularity
		}
		if key.Granularity != gran {
			dropped++
			continue
		}
		if _, dup := byKey[key]; dup {
			dropped++
		}
		byKey[key] = p.Value
	}

	samples := make([]Sample, 0, len(byKey))
	for k, v := range byKey {
		samples = append(samples, Sample{Key: k, Value: v})
	}
	sortSamples(samples)

	return Series{Identity: id, Samples: samples}, dropped
}

// Len returns the number of samples.
func (s Series) Len() int {
	return len(s.Samples)
}

// Granularity returns the granularity shared by the samples, or
// GranularityUnknown for an empty series.
func (s Series) Granularity() datetime.Granularity {
	if len(s.Samples) == 0 {
		return datetime.GranularityUnknown
	}
	return s.Samples[0].Key.Granularity
}

// Keys returns the sample keys in order.
func (s Series) Keys() []datetime.PeriodKey {
	keys := make([]datetime.PeriodKey, len(s.Samples))
	for i, smp := range s.Samples {
		keys[i] = smp.Key
	}
	return keys
}

// Values returns the sample values in key order.
func (s Series) Values() []float64 {
	values := make([]float64, len(s.Samples))
	for i, smp := range s.Samples {
		values[i] = smp.Value
	}
	return values
}

func sortSamples(samples []Sample) {
	sort.Slice(samples, func(i, j int) bool {
		return datetime.Compare(samples[i].Key, samples[j].Key) < 0
	})
}

func sortKeys(keys []datetime.PeriodKey) {
	sort.Slice(keys, func(i, j int) bool {
		return datetime.Compare(keys[i], keys[j]) < 0
	})
}
