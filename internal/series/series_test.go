package series

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwvelando/marketchart/pkg/datetime"
)

func keyStrings(keys []datetime.PeriodKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}

func mustSeries(t *testing.T, name string, points ...Point) Series {
	t.Helper()
	s, dropped := NewSeries(Identity{Name: name}, points)
	require.Zero(t, dropped, "fixture points for %s should all parse", name)
	return s
}

func TestNewSeries(t *testing.T) {
	tests := []struct {
		name        string
		points      []Point
		wantKeys    []string
		wantValues  []float64
		wantDropped int
	}{
		{
			name:       "sorts by key",
			points:     []Point{{"20240103", 3}, {"20240101", 1}, {"20240102", 2}},
			wantKeys:   []string{"20240101", "20240102", "20240103"},
			wantValues: []float64{1, 2, 3},
		},
		{
			name:        "last write wins on duplicate keys",
			points:      []Point{{"20240101", 1}, {"2024-01-01", 9}},
			wantKeys:    []string{"20240101"},
			wantValues:  []float64{9},
			wantDropped: 1,
		},
		{
			name:        "drops malformed dates and non-finite values",
			points:      []Point{{"2024013", 1}, {"20240101", math.NaN()}, {"20240102", math.Inf(1)}, {"20240103", 5}},
			wantKeys:    []string{"20240103"},
			wantValues:  []float64{5},
			wantDropped: 3,
		},
		{
			name:        "drops keys of another granularity",
			points:      []Point{{"202401", 1}, {"20240215", 2}, {"202403", 3}},
			wantKeys:    []string{"202401", "202403"},
			wantValues:  []float64{1, 3},
			wantDropped: 1,
		},
		{
			name:       "orders quarters chronologically",
			points:     []Point{{"2024Q4", 4}, {"2025Q1", 5}, {"2024Q1", 1}},
			wantKeys:   []string{"2024Q1", "2024Q4", "2025Q1"},
			wantValues: []float64{1, 4, 5},
		},
		{
			name:       "empty input",
			points:     nil,
			wantKeys:   []string{},
			wantValues: []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, dropped := NewSeries(Identity{Name: "s"}, tt.points)
			assert.Equal(t, tt.wantDropped, dropped)
			assert.Equal(t, tt.wantKeys, keyStrings(s.Keys()))
			assert.Equal(t, tt.wantValues, s.Values())
		})
	}
}

func TestSeriesGranularity(t *testing.T) {
	assert.Equal(t, datetime.GranularityUnknown, Series{}.Granularity())
	s := mustSeries(t, "m", Point{"202401", 1})
	assert.Equal(t, datetime.GranularityMonth, s.Granularity())
	assert.Equal(t, 1, s.Len())
}
