package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeKeyDays(t *testing.T) {
	tests := []struct {
		key  RangeKey
		want int
	}{
		{Range1W, 7},
		{Range1M, 31},
		{Range3M, 92},
		{Range6M, 180},
		{Range1Y, 365},
		{RangeMax, 10000},
		{RangeKey("5Y"), 180},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.Days())
		})
	}
}

func TestParseRangeKey(t *testing.T) {
	r, ok := ParseRangeKey(" 1y ")
	assert.True(t, ok)
	assert.Equal(t, Range1Y, r)

	r, ok = ParseRangeKey("max")
	assert.True(t, ok)
	assert.Equal(t, RangeMax, r)

	_, ok = ParseRangeKey("2W")
	assert.False(t, ok)
}

func TestWindow(t *testing.T) {
	s := mustSeries(t, "w",
		Point{"20240101", 1},
		Point{"20240120", 2},
		Point{"20240125", 3},
		Point{"20240201", 4},
	)

	got := Window(s, 7)
	assert.Equal(t, []string{"20240125", "20240201"}, keyStrings(got.Keys()))
	assert.Equal(t, "w", got.Name)

	assert.Equal(t, 4, Window(s, 0).Len())
	assert.Equal(t, 4, Window(s, 10000).Len())
	assert.Equal(t, 0, Window(Series{}, 7).Len())
}

func TestWindowMonthly(t *testing.T) {
	s := mustSeries(t, "cpi", Point{"202301", 1}, Point{"202306", 2}, Point{"202312", 3})
	got := Window(s, 200)
	assert.Equal(t, []string{"202306", "202312"}, keyStrings(got.Keys()))
}
