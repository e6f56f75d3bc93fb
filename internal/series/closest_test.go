package series

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iwvelando/marketchart/pkg/datetime"
)

func parseKeys(raw ...string) []datetime.PeriodKey {
	keys := make([]datetime.PeriodKey, len(raw))
	for i, r := range raw {
		keys[i] = datetime.MustParsePeriodKey(r)
	}
	return keys
}

func TestFindClosestKey(t *testing.T) {
	tests := []struct {
		name   string
		keys   []string
		target string
		want   string
		wantOK bool
	}{
		{"exact match", []string{"20240101", "20240102", "20240103"}, "20240102", "20240102", true},
		{"equidistant prefers earlier", []string{"20240101", "20240105", "20240110"}, "20240103", "20240101", true},
		{"nearer later key", []string{"20240101", "20240105", "20240110"}, "20240104", "20240105", true},
		{"before first", []string{"20240105", "20240110"}, "20231231", "20240105", true},
		{"after last", []string{"20240105", "20240110"}, "20240201", "20240110", true},
		{"quarters", []string{"2024Q1", "2024Q3"}, "2024Q2", "2024Q1", true},
		{"empty", nil, "20240101", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindClosestKey(parseKeys(tt.keys...), datetime.MustParsePeriodKey(tt.target))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFindClosestDate(t *testing.T) {
	tests := []struct {
		name   string
		dates  []string
		target string
		want   string
		wantOK bool
	}{
		{"exact match", []string{"20240101", "20240102", "20240103"}, "20240102", "20240102", true},
		{"one of the neighbours", []string{"20240101", "20240105", "20240110"}, "20240103", "20240101", true},
		{"unsorted input", []string{"20240110", "20240101", "20240105"}, "20240109", "20240110", true},
		{"returns original form", []string{"2024-01-01", "2024-01-09"}, "20240102", "2024-01-01", true},
		{"skips garbage", []string{"bad", "20240105"}, "20240101", "20240105", true},
		{"empty list", []string{}, "20240101", "", false},
		{"nil list", nil, "20240101", "", false},
		{"bad target", []string{"20240101"}, "nope", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindClosestDate(tt.dates, tt.target)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
