package testutil

import (
	"testing"

	"github.com/iwvelando/marketchart/internal/series"
)

func TestFindColumn(t *testing.T) {
	frame := series.Frame{
		Columns: []series.Column{
			{Identity: series.Identity{Name: "KOSPI"}, Cells: []series.Cell{{Value: 1, Present: true}}},
			{Identity: series.Identity{Name: "KOSDAQ"}, Cells: []series.Cell{{Value: 2, Present: true}}},
		},
	}

	tests := []struct {
		name          string
		searchName    string
		expectFound   bool
		expectedValue float64
	}{
		{
			name:          "Find first column",
			searchName:    "KOSPI",
			expectFound:   true,
			expectedValue: 1,
		},
		{
			name:          "Find second column",
			searchName:    "KOSDAQ",
			expectFound:   true,
			expectedValue: 2,
		},
		{
			name:        "Search for non-existent column",
			searchName:  "NASDAQ",
			expectFound: false,
		},
		{
			name:        "Empty search name",
			searchName:  "",
			expectFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindColumn(frame, tt.searchName)
			if !tt.expectFound {
				if result != nil {
					t.Errorf("FindColumn() = %v, expected nil", result)
				}
				return
			}
			if result == nil {
				t.Fatalf("FindColumn() returned nil, expected column")
			}
			if result.Cells[0].Value != tt.expectedValue {
				t.Errorf("FindColumn() value = %v, expected %v", result.Cells[0].Value, tt.expectedValue)
			}
		})
	}
}

func TestDailyPoints(t *testing.T) {
	points := DailyPoints("20240130", 1, 2, 3)
	expected := []string{"20240130", "20240131", "20240201"}
	if len(points) != len(expected) {
		t.Fatalf("DailyPoints() length = %d, expected %d", len(points), len(expected))
	}
	for i, p := range points {
		if p.Date != expected[i] || p.Value != float64(i+1) {
			t.Errorf("DailyPoints()[%d] = %+v, expected %s/%d", i, p, expected[i], i+1)
		}
	}
	if len(DailyPoints("20240101")) != 0 {
		t.Errorf("DailyPoints() with no values should be empty")
	}
}
