package configprocessor

import (
	"testing"
)

func TestNewProcessor(t *testing.T) {
	processor := NewProcessor()
	if processor == nil {
		t.Error("NewProcessor() returned nil")
	}
}

func TestProcessor_ValidateConfiguration(t *testing.T) {
	processor := NewProcessor()

	defaultChart := ChartInfo{
		Width:         1200,
		Height:        400,
		PaddingTop:    40,
		PaddingRight:  40,
		PaddingBottom: 60,
		PaddingLeft:   80,
		Range:         "6M",
		Relative:      "auto",
		FrameRate:     60,
	}

	tests := []struct {
		name             string
		chart            ChartInfo
		series           []SeriesInfo
		expectedWarnings int
	}{
		{
			name:  "Valid configuration",
			chart: defaultChart,
			series: []SeriesInfo{
				{Name: "KCCI", Color: "#3B82F6", File: "kcci.xlsx"},
				{Name: "USD", Points: []PointInfo{{Date: "20240101", Value: 1300.5}}},
			},
			expectedWarnings: 0,
		},
		{
			name: "Padding summed per axis",
			chart: ChartInfo{
				Width:        200,
				Height:       400,
				PaddingLeft:  120,
				PaddingRight: 100,
			},
			series:           []SeriesInfo{{Name: "A", File: "a.yaml"}},
			expectedWarnings: 1,
		},
		{
			name:  "Inline points with bad dates",
			chart: defaultChart,
			series: []SeriesInfo{
				{Name: "USD", Points: []PointInfo{{Date: "20240101", Value: 1}, {Date: "soon", Value: 2}}},
			},
			expectedWarnings: 1,
		},
		{
			name:             "No series",
			chart:            defaultChart,
			expectedWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := processor.ValidateConfiguration(tt.chart, tt.series)
			if len(warnings) != tt.expectedWarnings {
				t.Errorf("ValidateConfiguration() returned %d warnings, expected %d: %v", len(warnings), tt.expectedWarnings, warnings)
			}
		})
	}
}
