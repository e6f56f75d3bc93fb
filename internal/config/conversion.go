// Package config defines conversion utilities for configuration objects.
package config

import (
	"github.com/iwvelando/marketchart/internal/chart"
	"github.com/iwvelando/marketchart/internal/geometry"
	"github.com/iwvelando/marketchart/internal/series"
)

// ChartOptions converts the chart section into chart.Options. Invalid values
// are passed through; chart.New applies the fallbacks.
func (c *ChartConfig) ChartOptions() chart.Options {
	if c == nil {
		return chart.Options{}
	}

	opts := chart.Options{
		Viewport: geometry.Viewport{
			Width:  c.Width,
			Height: c.Height,
			Padding: geometry.Padding{
				Top:    c.Padding.Top,
				Right:  c.Padding.Right,
				Bottom: c.Padding.Bottom,
				Left:   c.Padding.Left,
			},
		},
		Range:         series.RangeKey(c.Range),
		Relative:      chart.RelativeMode(c.Relative),
		PaddingRatio:  c.PaddingRatio,
		BaselineIndex: c.BaselineIndex,
		Calendar:      c.Calendar,
		FrameRate:     c.FrameRate,
	}
	if c.LeaveGaps {
		opts.GapPolicy = series.LeaveGaps
	}
	return opts
}

// ToPoints converts inline points into raw series points.
func (s *SeriesConfig) ToPoints() []series.Point {
	if s == nil || len(s.Points) == 0 {
		return nil
	}
	points := make([]series.Point, 0, len(s.Points))
	for _, p := range s.Points {
		points = append(points, series.Point{Date: p.Date, Value: p.Value})
	}
	return points
}

// Identity returns the display identity of the series.
func (s *SeriesConfig) Identity() series.Identity {
	return series.Identity{Name: s.Name, Color: s.Color, Unit: s.Unit}
}
