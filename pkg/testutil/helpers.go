// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/marketchart/internal/series"
	"github.com/iwvelando/marketchart/pkg/datetime"
)

// FindColumn finds a column by series name in an aligned frame.
// Returns a pointer to the column if found, nil otherwise.
func FindColumn(frame series.Frame, name string) *series.Column {
	for i := range frame.Columns {
		if frame.Columns[i].Name == name {
			return &frame.Columns[i]
		}
	}
	return nil
}

// DailyPoints returns one point per consecutive calendar day starting at
// start (YYYYMMDD), one for each value.
func DailyPoints(start string, values ...float64) []series.Point {
	t := datetime.MustParseTime(datetime.DayKeyLayout, start)
	points := make([]series.Point, len(values))
	for i, v := range values {
		points[i] = series.Point{Date: datetime.ToDayKey(t.AddDate(0, 0, i)), Value: v}
	}
	return points
}
