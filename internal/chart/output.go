package chart

import (
	"github.com/iwvelando/marketchart/internal/geometry"
	"github.com/iwvelando/marketchart/internal/series"
	"github.com/iwvelando/marketchart/pkg/change"
)

// Path is the polyline of one visible series.
type Path struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Unit  string `json:"unit,omitempty"`
	D     string `json:"d"`
}

// SeriesStats is the summary shown next to a series.
type SeriesStats struct {
	Name          string  `json:"name"`
	PeriodChange  float64 `json:"periodChange"`
	PeriodPercent float64 `json:"periodPercent"`
	change.Stats
}

// Output is everything the rendering layer draws for one snapshot.
type Output struct {
	ID       string               `json:"id"`
	Range    series.RangeKey      `json:"range"`
	Relative bool                 `json:"relative"`
	Keys     []string             `json:"keys"`
	Viewport geometry.Viewport    `json:"viewport"`
	Extent   geometry.Extent      `json:"extent"`
	Paths    []Path               `json:"paths"`
	XTicks   []geometry.Tick      `json:"xTicks"`
	YTicks   []geometry.ValueTick `json:"yTicks"`
	Stats    []SeriesStats        `json:"stats"`
	Frame    series.Frame         `json:"-"`
}
