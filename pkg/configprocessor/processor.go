// Package configprocessor provides shared configuration processing utilities.
package configprocessor

import (
	"github.com/iwvelando/marketchart/pkg/validation"
)

// ChartInfo represents chart configuration information
type ChartInfo struct {
	Width         float64
	Height        float64
	PaddingTop    float64
	PaddingRight  float64
	PaddingBottom float64
	PaddingLeft   float64
	Range         string
	Relative      string
	FrameRate     int
	BaselineIndex int
}

// PointInfo represents one inline point
type PointInfo struct {
	Date  string
	Value float64
}

// SeriesInfo represents series configuration information
type SeriesInfo struct {
	Name   string
	Color  string
	File   string
	Points []PointInfo
}

// Processor handles configuration processing and validation
type Processor struct{}

// NewProcessor creates a new configuration processor
func NewProcessor() *Processor {
	return &Processor{}
}

// ValidateConfiguration validates the configuration and returns warnings
func (p *Processor) ValidateConfiguration(chart ChartInfo, series []SeriesInfo) []string {
	validator := validation.ConfigValidator{
		Chart: validation.ChartConfig{
			Width:         chart.Width,
			Height:        chart.Height,
			PaddingX:      chart.PaddingLeft + chart.PaddingRight,
			PaddingY:      chart.PaddingTop + chart.PaddingBottom,
			Range:         chart.Range,
			Relative:      chart.Relative,
			FrameRate:     chart.FrameRate,
			BaselineIndex: chart.BaselineIndex,
		},
	}

	for _, s := range series {
		dates := make([]string, 0, len(s.Points))
		for _, pt := range s.Points {
			dates = append(dates, pt.Date)
		}
		validator.Series = append(validator.Series, validation.SeriesConfig{
			Name:   s.Name,
			Color:  s.Color,
			File:   s.File,
			Dates:  dates,
			Points: len(s.Points),
		})
	}

	return validator.ValidateAll()
}
