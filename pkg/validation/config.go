// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/iwvelando/marketchart/internal/series"
	"github.com/iwvelando/marketchart/pkg/constants"
	"github.com/iwvelando/marketchart/pkg/datetime"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateRange checks a period preset name such as 6M or MAX.
func ValidateRange(key string) error {
	if _, ok := series.ParseRangeKey(key); !ok {
		return fmt.Errorf("unknown range %q, expected one of 1W, 1M, 3M, 6M, 1Y or MAX", key)
	}
	return nil
}

// ValidateRelativeMode checks a relative display mode. Empty means auto.
func ValidateRelativeMode(mode string) error {
	switch mode {
	case "", constants.RelativeAuto, constants.RelativeAlways, constants.RelativeNever:
		return nil
	}
	return fmt.Errorf("expected relative mode of %s, %s or %s, got %s",
		constants.RelativeAuto, constants.RelativeAlways, constants.RelativeNever, mode)
}

// ValidateSeriesPoints returns a warning when inline points have dates that
// cannot be parsed or mix granularities.
func ValidateSeriesPoints(name string, dates []string) string {
	bad := 0
	gran := datetime.GranularityUnknown
	mixed := false
	for _, d := range dates {
		k, ok := datetime.ParsePeriodKey(d)
		if !ok {
			bad++
			continue
		}
		if gran == datetime.GranularityUnknown {
			gran = k.Granularity
		} else if k.Granularity != gran {
			mixed = true
		}
	}

	var problems []string
	if bad > 0 {
		problems = append(problems, fmt.Sprintf("%d unparseable dates", bad))
	}
	if mixed {
		problems = append(problems, fmt.Sprintf("mixed granularities, only %s points are kept", gran))
	}
	if len(problems) == 0 {
		return ""
	}
	return fmt.Sprintf("Series '%s' has %s", name, strings.Join(problems, " and "))
}

// ChartConfig is the subset of chart settings that can be checked.
type ChartConfig struct {
	Width         float64
	Height        float64
	PaddingX      float64
	PaddingY      float64
	Range         string
	Relative      string
	FrameRate     int
	BaselineIndex int
}

// SeriesConfig describes one configured series.
type SeriesConfig struct {
	Name   string
	Color  string
	File   string
	Dates  []string
	Points int
}

// ConfigValidator checks a whole configuration.
type ConfigValidator struct {
	Chart  ChartConfig
	Series []SeriesConfig
}

// ValidateAll validates the entire configuration and returns warnings. None
// of them stop rendering; each names the fallback that will apply.
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	c := cv.Chart
	if c.Range != "" {
		if err := ValidateRange(c.Range); err != nil {
			warnings = append(warnings, fmt.Sprintf("Chart %v - using 6M", err))
		}
	}
	if err := ValidateRelativeMode(c.Relative); err != nil {
		warnings = append(warnings, fmt.Sprintf("Chart %v - using auto", err))
	}
	if c.Width > 0 && c.PaddingX >= c.Width {
		warnings = append(warnings, fmt.Sprintf("Chart horizontal padding %.0f leaves no room in width %.0f - padding will be shrunk", c.PaddingX, c.Width))
	}
	if c.Height > 0 && c.PaddingY >= c.Height {
		warnings = append(warnings, fmt.Sprintf("Chart vertical padding %.0f leaves no room in height %.0f - padding will be shrunk", c.PaddingY, c.Height))
	}
	if c.FrameRate < 0 {
		warnings = append(warnings, fmt.Sprintf("Chart frame rate %d is negative - using %d", c.FrameRate, constants.DefaultFrameRate))
	}
	if c.BaselineIndex < 0 {
		warnings = append(warnings, fmt.Sprintf("Chart baseline index %d is negative - using 0", c.BaselineIndex))
	}

	if len(cv.Series) == 0 {
		warnings = append(warnings, "No series configured - the chart will be empty")
	}

	seen := make(map[string]bool, len(cv.Series))
	for _, s := range cv.Series {
		if s.Name == "" {
			warnings = append(warnings, "Series without a name cannot be selected")
		} else if seen[s.Name] {
			warnings = append(warnings, fmt.Sprintf("Series '%s' is configured more than once", s.Name))
		}
		seen[s.Name] = true

		if s.Color != "" && !hexColor.MatchString(s.Color) {
			warnings = append(warnings, fmt.Sprintf("Series '%s' color %q is not a hex color", s.Name, s.Color))
		}
		switch {
		case s.File == "" && s.Points == 0:
			warnings = append(warnings, fmt.Sprintf("Series '%s' has no file and no points", s.Name))
		case s.File != "" && s.Points > 0:
			warnings = append(warnings, fmt.Sprintf("Series '%s' has both a file and inline points - the file is used", s.Name))
		case s.File == "":
			if w := ValidateSeriesPoints(s.Name, s.Dates); w != "" {
				warnings = append(warnings, w)
			}
		}
	}

	return warnings
}
