// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"

	"github.com/iwvelando/marketchart/pkg/configprocessor"
	"github.com/iwvelando/marketchart/pkg/constants"
)

// Configuration holds all configuration for marketchart.
type Configuration struct {
	Logging LoggingConfig  `yaml:"logging,omitempty"`
	Output  OutputConfig   `yaml:"output,omitempty"`
	Chart   ChartConfig    `yaml:"chart,omitempty"`
	Series  []SeriesConfig `yaml:"series,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// PaddingConfig is the space around the plot area.
type PaddingConfig struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// ChartConfig holds the chart surface and display settings.
type ChartConfig struct {
	Width          float64       `yaml:"width"`
	Height         float64       `yaml:"height"`
	Padding        PaddingConfig `yaml:"padding"`
	PaddingRatio   float64       `yaml:"paddingRatio"` // 0 picks a ratio from the value span
	Range          string        `yaml:"range"`        // 1W, 1M, 3M, 6M, 1Y, MAX
	Relative       string        `yaml:"relative"`     // auto, always, never
	BaselineIndex  int           `yaml:"baselineIndex"`
	FrameRate      int           `yaml:"frameRate"`
	TooltipPadding float64       `yaml:"tooltipPadding"`
	LeaveGaps      bool          `yaml:"leaveGaps"`
	Calendar       bool          `yaml:"calendar"`
}

// PointConfig is one inline data point.
type PointConfig struct {
	Date  string  `yaml:"date"`
	Value float64 `yaml:"value"`
}

// SeriesConfig names one series and where its data comes from. File wins
// over Points when both are set.
type SeriesConfig struct {
	Name   string        `yaml:"name"`
	Color  string        `yaml:"color,omitempty"`
	Unit   string        `yaml:"unit,omitempty"`
	File   string        `yaml:"file,omitempty"`
	Sheet  string        `yaml:"sheet,omitempty"`
	Column string        `yaml:"column,omitempty"`
	Points []PointConfig `yaml:"points,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with MARKETCHART_
// override scalar settings, e.g. MARKETCHART_CHART_RANGE=1Y.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("chart.width", constants.DefaultViewportWidth)
	v.SetDefault("chart.height", constants.DefaultViewportHeight)
	v.SetDefault("chart.padding.top", constants.DefaultPaddingTop)
	v.SetDefault("chart.padding.right", constants.DefaultPaddingRight)
	v.SetDefault("chart.padding.bottom", constants.DefaultPaddingBottom)
	v.SetDefault("chart.padding.left", constants.DefaultPaddingLeft)
	v.SetDefault("chart.paddingRatio", 0)
	v.SetDefault("chart.range", "6M")
	v.SetDefault("chart.relative", constants.RelativeAuto)
	v.SetDefault("chart.baselineIndex", 0)
	v.SetDefault("chart.frameRate", constants.DefaultFrameRate)
	v.SetDefault("chart.tooltipPadding", constants.DefaultTooltipPadding)
	v.SetDefault("chart.leaveGaps", false)
	v.SetDefault("chart.calendar", false)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	chart := configprocessor.ChartInfo{
		Width:         c.Chart.Width,
		Height:        c.Chart.Height,
		PaddingTop:    c.Chart.Padding.Top,
		PaddingRight:  c.Chart.Padding.Right,
		PaddingBottom: c.Chart.Padding.Bottom,
		PaddingLeft:   c.Chart.Padding.Left,
		Range:         c.Chart.Range,
		Relative:      c.Chart.Relative,
		FrameRate:     c.Chart.FrameRate,
		BaselineIndex: c.Chart.BaselineIndex,
	}

	var series []configprocessor.SeriesInfo
	for _, s := range c.Series {
		info := configprocessor.SeriesInfo{
			Name:  s.Name,
			Color: s.Color,
			File:  s.File,
		}
		for _, p := range s.Points {
			info.Points = append(info.Points, configprocessor.PointInfo{Date: p.Date, Value: p.Value})
		}
		series = append(series, info)
	}

	processor := configprocessor.NewProcessor()
	return processor.ValidateConfiguration(chart, series)
}
