// Package constants provides shared constants for the marketchart application.
package constants

// Period key layouts used by the upstream market-data feeds.
const (
	// DayKeyLayout is the compact day encoding, e.g. 20240115.
	DayKeyLayout = "20060102"

	// MonthKeyLayout is the compact month encoding, e.g. 202401.
	MonthKeyLayout = "200601"

	// ISODayLayout is the dashed day encoding used by date inputs.
	ISODayLayout = "2006-01-02"

	// ISOMonthLayout is the dashed month encoding used by month inputs.
	ISOMonthLayout = "2006-01"
)

// Viewport defaults, in SVG viewBox units.
const (
	DefaultViewportWidth  = 1200.0
	DefaultViewportHeight = 400.0

	DefaultPaddingTop    = 40.0
	DefaultPaddingRight  = 40.0
	DefaultPaddingBottom = 60.0
	DefaultPaddingLeft   = 80.0

	// MinChartDimension is the smallest drawable width or height once padding
	// has been subtracted.
	MinChartDimension = 1.0
)

// Axis and scale defaults
const (
	// MaxShortRangeLabels caps the number of x-axis labels for short ranges.
	MaxShortRangeLabels = 10

	// ShortRangeDays is the longest range that labels individual samples.
	ShortRangeDays = 31

	// MediumRangeDays is the longest range that labels one point per month.
	MediumRangeDays = 365

	// YearlyLabelThreshold is the key count above which long ranges are
	// labelled per year instead of per quarter.
	YearlyLabelThreshold = 100

	// DefaultValueTickSteps is the number of intervals on the value axis.
	DefaultValueTickSteps = 5

	// MinimalExtentSpan is the span used when every value is identical.
	MinimalExtentSpan = 1.0
)

// Interaction defaults
const (
	// DefaultFrameRate is the number of pointer recomputations allowed per
	// second.
	DefaultFrameRate = 60

	// DefaultTooltipPadding is the gap between pointer and tooltip, in pixels.
	DefaultTooltipPadding = 15.0
)

// Relative display mode names
const (
	RelativeAuto   = "auto"
	RelativeAlways = "always"
	RelativeNever  = "never"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the render output as JSON
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment overrides read by viper.
	EnvPrefix = "MARKETCHART"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for series files (4 MB)
	DefaultMaxUploadSizeBytes int64 = 4 * 1024 * 1024

	// DefaultShutdownTimeout bounds graceful server shutdown
	DefaultShutdownTimeout = "10s"
)

// Numeric constants
const (
	// DecimalPrecision is the precision for coordinate rounding (2 decimal places)
	DecimalPrecision = 100

	// Tolerance is the tolerance for floating point comparisons.
	Tolerance = 1e-9

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)
