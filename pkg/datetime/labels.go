package datetime

import "fmt"

// ShortLabel formats a key for an axis label: MM-DD for days, YY.MM for
// months and YYQn for quarters.
func ShortLabel(k PeriodKey) string {
	switch k.Granularity {
	case GranularityDay:
		return fmt.Sprintf("%02d-%02d", k.Month, k.Day)
	case GranularityMonth:
		return fmt.Sprintf("%02d.%02d", k.Year%100, k.Month)
	case GranularityQuarter:
		return fmt.Sprintf("%02dQ%d", k.Year%100, k.Quarter())
	default:
		return ""
	}
}

// ISOLabel formats a key for tooltips: YYYY-MM-DD, YYYY-MM or YYYYQn.
func ISOLabel(k PeriodKey) string {
	switch k.Granularity {
	case GranularityDay:
		return fmt.Sprintf("%04d-%02d-%02d", k.Year, k.Month, k.Day)
	case GranularityMonth:
		return fmt.Sprintf("%04d-%02d", k.Year, k.Month)
	case GranularityQuarter:
		return fmt.Sprintf("%04dQ%d", k.Year, k.Quarter())
	default:
		return ""
	}
}

// MonthLabel returns the YYYY-MM bucket containing k.
func MonthLabel(k PeriodKey) string {
	return fmt.Sprintf("%04d-%02d", k.Year, k.Month)
}

// QuarterLabel returns the YYYYQn bucket containing k.
func QuarterLabel(k PeriodKey) string {
	return fmt.Sprintf("%04dQ%d", k.Year, k.Quarter())
}

// YearLabel returns the YYYY bucket containing k.
func YearLabel(k PeriodKey) string {
	return fmt.Sprintf("%04d", k.Year)
}
