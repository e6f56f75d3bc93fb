// Package format renders numeric readouts for tooltips, stats and axis labels.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder is shown in place of a value that is missing or not finite.
const Placeholder = "-"

var printer = message.NewPrinter(language.English)

// Number returns a grouped number with at most one fraction digit, e.g.
// "1,234.6". Non-finite input yields Placeholder.
func Number(v float64) string {
	if !finite(v) {
		return Placeholder
	}
	return printer.Sprint(number.Decimal(unsignedZero(v, 1), number.MaxFractionDigits(1)))
}

// Fixed returns a grouped number with exactly digits fraction digits.
func Fixed(v float64, digits int) string {
	if !finite(v) {
		return Placeholder
	}
	v = unsignedZero(v, digits)
	return printer.Sprint(number.Decimal(v, number.MinFractionDigits(digits), number.MaxFractionDigits(digits)))
}

// Change returns Number with a leading "+" for positive values. Zero carries
// no sign.
func Change(v float64) string {
	if !finite(v) {
		return Placeholder
	}
	v = unsignedZero(v, 1)
	if v > 0 {
		return "+" + Number(v)
	}
	return Number(v)
}

// Percent returns a signed percentage with the given fraction digits, e.g.
// "+10.0%". Zero carries no sign.
func Percent(v float64, digits int) string {
	if !finite(v) {
		return Placeholder
	}
	v = unsignedZero(v, digits)
	s := Fixed(v, digits) + "%"
	if v > 0 {
		return "+" + s
	}
	return s
}

// unsignedZero returns 0 for any value that rounds to zero at digits
// fraction digits, so "-0.0" never appears.
func unsignedZero(v float64, digits int) float64 {
	if math.Round(v*math.Pow(10, float64(digits))) == 0 {
		return 0
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
