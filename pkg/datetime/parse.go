// Package datetime provides the period codec: parsing and formatting of the
// day, month and quarter keys used by the market-data feeds.
package datetime

import (
	"strings"
	"time"

	"github.com/iwvelando/marketchart/pkg/constants"
)

const (
	// DayKeyLayout is the compact YYYYMMDD encoding.
	DayKeyLayout = constants.DayKeyLayout

	// ISODayLayout is the dashed YYYY-MM-DD encoding.
	ISODayLayout = constants.ISODayLayout
)

var weekdayShortLabels = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ToDayKey formats a date as a zero-padded YYYYMMDD key.
func ToDayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// ParseDayKey parses a YYYYMMDD key. It reports false for any string that is
// not exactly eight digits or does not name a real calendar date.
func ParseDayKey(s string) (time.Time, bool) {
	if len(s) != 8 || !allDigits(s) {
		return time.Time{}, false
	}
	year := atoi(s[0:4])
	month := atoi(s[4:6])
	day := atoi(s[6:8])
	if month < 1 || month > 12 {
		return time.Time{}, false
	}
	if day < 1 || day > DaysInMonth(year, month-1) {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// ToAPIDayKey converts a YYYY-MM-DD date input into the YYYYMMDD form the
// market-data endpoints expect. Empty input yields empty output.
func ToAPIDayKey(iso string) string {
	return strings.ReplaceAll(iso, "-", "")
}

// ToAPIMonthKey converts a YYYY-MM month input into YYYYMM01.
func ToAPIMonthKey(isoYearMonth string) string {
	if isoYearMonth == "" {
		return ""
	}
	return strings.Replace(isoYearMonth, "-", "", 1) + "01"
}

// IsLeapYear applies the Gregorian leap year rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month. month0 is zero
// based (0 = January); values outside 0..11 roll into neighbouring years.
func DaysInMonth(year, month0 int) int {
	year, month0 = normalizeMonth(year, month0)
	switch month0 {
	case 1:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 3, 5, 8, 10:
		return 30
	default:
		return 31
	}
}

// SafeDate builds a date, clamping the day into the month instead of letting
// it roll over, so Feb 31 becomes Feb 29 or Feb 28.
func SafeDate(year, month0, day int) time.Time {
	year, month0 = normalizeMonth(year, month0)
	last := DaysInMonth(year, month0)
	if day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(year, time.Month(month0+1), day, 0, 0, 0, 0, time.UTC)
}

// WeekdayShortLabel returns the single character weekday label, Sunday first.
func WeekdayShortLabel(t time.Time) string {
	return weekdayShortLabels[t.Weekday()]
}

func normalizeMonth(year, month0 int) (int, int) {
	year += month0 / 12
	month0 %= 12
	if month0 < 0 {
		month0 += 12
		year--
	}
	return year, month0
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// atoi assumes s has already been checked with allDigits.
func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
