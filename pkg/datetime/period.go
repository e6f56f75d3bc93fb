package datetime

import (
	"fmt"
	"strings"
	"time"
)

// Granularity is the width of the time bucket a PeriodKey names.
type Granularity int

const (
	GranularityUnknown Granularity = iota
	GranularityDay
	GranularityMonth
	GranularityQuarter
)

func (g Granularity) String() string {
	switch g {
	case GranularityDay:
		return "day"
	case GranularityMonth:
		return "month"
	case GranularityQuarter:
		return "quarter"
	default:
		return "unknown"
	}
}

// rank orders equal-start keys coarse to fine.
func (g Granularity) rank() int {
	switch g {
	case GranularityQuarter:
		return 0
	case GranularityMonth:
		return 1
	case GranularityDay:
		return 2
	default:
		return 3
	}
}

// PeriodKey identifies one sample's time bucket. Month is 1-12; for quarter
// keys it holds the first month of the quarter, and Day is 1 for month and
// quarter keys.
type PeriodKey struct {
	Granularity Granularity
	Year        int
	Month       int
	Day         int
}

// DayKey returns the day key for t.
func DayKey(t time.Time) PeriodKey {
	return PeriodKey{Granularity: GranularityDay, Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// MonthKey returns the key for a calendar month (1-12).
func MonthKey(year, month int) PeriodKey {
	return PeriodKey{Granularity: GranularityMonth, Year: year, Month: month, Day: 1}
}

// QuarterKey returns the key for quarter q (1-4).
func QuarterKey(year, q int) PeriodKey {
	return PeriodKey{Granularity: GranularityQuarter, Year: year, Month: (q-1)*3 + 1, Day: 1}
}

// ParsePeriodKey detects the encoding of s and parses it. Accepted forms are
// YYYYMMDD, YYYY-MM-DD, YYYYMM, YYYY-MM and YYYYQ1..YYYYQ4.
func ParsePeriodKey(s string) (PeriodKey, bool) {
	s = strings.TrimSpace(s)
	switch {
	case len(s) == 10 && s[4] == '-' && s[7] == '-':
		s = s[0:4] + s[5:7] + s[8:10]
	case len(s) == 7 && s[4] == '-':
		s = s[0:4] + s[5:7]
	}

	switch len(s) {
	case 8:
		t, ok := ParseDayKey(s)
		if !ok {
			return PeriodKey{}, false
		}
		return DayKey(t), true
	case 6:
		if !allDigits(s[0:4]) {
			return PeriodKey{}, false
		}
		year := atoi(s[0:4])
		if s[4] == 'Q' {
			if s[5] < '1' || s[5] > '4' {
				return PeriodKey{}, false
			}
			return QuarterKey(year, int(s[5]-'0')), true
		}
		if !allDigits(s[4:6]) {
			return PeriodKey{}, false
		}
		month := atoi(s[4:6])
		if month < 1 || month > 12 {
			return PeriodKey{}, false
		}
		return MonthKey(year, month), true
	}
	return PeriodKey{}, false
}

// MustParsePeriodKey is ParsePeriodKey for known-good literals.
func MustParsePeriodKey(s string) PeriodKey {
	k, ok := ParsePeriodKey(s)
	if !ok {
		panic(fmt.Sprintf("invalid period key %q", s))
	}
	return k
}

// IsZero reports whether k is the zero key.
func (k PeriodKey) IsZero() bool {
	return k.Granularity == GranularityUnknown
}

// Quarter returns the quarter (1-4) the key falls in.
func (k PeriodKey) Quarter() int {
	return (k.Month-1)/3 + 1
}

// String returns the canonical compact encoding.
func (k PeriodKey) String() string {
	switch k.Granularity {
	case GranularityDay:
		return fmt.Sprintf("%04d%02d%02d", k.Year, k.Month, k.Day)
	case GranularityMonth:
		return fmt.Sprintf("%04d%02d", k.Year, k.Month)
	case GranularityQuarter:
		return fmt.Sprintf("%04dQ%d", k.Year, k.Quarter())
	default:
		return ""
	}
}

// Start returns midnight UTC on the first day of the period.
func (k PeriodKey) Start() time.Time {
	return time.Date(k.Year, time.Month(k.Month), k.Day, 0, 0, 0, 0, time.UTC)
}

// Next returns the following period of the same granularity.
func (k PeriodKey) Next() PeriodKey {
	switch k.Granularity {
	case GranularityDay:
		return DayKey(k.Start().AddDate(0, 0, 1))
	case GranularityMonth:
		t := k.Start().AddDate(0, 1, 0)
		return MonthKey(t.Year(), int(t.Month()))
	case GranularityQuarter:
		t := k.Start().AddDate(0, 3, 0)
		return QuarterKey(t.Year(), (int(t.Month())-1)/3+1)
	default:
		return k
	}
}

// Compare orders keys chronologically by period start. Keys starting on the
// same day order coarse to fine. It returns -1, 0 or 1.
func Compare(a, b PeriodKey) int {
	at, bt := a.Start(), b.Start()
	switch {
	case at.Before(bt):
		return -1
	case at.After(bt):
		return 1
	}
	ar, br := a.Granularity.rank(), b.Granularity.rank()
	switch {
	case ar < br:
		return -1
	case ar > br:
		return 1
	}
	return 0
}

// DaysBetween returns the signed number of days from a's start to b's start.
func DaysBetween(a, b PeriodKey) int {
	return int(b.Start().Sub(a.Start()).Hours() / 24)
}

// Finer returns the finer of two granularities.
func Finer(a, b Granularity) Granularity {
	if a == GranularityUnknown {
		return b
	}
	if b == GranularityUnknown {
		return a
	}
	if a.rank() >= b.rank() {
		return a
	}
	return b
}

// Truncate returns the key of granularity g that contains k.
func Truncate(k PeriodKey, g Granularity) PeriodKey {
	switch g {
	case GranularityDay:
		return PeriodKey{Granularity: GranularityDay, Year: k.Year, Month: k.Month, Day: k.Day}
	case GranularityMonth:
		return MonthKey(k.Year, k.Month)
	case GranularityQuarter:
		return QuarterKey(k.Year, k.Quarter())
	default:
		return k
	}
}
