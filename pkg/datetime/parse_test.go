package datetime

import (
	"strings"
	"testing"
	"time"
)

func TestMustParseTime(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		dateStr  string
		expected string
	}{
		{
			name:     "Compact day key",
			layout:   DayKeyLayout,
			dateStr:  "20250115",
			expected: "20250115",
		},
		{
			name:     "Dashed day",
			layout:   ISODayLayout,
			dateStr:  "2030-12-31",
			expected: "2030-12-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MustParseTime(tt.layout, tt.dateStr)
			if result.Format(tt.layout) != tt.expected {
				t.Errorf("MustParseTime() = %s, expected %s", result.Format(tt.layout), tt.expected)
			}
		})
	}
}

func TestMustParseTimePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseTime to panic with invalid date")
		}
	}()

	MustParseTime(DayKeyLayout, "invalid-date")
}

func TestToDayKey(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{"January 15", time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), "20240115"},
		{"Pads single digit month", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), "20240101"},
		{"Pads single digit day", time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC), "20240605"},
		{"December", time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), "20241231"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := ToDayKey(tt.date); result != tt.expected {
				t.Errorf("ToDayKey() = %s, expected %s", result, tt.expected)
			}
		})
	}
}

func TestParseDayKey(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
		year   int
		month  time.Month
		day    int
	}{
		{name: "Valid key", input: "20240115", wantOK: true, year: 2024, month: time.January, day: 15},
		{name: "Leap day", input: "20240229", wantOK: true, year: 2024, month: time.February, day: 29},
		{name: "Too short", input: "2024011", wantOK: false},
		{name: "Too long", input: "202401150", wantOK: false},
		{name: "Empty", input: "", wantOK: false},
		{name: "Non numeric", input: "2024O115", wantOK: false},
		{name: "Dashed", input: "24-01-15", wantOK: false},
		{name: "Month 13", input: "20241301", wantOK: false},
		{name: "Day zero", input: "20240100", wantOK: false},
		{name: "Non-leap Feb 29", input: "20230229", wantOK: false},
		{name: "April 31", input: "20240431", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := ParseDayKey(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseDayKey(%q) ok = %v, expected %v", tt.input, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if result.Year() != tt.year || result.Month() != tt.month || result.Day() != tt.day {
				t.Errorf("ParseDayKey(%q) = %v, expected %d-%d-%d", tt.input, result, tt.year, tt.month, tt.day)
			}
		})
	}
}

func TestDayKeyRoundTrip(t *testing.T) {
	start := time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2100, time.December, 31, 0, 0, 0, 0, time.UTC)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 17) {
		parsed, ok := ParseDayKey(ToDayKey(d))
		if !ok {
			t.Fatalf("ParseDayKey(ToDayKey(%v)) failed", d)
		}
		if !parsed.Equal(d) {
			t.Fatalf("round trip of %v produced %v", d, parsed)
		}
	}
}

func TestToAPIDayKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Dashed date", "2024-01-15", "20240115"},
		{"End of year", "2024-12-31", "20241231"},
		{"Empty", "", ""},
		{"Already compact", "20240115", "20240115"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToAPIDayKey(tt.input)
			if result != tt.expected {
				t.Errorf("ToAPIDayKey(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestToAPIDayKeyReinsertDashes(t *testing.T) {
	start := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	for d := start; d.Year() < 2004; d = d.AddDate(0, 0, 1) {
		iso := d.Format(ISODayLayout)
		key := ToAPIDayKey(iso)
		restored := strings.Join([]string{key[0:4], key[4:6], key[6:8]}, "-")
		if restored != iso {
			t.Fatalf("re-inserting dashes into %q gave %q, expected %q", key, restored, iso)
		}
	}
}

func TestToAPIMonthKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"January", "2024-01", "20240101"},
		{"December", "2024-12", "20241201"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := ToAPIMonthKey(tt.input); result != tt.expected {
				t.Errorf("ToAPIMonthKey(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month0   int
		expected int
	}{
		{"January", 2024, 0, 31},
		{"February non-leap", 2023, 1, 28},
		{"February leap", 2024, 1, 29},
		{"April", 2024, 3, 30},
		{"December", 2024, 11, 31},
		{"Century not leap", 1900, 1, 28},
		{"Four hundred leap", 2000, 1, 29},
		{"Month rolls into next year", 2023, 13, 29},
		{"Negative month rolls back", 2024, -1, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := DaysInMonth(tt.year, tt.month0); result != tt.expected {
				t.Errorf("DaysInMonth(%d, %d) = %d, expected %d", tt.year, tt.month0, result, tt.expected)
			}
		})
	}
}

func TestSafeDate(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month0    int
		day       int
		expectDay int
		expectMon time.Month
	}{
		{"Normal day", 2024, 0, 15, 15, time.January},
		{"Feb 31 leap", 2024, 1, 31, 29, time.February},
		{"Feb 31 non-leap", 2023, 1, 31, 28, time.February},
		{"April 31", 2024, 3, 31, 30, time.April},
		{"Day zero clamps up", 2024, 5, 0, 1, time.June},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SafeDate(tt.year, tt.month0, tt.day)
			if result.Day() != tt.expectDay || result.Month() != tt.expectMon {
				t.Errorf("SafeDate(%d, %d, %d) = %v, expected %s %d", tt.year, tt.month0, tt.day, result, tt.expectMon, tt.expectDay)
			}
		})
	}
}

func TestWeekdayShortLabel(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{"Sunday", time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC), "일"},
		{"Monday", time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC), "월"},
		{"Saturday", time.Date(2024, time.January, 6, 0, 0, 0, 0, time.UTC), "토"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := WeekdayShortLabel(tt.date); result != tt.expected {
				t.Errorf("WeekdayShortLabel(%v) = %s, expected %s", tt.date, result, tt.expected)
			}
		})
	}
}
