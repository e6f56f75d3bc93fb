package series

import (
	"math"

	"github.com/iwvelando/marketchart/pkg/datetime"
)

// GapPolicy selects what Align writes where a series has no sample.
type GapPolicy int

const (
	// ForwardFill copies the most recent earlier sample into the gap.
	ForwardFill GapPolicy = iota
	// LeaveGaps leaves the cell absent.
	LeaveGaps
)

// AlignmentOptions configures Align. The zero value forward-fills over the
// union of all sample keys with no range restriction.
type AlignmentOptions struct {
	GapPolicy GapPolicy

	// RangeStart and RangeEnd bound the timeline inclusively. A zero key
	// leaves that side open. A bound of any granularity covers every key
	// whose period starts inside it.
	RangeStart datetime.PeriodKey
	RangeEnd   datetime.PeriodKey

	// Calendar replaces the key union with every period of the finest input
	// granularity between the bounds, defaulting to the first and last key.
	Calendar bool
}

// Cell is one series' entry at one key. Actual is true only for a real
// sample; forward-filled cells are Present but not Actual.
type Cell struct {
	Value   float64 `json:"value"`
	Present bool    `json:"present"`
	Actual  bool    `json:"actual"`
}

// Column is one series laid out on the frame's keys.
type Column struct {
	Identity
	Cells []Cell
}

// Frame is the shared timeline plus one column per input series. Every column
// has exactly len(Keys) cells.
type Frame struct {
	Keys    []datetime.PeriodKey
	Columns []Column
}

// Align merges the series onto one ascending timeline. Samples before
// RangeStart still seed forward-filling of the first keys in range.
func Align(in []Series, opts AlignmentOptions) Frame {
	keys := timeline(in, opts)
	frame := Frame{
		Keys:    keys,
		Columns: make([]Column, len(in)),
	}

	gran := datetime.GranularityUnknown
	if opts.Calendar && len(keys) > 0 {
		gran = keys[0].Granularity
	}

	for c, s := range in {
		cells := make([]Cell, len(keys))
		j := 0
		last, seen := 0.0, false
		for i, key := range keys {
			for j < len(s.Samples) && datetime.Compare(placed(s.Samples[j].Key, gran), key) < 0 {
				last, seen = s.Samples[j].Value, true
				j++
			}
			actual := false
			for j < len(s.Samples) && datetime.Compare(placed(s.Samples[j].Key, gran), key) == 0 {
				last, seen, actual = s.Samples[j].Value, true, true
				j++
			}
			switch {
			case actual:
				cells[i] = Cell{Value: last, Present: true, Actual: true}
			case seen && opts.GapPolicy == ForwardFill:
				cells[i] = Cell{Value: last, Present: true}
			}
		}
		frame.Columns[c] = Column{Identity: s.Identity, Cells: cells}
	}
	return frame
}

// Len returns the number of keys.
func (f Frame) Len() int {
	return len(f.Keys)
}

// Column returns the column with the given series name.
func (f Frame) Column(name string) (Column, bool) {
	for _, col := range f.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// Values returns the values of column c with NaN marking absent cells.
func (f Frame) Values(c int) []float64 {
	if c < 0 || c >= len(f.Columns) {
		return nil
	}
	out := make([]float64, len(f.Keys))
	for i, cell := range f.Columns[c].Cells {
		if cell.Present {
			out[i] = cell.Value
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// timeline returns the ascending keys the frame is laid out on.
func timeline(in []Series, opts AlignmentOptions) []datetime.PeriodKey {
	seen := make(map[datetime.PeriodKey]struct{})
	keys := make([]datetime.PeriodKey, 0)
	gran := datetime.GranularityUnknown
	for _, s := range in {
		for _, smp := range s.Samples {
			gran = datetime.Finer(gran, smp.Key.Granularity)
			if !inRange(smp.Key, opts) {
				continue
			}
			if _, dup := seen[smp.Key]; dup {
				continue
			}
			seen[smp.Key] = struct{}{}
			keys = append(keys, smp.Key)
		}
	}
	sortKeys(keys)

	if !opts.Calendar || gran == datetime.GranularityUnknown {
		return keys
	}

	start, end := opts.RangeStart, opts.RangeEnd
	if start.IsZero() {
		if len(keys) == 0 {
			return keys
		}
		start = keys[0]
	}
	if end.IsZero() {
		if len(keys) == 0 {
			return keys
		}
		end = keys[len(keys)-1]
	}

	calendar := make([]datetime.PeriodKey, 0)
	stop := end.Next().Start()
	for k := datetime.Truncate(start, gran); k.Start().Before(stop); k = k.Next() {
		if inRange(k, opts) {
			calendar = append(calendar, k)
		}
	}
	return calendar
}

// inRange reports whether k starts inside the option bounds.
func inRange(k datetime.PeriodKey, opts AlignmentOptions) bool {
	if !opts.RangeStart.IsZero() && k.Start().Before(opts.RangeStart.Start()) {
		return false
	}
	if !opts.RangeEnd.IsZero() && !k.Start().Before(opts.RangeEnd.Next().Start()) {
		return false
	}
	return true
}

// placed maps a sample key onto the calendar granularity. Outside calendar
// mode keys are used as they are.
func placed(k datetime.PeriodKey, gran datetime.Granularity) datetime.PeriodKey {
	if gran == datetime.GranularityUnknown {
		return k
	}
	return datetime.Truncate(k, gran)
}
