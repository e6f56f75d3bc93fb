package series

import "github.com/iwvelando/marketchart/pkg/datetime"

// FilledSample is one day of a forward-filled daily series.
type FilledSample struct {
	Date   string  `json:"date"`
	Value  float64 `json:"value"`
	Actual bool    `json:"isActual"`
}

// FillMissing expands daily points to one entry per day from start to end
// inclusive, copying the previous value into missing days. Bounds may be
// dashed or compact. Days before the first known value are omitted, so empty
// input or invalid bounds yield an empty slice.
func FillMissing(points []Point, start, end string) []FilledSample {
	from, ok1 := datetime.ParsePeriodKey(datetime.ToAPIDayKey(start))
	to, ok2 := datetime.ParsePeriodKey(datetime.ToAPIDayKey(end))
	out := make([]FilledSample, 0)
	if !ok1 || !ok2 || len(points) == 0 {
		return out
	}

	s, _ := NewSeries(Identity{}, points)
	frame := Align([]Series{s}, AlignmentOptions{
		RangeStart: datetime.Truncate(from, datetime.GranularityDay),
		RangeEnd:   datetime.Truncate(to, datetime.GranularityDay),
		Calendar:   true,
	})
	if len(frame.Columns) == 0 {
		return out
	}
	for i, cell := range frame.Columns[0].Cells {
		if !cell.Present {
			continue
		}
		out = append(out, FilledSample{
			Date:   frame.Keys[i].String(),
			Value:  cell.Value,
			Actual: cell.Actual,
		})
	}
	return out
}
