package interaction

import (
	"github.com/iwvelando/marketchart/pkg/datetime"
	"github.com/iwvelando/marketchart/pkg/format"
	"github.com/iwvelando/marketchart/pkg/mathutil"
)

// Row is one series' line in the tooltip.
type Row struct {
	Label         string   `json:"label"`
	Color         string   `json:"color"`
	Value         float64  `json:"value"`
	ValueText     string   `json:"valueText"`
	ChangePercent *float64 `json:"changePercent,omitempty"`
	ChangeText    string   `json:"changeText,omitempty"`
}

// Tooltip is the content descriptor for the hovered index.
type Tooltip struct {
	DateLabel string `json:"dateLabel"`
	Rows      []Row  `json:"rows"`
}

// BuildTooltip assembles the rows for index. Series with no value at the
// index are left out.
func BuildTooltip(s Snapshot, index int) Tooltip {
	tip := Tooltip{Rows: make([]Row, 0, len(s.Series))}
	if index < 0 || index >= len(s.Keys) {
		return tip
	}
	tip.DateLabel = DateLabel(s.Keys[index])

	for _, view := range s.Series {
		if index >= len(view.Values) || !mathutil.IsFinite(view.Values[index]) {
			continue
		}
		v := view.Values[index]
		row := Row{
			Label:     view.Name,
			Color:     view.Color,
			Value:     v,
			ValueText: format.Number(v),
		}
		if s.Relative && index < len(view.Change) && mathutil.IsFinite(view.Change[index]) {
			cp := mathutil.Round(view.Change[index])
			row.ChangePercent = &cp
			row.ChangeText = format.Percent(cp, 2)
		}
		tip.Rows = append(tip.Rows, row)
	}
	return tip
}

// DateLabel formats a key for the tooltip header. Day keys carry the short
// weekday, e.g. "2024-01-08 (월)".
func DateLabel(k datetime.PeriodKey) string {
	label := datetime.ISOLabel(k)
	if k.Granularity == datetime.GranularityDay {
		label += " (" + datetime.WeekdayShortLabel(k.Start()) + ")"
	}
	return label
}
