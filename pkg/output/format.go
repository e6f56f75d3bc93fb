// Package output provides utilities for formatting aligned series and chart
// renders for the terminal and the HTTP API.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iwvelando/marketchart/internal/series"
	"github.com/iwvelando/marketchart/pkg/datetime"
)

// Row is one date of an aligned frame. Values has a nil entry where a series
// has no value.
type Row struct {
	Date   string              `json:"date"`
	Values map[string]*float64 `json:"values"`
	Actual map[string]bool     `json:"actual"`
}

// ColumnKeys returns one unique key per frame column. A column keeps its
// series name unless it is empty ("series N") or already taken, in which
// case "#2", "#3" and so on is appended.
func ColumnKeys(f series.Frame) []string {
	keys := make([]string, len(f.Columns))
	seen := make(map[string]bool, len(f.Columns))
	for i, c := range f.Columns {
		base := c.Name
		if base == "" {
			base = fmt.Sprintf("series %d", i+1)
		}
		key := base
		for n := 2; seen[key]; n++ {
			key = fmt.Sprintf("%s#%d", base, n)
		}
		seen[key] = true
		keys[i] = key
	}
	return keys
}

// Rows flattens a frame into one Row per key. Values and Actual are keyed by
// ColumnKeys.
func Rows(f series.Frame) []Row {
	names := ColumnKeys(f)
	rows := make([]Row, 0, f.Len())
	for i, k := range f.Keys {
		row := Row{
			Date:   datetime.ISOLabel(k),
			Values: make(map[string]*float64, len(f.Columns)),
			Actual: make(map[string]bool, len(f.Columns)),
		}
		for j, c := range f.Columns {
			cell := c.Cells[i]
			if cell.Present {
				v := cell.Value
				row.Values[names[j]] = &v
			} else {
				row.Values[names[j]] = nil
			}
			row.Actual[names[j]] = cell.Actual
		}
		rows = append(rows, row)
	}
	return rows
}

// PrettyFormat writes a human-readable rather than machine-readable table.
// Forward-filled values are marked with an asterisk.
func PrettyFormat(w io.Writer, f series.Frame) {
	p := message.NewPrinter(language.English)

	header := []string{"Date      "}
	rule := []string{"____      "}
	for _, name := range ColumnKeys(f) {
		header = append(header, name)
		rule = append(rule, strings.Repeat("_", len(name)))
	}
	fmt.Fprintf(w, "%s\n", strings.Join(header, " | "))
	fmt.Fprintf(w, "%s\n", strings.Join(rule, " | "))

	for i, k := range f.Keys {
		cells := []string{fmt.Sprintf("%-10s", datetime.ISOLabel(k))}
		for _, c := range f.Columns {
			cell := c.Cells[i]
			switch {
			case !cell.Present:
				cells = append(cells, "-")
			case cell.Actual:
				cells = append(cells, p.Sprintf("%.2f", cell.Value))
			default:
				cells = append(cells, p.Sprintf("%.2f*", cell.Value))
			}
		}
		fmt.Fprintf(w, "%s\n", strings.Join(cells, " | "))
	}
}

// CsvFormat writes the frame in comma-separated value format, one value and
// one actual flag column per series. Absent values are empty.
func CsvFormat(w io.Writer, f series.Frame) {
	fmt.Fprintf(w, `"date"`)
	for _, name := range ColumnKeys(f) {
		fmt.Fprintf(w, `,"%s","actual (%s)"`, csvEscape(name), csvEscape(name))
	}
	fmt.Fprintf(w, "\n")
	for i, k := range f.Keys {
		fmt.Fprintf(w, `"%s"`, datetime.ISOLabel(k))
		for _, c := range f.Columns {
			cell := c.Cells[i]
			if cell.Present {
				fmt.Fprintf(w, `,"%.2f"`, cell.Value)
			} else {
				fmt.Fprintf(w, `,""`)
			}
			fmt.Fprintf(w, `,"%t"`, cell.Actual)
		}
		fmt.Fprintf(w, "\n")
	}
}

// CsvString returns CsvFormat output as a string.
func CsvString(f series.Frame) string {
	var buf bytes.Buffer
	CsvFormat(&buf, f)
	return buf.String()
}

// JSONFormat writes v as indented JSON.
func JSONFormat(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func csvEscape(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}
