package ingest

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/iwvelando/marketchart/internal/series"
)

// DateHeader is the header cell that marks the date column of an index sheet.
const DateHeader = "DATE"

// Table is one index sheet: a date column plus one value column per series.
type Table struct {
	Sheet   string
	Headers []string
	Dates   []string
	// Cells holds the raw cell text per header, parallel to Dates.
	Cells map[string][]string
}

// ReadWorkbook reads an index sheet from an xlsx stream. An empty sheet name
// selects the first sheet. The header row is the first row containing a
// DATE cell; rows above it (titles, notes) are skipped.
func ReadWorkbook(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheet)
	}
	return parseRows(sheet, rows)
}

func parseRows(sheet string, rows [][]string) (*Table, error) {
	headerRow, dateCol := -1, -1
	for i, row := range rows {
		for j, cell := range row {
			if strings.EqualFold(strings.TrimSpace(cell), DateHeader) {
				headerRow, dateCol = i, j
				break
			}
		}
		if headerRow >= 0 {
			break
		}
	}
	if headerRow < 0 {
		return nil, errors.Wrapf(ErrHeaderNotFound, "sheet %q", sheet)
	}

	t := &Table{Sheet: sheet, Cells: make(map[string][]string)}
	cols := make(map[int]string)
	for j, cell := range rows[headerRow] {
		name := strings.TrimSpace(cell)
		if j == dateCol || name == "" {
			continue
		}
		if _, dup := t.Cells[name]; dup {
			continue
		}
		t.Headers = append(t.Headers, name)
		t.Cells[name] = nil
		cols[j] = name
	}

	for _, row := range rows[headerRow+1:] {
		if dateCol >= len(row) || strings.TrimSpace(row[dateCol]) == "" {
			continue
		}
		t.Dates = append(t.Dates, strings.TrimSpace(row[dateCol]))
		for j, name := range cols {
			cell := ""
			if j < len(row) {
				cell = strings.TrimSpace(row[j])
			}
			t.Cells[name] = append(t.Cells[name], cell)
		}
	}
	return t, nil
}

// Points returns the points of one column. Empty cells are skipped; cells
// that are not numbers are skipped and counted.
func (t *Table) Points(column string) ([]series.Point, int, error) {
	cells, ok := t.Cells[column]
	if !ok {
		return nil, 0, errors.Wrapf(ErrColumnNotFound, "%q in sheet %q", column, t.Sheet)
	}
	points := make([]series.Point, 0, len(cells))
	bad := 0
	for i, cell := range cells {
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
		if err != nil {
			bad++
			continue
		}
		points = append(points, series.Point{Date: t.Dates[i], Value: v})
	}
	return points, bad, nil
}
