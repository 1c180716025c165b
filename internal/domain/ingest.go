package domain

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// TimestampLayout is the layout used when writing the index back out.
const TimestampLayout = "2006-01-02 15:04:05"

// dateLayouts are tried in order. LCD exports use "2006-01-02T15:04:05";
// older NCDC extracts and hand-edited files use the others.
var dateLayouts = []string{
	"2006-01-02 15:04",
	TimestampLayout,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"01/02/2006 15:04",
	"1/2/2006 15:04",
}

var errUnknownLayout = errors.New("unrecognized timestamp layout")

// ParseTimestamp parses a DATE cell. Values without a zone are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errUnknownLayout
}

// BuildRawTable selects the required columns from a parsed CSV and indexes
// the rows by DATE. Columns keep their order in the file header, not the
// order of required. A nil required selects every header column.
//
// The index is neither sorted nor deduplicated.
func BuildRawTable(header []string, rows [][]string, required []string) (*RawTable, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = headerName(h)
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	want := make(map[string]bool, len(required))
	for _, c := range required {
		want[c] = true
	}
	if required == nil {
		for h := range pos {
			want[h] = true
		}
	}
	want[ColDate] = true

	check := required
	if !slices.Contains(check, ColDate) {
		check = append([]string{ColDate}, check...)
	}
	var missing []string
	for _, c := range check {
		if _, ok := pos[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Columns: missing}
	}

	var columns []string
	for i, h := range header {
		h = headerName(h)
		if h == ColDate || !want[h] || pos[h] != i {
			continue
		}
		columns = append(columns, h)
	}

	if len(rows) == 0 {
		return nil, ErrNoObservations
	}

	raw := &RawTable{
		Columns: columns,
		Index:   make([]time.Time, len(rows)),
		Cells:   make(map[string][]string, len(columns)),
	}
	for _, c := range columns {
		raw.Cells[c] = make([]string, len(rows))
	}

	datePos := pos[ColDate]
	for r, row := range rows {
		ts, err := ParseTimestamp(cell(row, datePos))
		if err != nil {
			return nil, &DateParseError{Row: r + 1, Value: cell(row, datePos), Err: err}
		}
		raw.Index[r] = ts
		for _, c := range columns {
			raw.Cells[c][r] = cell(row, pos[c])
		}
	}
	return raw, nil
}

// cell returns row[i], or "" for short rows.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// headerName trims whitespace and a leading UTF-8 byte order mark.
func headerName(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
}
