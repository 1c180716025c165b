package domain

import (
	"strings"
	"time"
)

const (
	// SentinelMissing is the LCD placeholder for an unavailable reading.
	SentinelMissing = "*"
	// TracePrecip marks a precipitation amount too small to measure.
	TracePrecip = "T"
	// tracePrecipValue is what a trace amount rounds to for modeling.
	tracePrecipValue = "0.00"
)

// NormalizeStats counts, per column, the cells that ended up Missing
// after normalization and coercion.
type NormalizeStats struct {
	Missing map[string]int
}

// NormalizeCell applies the string-level substitutions for one cell of the
// named column: the sentinel becomes empty, and in the precipitation column
// a trace marker becomes 0.00 and dual-decimal tokens become empty.
func NormalizeCell(column, s string) string {
	if s == SentinelMissing {
		return ""
	}
	if column != ColPrecip {
		return s
	}
	if s == TracePrecip {
		return tracePrecipValue
	}
	if strings.Count(s, ".") > 1 {
		return ""
	}
	return s
}

// Normalize converts a RawTable into a numeric Table. Every cell goes through
// NormalizeCell and then ParseValue; a cell that cannot be coerced becomes
// Missing and never aborts the run.
func Normalize(raw *RawTable) (*Table, NormalizeStats) {
	stats := NormalizeStats{Missing: make(map[string]int, len(raw.Columns))}
	index := make([]time.Time, len(raw.Index))
	copy(index, raw.Index)
	t := NewTable(index)

	for _, c := range raw.Columns {
		cells := raw.Cells[c]
		values := make([]Value, len(cells))
		for i, s := range cells {
			values[i] = ParseValue(NormalizeCell(c, s))
			if !values[i].Valid {
				stats.Missing[c]++
			}
		}
		t.Set(c, values)
	}
	return t, stats
}
