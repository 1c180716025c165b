package domain

import "time"

// ResampleHourly buckets rows by the hour they fall in and keeps, for each
// column, the last non-missing value seen in that hour in input order. The
// buckets run contiguously from the earliest to the latest hour, so hours
// with no readings become all-missing rows.
//
// The result is then shifted forward one hour: row i carries the readings
// of hour i-1 and row 0 is all-missing. Callers drop row 0 with
// DropFirstRow once gaps have been filled.
func ResampleHourly(t *Table) *Table {
	if t.Len() == 0 {
		out := NewTable(nil)
		for _, c := range t.Columns {
			out.Set(c, nil)
		}
		return out
	}

	first, last := t.Index[0].Truncate(time.Hour), t.Index[0].Truncate(time.Hour)
	for _, ts := range t.Index[1:] {
		h := ts.Truncate(time.Hour)
		if h.Before(first) {
			first = h
		}
		if h.After(last) {
			last = h
		}
	}

	n := int(last.Sub(first)/time.Hour) + 1
	index := make([]time.Time, n)
	for i := range index {
		index[i] = first.Add(time.Duration(i) * time.Hour)
	}

	bucket := make([]int, t.Len())
	for r, ts := range t.Index {
		bucket[r] = int(ts.Truncate(time.Hour).Sub(first) / time.Hour)
	}

	out := NewTable(index)
	for _, c := range t.Columns {
		lastInHour := make([]Value, n)
		for r, v := range t.Column(c) {
			if v.Valid {
				lastInHour[bucket[r]] = v
			}
		}
		out.Set(c, shiftForward(lastInHour))
	}
	return out
}

// shiftForward moves every value down one row, leaving row 0 Missing and
// discarding the final value.
func shiftForward(values []Value) []Value {
	shifted := make([]Value, len(values))
	if len(values) > 1 {
		copy(shifted[1:], values[:len(values)-1])
	}
	return shifted
}
