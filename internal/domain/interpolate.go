package domain

// ForwardFill replaces each Missing value with the most recent valid value
// before it. Leading Missing values have nothing to propagate and are kept.
// It returns the number of values filled.
func ForwardFill(values []Value) int {
	n := 0
	var prev Value
	for i, v := range values {
		if v.Valid {
			prev = v
			continue
		}
		if prev.Valid {
			values[i] = prev
			n++
		}
	}
	return n
}

// InterpolateLinear fills each run of Missing values that has a valid value
// on both sides, treating rows as equally spaced regardless of their
// timestamps. A trailing run takes the last valid value; a leading run has
// nothing before it and is kept Missing. It returns the number of values
// filled.
func InterpolateLinear(values []Value) int {
	n := 0
	left := -1
	for i, v := range values {
		if !v.Valid {
			continue
		}
		if left >= 0 && i-left > 1 {
			lo, hi := values[left].Float64, v.Float64
			span := float64(i - left)
			for j := left + 1; j < i; j++ {
				values[j] = Some(lo + (hi-lo)*float64(j-left)/span)
				n++
			}
		}
		left = i
	}
	if left >= 0 {
		for j := left + 1; j < len(values); j++ {
			values[j] = values[left]
			n++
		}
	}
	return n
}

// FillGaps forward-fills the pressure tendency code, which is categorical,
// and linearly interpolates every other column. It returns the number of
// values filled per column.
func FillGaps(t *Table) map[string]int {
	filled := make(map[string]int, t.Width())
	for _, c := range t.Columns {
		if c == ColPressureTendency {
			filled[c] = ForwardFill(t.Column(c))
			continue
		}
		filled[c] = InterpolateLinear(t.Column(c))
	}
	return filled
}
