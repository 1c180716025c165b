package domain

// Visibility is reported in statute miles and LCD caps it at 10.
const (
	VisibilityMin = 0.0
	VisibilityMax = 10.0
)

// NullOutOfRange replaces visibility readings outside [VisibilityMin,
// VisibilityMax] with Missing and returns how many were replaced.
// Only visibility has documented physical bounds in the source format, so
// no other column is checked.
func NullOutOfRange(t *Table) int {
	vis := t.Column(ColVisibility)
	n := 0
	for i, v := range vis {
		if v.Valid && (v.Float64 > VisibilityMax || v.Float64 < VisibilityMin) {
			vis[i] = Missing
			n++
		}
	}
	return n
}
