package domain

import (
	"math"
	"strconv"
	"strings"
)

// Value is a nullable observation reading. The zero value is Missing.
type Value struct {
	Float64 float64
	Valid   bool
}

// Missing marks an absent or unusable reading.
var Missing = Value{}

// Some wraps a known reading. NaN is folded into Missing so it never
// leaks into comparisons downstream.
func Some(f float64) Value {
	if math.IsNaN(f) {
		return Missing
	}
	return Value{Float64: f, Valid: true}
}

// ParseValue coerces a raw cell to a Value. Anything that does not parse
// as a number becomes Missing; it never returns an error.
func ParseValue(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Missing
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Missing
	}
	return Some(f)
}

// Format renders the value with %g semantics; Missing renders empty.
func (v Value) Format() string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'g', 6, 64)
}

// Ptr returns nil for Missing, otherwise a pointer to a copy of the reading.
func (v Value) Ptr() *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
