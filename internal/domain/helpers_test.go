package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

// series builds a column from floats; NaN marks a Missing value.
func series(xs ...float64) []Value {
	out := make([]Value, len(xs))
	for i, x := range xs {
		out[i] = Some(x)
	}
	return out
}

func assertSeries(t *testing.T, want, got []Value) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		if !want[i].Valid {
			assert.False(t, got[i].Valid, "row %d: want missing, got %v", i, got[i].Float64)
			continue
		}
		if assert.True(t, got[i].Valid, "row %d: want %v, got missing", i, want[i].Float64) {
			assert.InDelta(t, want[i].Float64, got[i].Float64, 1e-9, "row %d", i)
		}
	}
}

func hour(h, m int) time.Time {
	return time.Date(2020, time.January, 1, h, m, 0, 0, time.UTC)
}
