package domain

import "math"

const degToRad = 2 * math.Pi / 360

// EncodeWindDirection replaces the compass direction in degrees with its
// sine and cosine, removing the discontinuity between 359 and 0. Missing
// directions stay Missing in both features. The new columns are appended
// and the source column is dropped. It is a no-op if the column is absent.
func EncodeWindDirection(t *Table) {
	if !t.Has(ColWindDirection) {
		return
	}
	dir := t.Column(ColWindDirection)
	sin := make([]Value, len(dir))
	cos := make([]Value, len(dir))
	for i, v := range dir {
		if !v.Valid {
			continue
		}
		rad := v.Float64 * degToRad
		sin[i] = Some(math.Sin(rad))
		cos[i] = Some(math.Cos(rad))
	}
	t.Set(ColWindDirectionSin, sin)
	t.Set(ColWindDirectionCos, cos)
	t.Drop(ColWindDirection)
}

// TendencyClass groups the NOAA 3-hour pressure tendency codes.
type TendencyClass int

const (
	TendencyUnknown TendencyClass = iota
	TendencyIncrease
	TendencyDecrease
	TendencyConstant
)

// ClassifyTendency maps a pressure tendency code to its class:
// 0-3 increase, 4 constant, 5-8 decrease. Missing values and anything
// outside the code table are unknown.
func ClassifyTendency(v Value) TendencyClass {
	if !v.Valid {
		return TendencyUnknown
	}
	switch v.Float64 {
	case 0, 1, 2, 3:
		return TendencyIncrease
	case 5, 6, 7, 8:
		return TendencyDecrease
	case 4:
		return TendencyConstant
	default:
		return TendencyUnknown
	}
}

// EncodePressureTendency replaces the tendency code with three 0/1
// indicator columns. Rows with an unknown class, such as leading rows the
// forward fill could not reach, get all three indicators at 0. The new
// columns are appended and the source column is dropped. It is a no-op if
// the column is absent.
func EncodePressureTendency(t *Table) {
	if !t.Has(ColPressureTendency) {
		return
	}
	codes := t.Column(ColPressureTendency)
	incr := make([]Value, len(codes))
	decr := make([]Value, len(codes))
	cons := make([]Value, len(codes))
	for i, v := range codes {
		class := ClassifyTendency(v)
		incr[i] = indicator(class == TendencyIncrease)
		decr[i] = indicator(class == TendencyDecrease)
		cons[i] = indicator(class == TendencyConstant)
	}
	t.Set(ColPressureTendencyIncr, incr)
	t.Set(ColPressureTendencyDecr, decr)
	t.Set(ColPressureTendencyCons, cons)
	t.Drop(ColPressureTendency)
}

func indicator(on bool) Value {
	if on {
		return Some(1)
	}
	return Some(0)
}
