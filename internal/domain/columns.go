package domain

// Source columns of the NOAA Local Climatological Data hourly export.
const (
	ColDate             = "DATE"
	ColVisibility       = "HOURLYVISIBILITY"
	ColDryBulbTempF     = "HOURLYDRYBULBTEMPF"
	ColWetBulbTempF     = "HOURLYWETBULBTEMPF"
	ColDewPointTempF    = "HOURLYDewPointTempF"
	ColRelativeHumidity = "HOURLYRelativeHumidity"
	ColWindSpeed        = "HOURLYWindSpeed"
	ColWindDirection    = "HOURLYWindDirection"
	ColStationPressure  = "HOURLYStationPressure"
	ColPressureTendency = "HOURLYPressureTendency"
	ColSeaLevelPressure = "HOURLYSeaLevelPressure"
	ColPrecip           = "HOURLYPrecip"
	ColAltimeterSetting = "HOURLYAltimeterSetting"
)

// Derived feature columns appended by the encoders.
const (
	ColWindDirectionSin     = "HOURLYWindDirectionSin"
	ColWindDirectionCos     = "HOURLYWindDirectionCos"
	ColPressureTendencyIncr = "HOURLYPressureTendencyIncr"
	ColPressureTendencyDecr = "HOURLYPressureTendencyDecr"
	ColPressureTendencyCons = "HOURLYPressureTendencyCons"
)

// ImportColumns lists every column the cleaner loads from the source file.
// Any other column in the input is ignored.
var ImportColumns = []string{
	ColDate,
	ColVisibility,
	ColDryBulbTempF,
	ColWetBulbTempF,
	ColDewPointTempF,
	ColRelativeHumidity,
	ColWindSpeed,
	ColWindDirection,
	ColStationPressure,
	ColPressureTendency,
	ColSeaLevelPressure,
	ColPrecip,
	ColAltimeterSetting,
}

// DataColumns returns ImportColumns without the DATE index column.
func DataColumns() []string {
	cols := make([]string, 0, len(ImportColumns)-1)
	for _, c := range ImportColumns {
		if c != ColDate {
			cols = append(cols, c)
		}
	}
	return cols
}

// CleanedColumns returns the data columns of a fully cleaned table in output
// order: the numeric source columns in file order, then the wind direction
// features, then the pressure tendency indicators.
func CleanedColumns() []string {
	var cols []string
	for _, c := range DataColumns() {
		if c != ColWindDirection && c != ColPressureTendency {
			cols = append(cols, c)
		}
	}
	return append(cols,
		ColWindDirectionSin,
		ColWindDirectionCos,
		ColPressureTendencyIncr,
		ColPressureTendencyDecr,
		ColPressureTendencyCons,
	)
}
