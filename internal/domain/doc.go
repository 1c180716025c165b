// Package domain models NOAA Local Climatological Data (LCD) hourly
// observations and the operations that turn them into a model-ready series.
//
// # Data Source
//
// LCD exports are CSV files with one row per observation. Stations report
// hourly (FM-15 METAR) and sometimes more often (FM-16 SPECI), so an hour
// can hold several rows. Only the columns in [ImportColumns] are loaded.
//
// # LCD Data Conventions
//
// Missing readings:
//
//	"*" is the LCD sentinel for an unavailable reading in any column.
//	Empty cells are also missing.
//
// Precipitation ("HOURLYPrecip"):
//
//	"T" means a trace amount, too small to measure. It is treated as 0.00.
//	Some exports contain corrupted tokens with two decimal points, e.g.
//	"0.00.1". They are treated as missing rather than guessed at.
//
// Visibility ("HOURLYVISIBILITY"):
//
//	Statute miles, capped at 10. Readings outside [0, 10] are nulled.
//	No other column has documented bounds, so no other column is checked.
//
// Wind direction ("HOURLYWindDirection"):
//
//	Compass degrees, 0-360. Encoded as sine and cosine so that 359 and 1
//	are neighbours. 370 encodes identically to 10.
//
// Pressure tendency ("HOURLYPressureTendency"):
//
//	WMO code 0-8 describing the barometric trend over the preceding three
//	hours. 0-3 mean the pressure rose, 4 steady, 5-8 fell. It is categorical,
//	so gaps are forward-filled rather than interpolated.
//
// # Cleaning Sequence
//
// [Normalize] coerces every cell to a [Value], [NullOutOfRange] applies the
// visibility bounds, [ResampleHourly] keeps the last reading per hour and
// lags the series by one hour, [FillGaps] fills holes, [DropFirstRow]
// removes the synthetic lag row, and [EncodeWindDirection] and
// [EncodePressureTendency] derive the numeric features.
//
// The lag means each output row at hour H holds what was known by the end
// of hour H-1, so a model trained on it never sees readings from its own
// target hour.
package domain
