// Package parquetfile writes cleaned hourly tables as Parquet files.
package parquetfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/weather-clean-etl/internal/domain"
	"github.com/parquet-go/parquet-go"
)

// Suffix is appended to the input base name for the Parquet output.
const Suffix = "_cleaned.parquet"

const batchSize = 1024

// CleanedRow is one hourly observation in the Parquet schema. Missing
// readings are stored as nulls.
type CleanedRow struct {
	Date                 int64    `parquet:"DATE,timestamp(millisecond)"`
	Visibility           *float64 `parquet:"HOURLYVISIBILITY,optional"`
	DryBulbTempF         *float64 `parquet:"HOURLYDRYBULBTEMPF,optional"`
	WetBulbTempF         *float64 `parquet:"HOURLYWETBULBTEMPF,optional"`
	DewPointTempF        *float64 `parquet:"HOURLYDewPointTempF,optional"`
	RelativeHumidity     *float64 `parquet:"HOURLYRelativeHumidity,optional"`
	WindSpeed            *float64 `parquet:"HOURLYWindSpeed,optional"`
	StationPressure      *float64 `parquet:"HOURLYStationPressure,optional"`
	SeaLevelPressure     *float64 `parquet:"HOURLYSeaLevelPressure,optional"`
	Precip               *float64 `parquet:"HOURLYPrecip,optional"`
	AltimeterSetting     *float64 `parquet:"HOURLYAltimeterSetting,optional"`
	WindDirectionSin     *float64 `parquet:"HOURLYWindDirectionSin,optional"`
	WindDirectionCos     *float64 `parquet:"HOURLYWindDirectionCos,optional"`
	PressureTendencyIncr *float64 `parquet:"HOURLYPressureTendencyIncr,optional"`
	PressureTendencyDecr *float64 `parquet:"HOURLYPressureTendencyDecr,optional"`
	PressureTendencyCons *float64 `parquet:"HOURLYPressureTendencyCons,optional"`
}

// fields maps a table column to its slot in CleanedRow.
var fields = map[string]func(r *CleanedRow) **float64{
	domain.ColVisibility:           func(r *CleanedRow) **float64 { return &r.Visibility },
	domain.ColDryBulbTempF:         func(r *CleanedRow) **float64 { return &r.DryBulbTempF },
	domain.ColWetBulbTempF:         func(r *CleanedRow) **float64 { return &r.WetBulbTempF },
	domain.ColDewPointTempF:        func(r *CleanedRow) **float64 { return &r.DewPointTempF },
	domain.ColRelativeHumidity:     func(r *CleanedRow) **float64 { return &r.RelativeHumidity },
	domain.ColWindSpeed:            func(r *CleanedRow) **float64 { return &r.WindSpeed },
	domain.ColStationPressure:      func(r *CleanedRow) **float64 { return &r.StationPressure },
	domain.ColSeaLevelPressure:     func(r *CleanedRow) **float64 { return &r.SeaLevelPressure },
	domain.ColPrecip:               func(r *CleanedRow) **float64 { return &r.Precip },
	domain.ColAltimeterSetting:     func(r *CleanedRow) **float64 { return &r.AltimeterSetting },
	domain.ColWindDirectionSin:     func(r *CleanedRow) **float64 { return &r.WindDirectionSin },
	domain.ColWindDirectionCos:     func(r *CleanedRow) **float64 { return &r.WindDirectionCos },
	domain.ColPressureTendencyIncr: func(r *CleanedRow) **float64 { return &r.PressureTendencyIncr },
	domain.ColPressureTendencyDecr: func(r *CleanedRow) **float64 { return &r.PressureTendencyDecr },
	domain.ColPressureTendencyCons: func(r *CleanedRow) **float64 { return &r.PressureTendencyCons },
}

// Writer loads a cleaned table into a Parquet file.
type Writer struct {
	path   string
	logger *slog.Logger
}

// NewWriter creates a Writer targeting path.
func NewWriter(path string, logger *slog.Logger) *Writer {
	return &Writer{path: path, logger: logger}
}

// Path returns the output file.
func (w *Writer) Path() string { return w.path }

// Load writes every row of t. Columns outside the cleaned schema are
// skipped with a warning.
func (w *Writer) Load(ctx context.Context, t *domain.Table) error {
	for _, c := range t.Columns {
		if _, ok := fields[c]; !ok {
			w.logger.Warn("column not in parquet schema, skipping", "column", c)
		}
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create parquet output: %w", err)
	}

	pw := parquet.NewGenericWriter[CleanedRow](f)
	if err := writeRows(ctx, pw, t); err != nil {
		pw.Close()
		f.Close()
		return fmt.Errorf("write %s: %w", w.path, err)
	}
	if err := pw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finish %s: %w", w.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", w.path, err)
	}

	w.logger.Info("cleaned parquet written", "path", w.path, "rows", t.Len())
	return nil
}

func writeRows(ctx context.Context, pw *parquet.GenericWriter[CleanedRow], t *domain.Table) error {
	batch := make([]CleanedRow, 0, batchSize)
	for i := range t.Len() {
		batch = append(batch, toRow(t, i))
		if len(batch) == batchSize {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := pw.Write(batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if _, err := pw.Write(batch); err != nil {
			return err
		}
	}
	return nil
}

func toRow(t *domain.Table, i int) CleanedRow {
	row := CleanedRow{Date: t.Index[i].UnixMilli()}
	for _, c := range t.Columns {
		if slot, ok := fields[c]; ok {
			*slot(&row) = t.Column(c)[i].Ptr()
		}
	}
	return row
}
