package csvfile

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/weather-clean-etl/internal/domain"
)

// Writer loads a cleaned table into a CSV file, replacing any existing file.
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

// Load writes the header (DATE followed by the data columns) and one record
// per row. Missing values are written as empty fields.
func (w *Writer) Load(ctx context.Context, t *domain.Table) error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	if err := encode(ctx, f, t); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", w.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", w.path, err)
	}

	w.logger.Info("cleaned csv written", "path", w.path, "rows", t.Len())
	return nil
}

func encode(ctx context.Context, f *os.File, t *domain.Table) error {
	bw := bufio.NewWriter(f)
	cw := csv.NewWriter(bw)

	header := make([]string, 0, t.Width()+1)
	header = append(header, domain.ColDate)
	header = append(header, t.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	cols := make([][]domain.Value, t.Width())
	for j, c := range t.Columns {
		cols[j] = t.Column(c)
	}

	rec := make([]string, t.Width()+1)
	for i, ts := range t.Index {
		if i%4096 == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
		rec[0] = ts.Format(domain.TimestampLayout)
		for j := range cols {
			rec[j+1] = cols[j][i].Format()
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}
