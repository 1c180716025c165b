// Package csvfile reads raw LCD observation files and writes cleaned tables
// as CSV.
package csvfile

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/couchcryptid/weather-clean-etl/internal/domain"
	"github.com/klauspost/pgzip"
)

const readBufferSize = 256 * 1024

// Reader extracts a raw observation table from a CSV file on disk.
// Paths ending in .gz are decompressed on the fly.
type Reader struct {
	path     string
	required []string
	logger   *slog.Logger
}

// NewReader creates a Reader for path keeping only the required columns.
// A nil required keeps every column.
func NewReader(path string, required []string, logger *slog.Logger) *Reader {
	return &Reader{path: path, required: required, logger: logger}
}

// Path returns the file the reader was created for.
func (r *Reader) Path() string { return r.path }

// Extract reads the whole file and builds the raw table.
func (r *Reader) Extract(ctx context.Context) (*domain.RawTable, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var src io.Reader = bufio.NewReaderSize(f, readBufferSize)
	if strings.HasSuffix(r.path, ".gz") {
		gz, err := pgzip.NewReaderN(src, readBufferSize, runtime.NumCPU())
		if err != nil {
			return nil, fmt.Errorf("open gzip input: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	header, rows, err := readAll(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	raw, err := domain.BuildRawTable(header, rows, r.required)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", r.path, err)
	}

	r.logger.Debug("input read",
		"path", r.path,
		"rows", raw.Len(),
		"columns", len(raw.Columns),
	)
	return raw, nil
}

func readAll(ctx context.Context, src io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, domain.ErrNoObservations
	}
	if err != nil {
		return nil, nil, fmt.Errorf("header: %w", err)
	}

	var rows [][]string
	for {
		if len(rows)%4096 == 0 && ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, rec)
	}
	return header, rows, nil
}
