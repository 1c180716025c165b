// Command validate checks a cleaned hourly CSV written by the cleaner. It
// verifies the output schema, visibility bounds, pressure tendency
// indicator exclusivity, the wind direction unit circle and the hourly
// cadence of the DATE index.
//
// Usage:
//
//	go run ./cmd/validate -file jfk_weather_cleaned.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/couchcryptid/weather-clean-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/weather-clean-etl/internal/domain"
)

// unitCircleTolerance allows for the six significant digits the cleaner
// writes.
const unitCircleTolerance = 1e-4

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	file := flag.String("file", "", "path to a cleaned CSV")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*file, os.Stdout); code != 0 {
		os.Exit(code)
	}
}

func run(path string, out io.Writer) int {
	fmt.Fprintln(out, "=== Cleaned Weather Data Validation ===")
	fmt.Fprintln(out)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	raw, err := csvfile.NewReader(path, nil, logger).Extract(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load cleaned CSV: %v\n", err)
		return 1
	}
	tbl, _ := domain.Normalize(raw)

	phases := []*phase{
		validateSchema(raw),
		validateVisibility(raw, tbl),
		validateIndicators(tbl),
		validateWindCircle(tbl),
		validateCadence(tbl.Index),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Rows: %d, columns: %d\n", raw.Len(), len(raw.Columns))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Phase 1: Schema ──
// The header must match the cleaned column set exactly, and every non-empty
// cell must be numeric.

func validateSchema(raw *domain.RawTable) *phase {
	p := &phase{name: "Phase 1: Schema"}

	want := domain.CleanedColumns()
	if len(raw.Columns) != len(want) {
		p.errorf("expected %d data columns, got %d", len(want), len(raw.Columns))
	}
	for i := range min(len(want), len(raw.Columns)) {
		if raw.Columns[i] != want[i] {
			p.errorf("column %d: expected %q, got %q", i+1, want[i], raw.Columns[i])
		}
	}

	for _, c := range raw.Columns {
		for i, s := range raw.Cells[c] {
			if s != "" && !domain.ParseValue(s).Valid {
				p.errorf("row %d: %s=%q is not numeric", i+1, c, s)
			}
		}
	}
	return p
}

// ── Phase 2: Visibility ──

func validateVisibility(raw *domain.RawTable, tbl *domain.Table) *phase {
	p := &phase{name: "Phase 2: Visibility Bounds"}
	if !tbl.Has(domain.ColVisibility) {
		p.errorf("column %s missing", domain.ColVisibility)
		return p
	}
	for i, v := range tbl.Column(domain.ColVisibility) {
		if v.Valid && (v.Float64 < domain.VisibilityMin || v.Float64 > domain.VisibilityMax) {
			p.errorf("row %d (%s): visibility %s outside [%g, %g]",
				i+1, raw.Index[i].Format(domain.TimestampLayout), v.Format(), domain.VisibilityMin, domain.VisibilityMax)
		}
	}
	return p
}

// ── Phase 3: Indicators ──
// Each row has at most one indicator set, and every indicator is 0 or 1.

func validateIndicators(tbl *domain.Table) *phase {
	p := &phase{name: "Phase 3: Pressure Tendency Indicators"}

	names := []string{domain.ColPressureTendencyIncr, domain.ColPressureTendencyDecr, domain.ColPressureTendencyCons}
	cols := make([][]domain.Value, 0, len(names))
	for _, n := range names {
		if !tbl.Has(n) {
			p.errorf("column %s missing", n)
			continue
		}
		cols = append(cols, tbl.Column(n))
	}
	if !p.passed() {
		return p
	}

	for i := range tbl.Len() {
		set := 0
		for j, col := range cols {
			v := col[i]
			switch {
			case !v.Valid:
				p.errorf("row %d: %s is empty", i+1, names[j])
			case v.Float64 == 1:
				set++
			case v.Float64 != 0:
				p.errorf("row %d: %s=%s is not 0 or 1", i+1, names[j], v.Format())
			}
		}
		if set > 1 {
			p.errorf("row %d: %d indicators set", i+1, set)
		}
	}
	return p
}

// ── Phase 4: Wind Direction ──

func validateWindCircle(tbl *domain.Table) *phase {
	p := &phase{name: "Phase 4: Wind Direction Unit Circle"}
	if !tbl.Has(domain.ColWindDirectionSin) || !tbl.Has(domain.ColWindDirectionCos) {
		p.errorf("wind direction feature columns missing")
		return p
	}

	sin, cos := tbl.Column(domain.ColWindDirectionSin), tbl.Column(domain.ColWindDirectionCos)
	for i := range sin {
		if sin[i].Valid != cos[i].Valid {
			p.errorf("row %d: only one of sin/cos present", i+1)
			continue
		}
		if !sin[i].Valid {
			continue
		}
		if r := sin[i].Float64*sin[i].Float64 + cos[i].Float64*cos[i].Float64; math.Abs(r-1) > unitCircleTolerance {
			p.errorf("row %d: sin²+cos² = %g", i+1, r)
		}
	}
	return p
}

// ── Phase 5: Cadence ──

func validateCadence(index []time.Time) *phase {
	p := &phase{name: "Phase 5: Hourly Cadence"}
	for i, ts := range index {
		if !ts.Equal(ts.Truncate(time.Hour)) {
			p.errorf("row %d: %s is not on the hour", i+1, ts.Format(domain.TimestampLayout))
		}
		if i > 0 && ts.Sub(index[i-1]) != time.Hour {
			p.errorf("row %d: %s follows %s", i+1, ts.Format(domain.TimestampLayout), index[i-1].Format(domain.TimestampLayout))
		}
	}
	return p
}
