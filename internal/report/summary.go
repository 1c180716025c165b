// Package report renders the verbose run summary for a cleaned table.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/couchcryptid/weather-clean-etl/internal/domain"
	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const bytesPerCell = 8

// FeatureStats describes the valid readings of one output column.
type FeatureStats struct {
	Column string
	Valid  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summary is the verbose report for a cleaned table.
type Summary struct {
	Bytes        uint64
	Features     int
	Observations int
	Start, End   time.Time
	Days         int
	Columns      []FeatureStats
}

// Summarize computes the report for t. The size is an estimate of the
// in-memory footprint: eight bytes per cell including the index.
func Summarize(t *domain.Table) Summary {
	s := Summary{
		Bytes:        uint64(t.Len()) * uint64(t.Width()+1) * bytesPerCell,
		Features:     t.Width(),
		Observations: t.Len(),
	}
	if t.Len() > 0 {
		s.Start, s.End = t.Index[0], t.Index[t.Len()-1]
		s.Days = int(s.End.Sub(s.Start) / (24 * time.Hour))
	}
	for _, c := range t.Columns {
		s.Columns = append(s.Columns, columnStats(c, t.Column(c)))
	}
	return s
}

func columnStats(name string, values []domain.Value) FeatureStats {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if v.Valid {
			xs = append(xs, v.Float64)
		}
	}
	fs := FeatureStats{Column: name, Valid: len(xs)}
	if len(xs) == 0 {
		fs.Mean, fs.StdDev, fs.Min, fs.Max = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return fs
	}
	fs.Mean, fs.StdDev = stat.MeanStdDev(xs, nil)
	if len(xs) == 1 {
		fs.StdDev = 0
	}
	fs.Min, fs.Max = floats.Min(xs), floats.Max(xs)
	return fs
}

// Megabytes is the size estimate in decimal megabytes, rounded to 2 places.
func (s Summary) Megabytes() float64 {
	return round2(float64(s.Bytes) / 1e6)
}

// Months is the elapsed whole days divided by 30, rounded to 2 places.
func (s Summary) Months() float64 { return round2(float64(s.Days) / 30) }

// Years is the elapsed whole days divided by 365, rounded to 2 places.
func (s Summary) Years() float64 { return round2(float64(s.Days) / 365) }

// Write prints the summary. Dates and elapsed time are omitted for an
// empty table.
func (s Summary) Write(w io.Writer) error {
	var b strings.Builder
	b.WriteString("Data successfully cleaned, below are some stats:\n")
	fmt.Fprintf(&b, "# of megabytes held by table: %.2f (%s)\n", s.Megabytes(), humanize.Bytes(s.Bytes))
	fmt.Fprintf(&b, "# of features: %d\n", s.Features)
	fmt.Fprintf(&b, "# of observations: %s\n", humanize.Comma(int64(s.Observations)))
	if s.Observations > 0 {
		fmt.Fprintf(&b, "Start date: %s\n", s.Start.Format(domain.TimestampLayout))
		fmt.Fprintf(&b, "End date: %s\n", s.End.Format(domain.TimestampLayout))
		fmt.Fprintf(&b, "# of days: %d\n", s.Days)
		fmt.Fprintf(&b, "# of months: %.2f\n", s.Months())
		fmt.Fprintf(&b, "# of years: %.2f\n", s.Years())
	}
	if len(s.Columns) > 0 {
		b.WriteString("\n")
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	if len(s.Columns) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FEATURE\tVALID\tMEAN\tSTD\tMIN\tMAX")
	for _, f := range s.Columns {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n",
			f.Column, f.Valid, num(f.Mean), num(f.StdDev), num(f.Min), num(f.Max))
	}
	return tw.Flush()
}

func num(f float64) string {
	if math.IsNaN(f) {
		return "-"
	}
	return humanize.FormatFloat("#,###.####", f)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
