package pipeline_test

import (
	"context"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/weather-clean-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/weather-clean-etl/internal/domain"
	"github.com/couchcryptid/weather-clean-etl/internal/observability"
	"github.com/couchcryptid/weather-clean-etl/internal/pipeline"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFixture = "testdata/lcd_sample.csv"

var sampleColumns = domain.CleanedColumns()

func runSample(t *testing.T) (*domain.Table, string, *observability.Metrics) {
	t.Helper()
	out := filepath.Join(t.TempDir(), "lcd_sample"+csvfile.CleanedSuffix)
	metrics := observability.NewMetrics()
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.April, 26, 15, 0, 0, 0, time.UTC))

	p := pipeline.New(
		csvfile.NewReader(sampleFixture, domain.ImportColumns, slog.Default()),
		pipeline.NewTransformer(slog.Default(), metrics, clock),
		[]pipeline.Loader{csvfile.NewWriter(out, slog.Default())},
		slog.Default(), metrics, clock,
	)
	tbl, err := p.Run(context.Background())
	require.NoError(t, err)
	return tbl, out, metrics
}

func TestWeatherTransformer_WithLCDFixture(t *testing.T) {
	tbl, _, _ := runSample(t)

	assert.Equal(t, sampleColumns, tbl.Columns)
	require.Equal(t, 4, tbl.Len())
	for i, ts := range tbl.Index {
		assert.Equal(t, time.Date(2020, 1, 1, i+1, 0, 0, 0, time.UTC), ts)
	}

	cases := []struct {
		column string
		want   []float64
	}{
		// 12.00 is out of range and the empty 02:00 hour is bridged linearly.
		{domain.ColVisibility, []float64{10, 25.0 / 3, 20.0 / 3, 5}},
		{domain.ColDryBulbTempF, []float64{33, 34, 35, 36}},
		{domain.ColWetBulbTempF, []float64{31, 31 + 2.0/3, 31 + 4.0/3, 33}},
		{domain.ColWindSpeed, []float64{8, 10, 11, 12}},
		{domain.ColStationPressure, []float64{29.97, 29.95, 29.925, 29.90}},
		{domain.ColPrecip, []float64{0, 0.01 / 3, 0.02 / 3, 0.01}},
		{domain.ColPressureTendencyIncr, []float64{1, 1, 1, 0}},
		{domain.ColPressureTendencyDecr, []float64{0, 0, 0, 1}},
		{domain.ColPressureTendencyCons, []float64{0, 0, 0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.column, func(t *testing.T) {
			got := tbl.Column(tc.column)
			require.Len(t, got, len(tc.want))
			for i, w := range tc.want {
				require.True(t, got[i].Valid, "row %d", i)
				assert.InDelta(t, w, got[i].Float64, 1e-9, "row %d", i)
			}
		})
	}

	// 370 degrees encodes like 10.
	sin, cos := tbl.Column(domain.ColWindDirectionSin), tbl.Column(domain.ColWindDirectionCos)
	assert.InDelta(t, math.Sin(10*math.Pi/180), sin[0].Float64, 1e-9)
	assert.InDelta(t, math.Cos(10*math.Pi/180), cos[0].Float64, 1e-9)
	assert.InDelta(t, math.Sin(30*math.Pi/180), sin[2].Float64, 1e-9)
}

func TestWeatherTransformer_WithLCDFixture_Output(t *testing.T) {
	_, out, metrics := runSample(t)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, domain.ColDate+","+strings.Join(sampleColumns, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2020-01-01 01:00:00,10,33,31,27,79,8,29.97,30.09,0,30.07,"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "2020-01-01 02:00:00,8.33333,34,31.6667,"), lines[2])

	assert.InDelta(t, 5, testutil.ToFloat64(metrics.RowsRead), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(metrics.RowsWritten), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.VisibilityNulled), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.CellsMissing.WithLabelValues(domain.ColPrecip)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.CellsFilled.WithLabelValues(domain.ColPressureTendency, "ffill")), 0)
}
