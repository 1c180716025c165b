package pipeline_test

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/couchcryptid/weather-clean-etl/internal/domain"
	"github.com/couchcryptid/weather-clean-etl/internal/observability"
	"github.com/couchcryptid/weather-clean-etl/internal/pipeline"
	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockExtractor struct {
	raw *domain.RawTable
	err error
}

func (m *mockExtractor) Extract(_ context.Context) (*domain.RawTable, error) {
	return m.raw, m.err
}

type mockTransformer struct {
	err    error
	called bool
}

func (m *mockTransformer) Transform(_ context.Context, raw *domain.RawTable) (*domain.Table, error) {
	m.called = true
	if m.err != nil {
		return nil, m.err
	}
	tbl, _ := domain.Normalize(raw)
	return tbl, nil
}

type mockLoader struct {
	loaded []*domain.Table
	err    error
}

func (m *mockLoader) Load(_ context.Context, t *domain.Table) error {
	if m.err != nil {
		return m.err
	}
	m.loaded = append(m.loaded, t)
	return nil
}

var testNow = time.Date(2024, time.April, 26, 15, 10, 0, 0, time.UTC)

func makeRaw(rows map[string][]string, dates ...string) *domain.RawTable {
	raw := &domain.RawTable{Cells: make(map[string][]string)}
	for _, d := range dates {
		ts, err := domain.ParseTimestamp(d)
		if err != nil {
			panic(err)
		}
		raw.Index = append(raw.Index, ts)
	}
	for _, c := range domain.DataColumns() {
		if cells, ok := rows[c]; ok {
			raw.Columns = append(raw.Columns, c)
			raw.Cells[c] = cells
		}
	}
	return raw
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	raw := makeRaw(map[string][]string{
		domain.ColVisibility: {"10", "*"},
	}, "2020-01-01 00:51", "2020-01-01 01:51")

	ext := &mockExtractor{raw: raw}
	tfm := &mockTransformer{}
	csvLoader, pqLoader := &mockLoader{}, &mockLoader{}
	metrics := observability.NewMetrics()
	clock := clockwork.NewFakeClockAt(testNow)

	p := pipeline.New(ext, tfm, []pipeline.Loader{csvLoader, pqLoader}, slog.Default(), metrics, clock)

	got, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, csvLoader.loaded, 1)
	require.Len(t, pqLoader.loaded, 1)
	assert.Same(t, got, csvLoader.loaded[0])
	assert.Same(t, got, pqLoader.loaded[0])

	assert.InDelta(t, 2, testutil.ToFloat64(metrics.RowsRead), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.RowsWritten), 0)
	assert.InDelta(t, float64(testNow.Unix()), testutil.ToFloat64(metrics.LastSuccessSeconds), 0)
}

func TestPipeline_Run_ExtractError(t *testing.T) {
	ext := &mockExtractor{err: domain.ErrNoObservations}
	tfm := &mockTransformer{}
	ldr := &mockLoader{}

	p := pipeline.New(ext, tfm, []pipeline.Loader{ldr}, slog.Default(), observability.NewMetrics(), nil)

	_, err := p.Run(context.Background())
	require.ErrorIs(t, err, domain.ErrNoObservations)
	assert.False(t, tfm.called)
	assert.Empty(t, ldr.loaded)
}

func TestPipeline_Run_TransformError(t *testing.T) {
	raw := makeRaw(map[string][]string{domain.ColVisibility: {"1"}}, "2020-01-01 00:51")
	ext := &mockExtractor{raw: raw}
	tfm := &mockTransformer{err: errors.New("bad data")}
	ldr := &mockLoader{}
	metrics := observability.NewMetrics()

	p := pipeline.New(ext, tfm, []pipeline.Loader{ldr}, slog.Default(), metrics, nil)

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transform: bad data")
	assert.Empty(t, ldr.loaded)
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.LastSuccessSeconds), 0)
}

func TestPipeline_Run_LoadErrorStopsLaterLoaders(t *testing.T) {
	raw := makeRaw(map[string][]string{domain.ColVisibility: {"1"}}, "2020-01-01 00:51")
	failing := &mockLoader{err: errors.New("disk full")}
	after := &mockLoader{}
	metrics := observability.NewMetrics()

	p := pipeline.New(&mockExtractor{raw: raw}, &mockTransformer{}, []pipeline.Loader{failing, after}, slog.Default(), metrics, nil)

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, after.loaded)
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.RowsWritten), 0)
}

func TestPipeline_Run_ContextCancellation(t *testing.T) {
	raw := makeRaw(map[string][]string{domain.ColVisibility: {"1"}}, "2020-01-01 00:51")
	tfm := &mockTransformer{}
	ldr := &mockLoader{}

	p := pipeline.New(&mockExtractor{raw: raw}, tfm, []pipeline.Loader{ldr}, slog.Default(), observability.NewMetrics(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, tfm.called)
	assert.Empty(t, ldr.loaded)
}

func TestWeatherTransformer_LastInBucket(t *testing.T) {
	tests := []struct {
		name      string
		direction []string
	}{
		{name: "last reading wins", direction: []string{"370", "10"}},
		{name: "missing last falls back to 370", direction: []string{"370", "*"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := makeRaw(map[string][]string{
				domain.ColVisibility:    {"*", "5", "7"},
				domain.ColWindDirection: append(tt.direction, "20"),
			}, "2020-01-01 00:10", "2020-01-01 00:50", "2020-01-01 01:20")

			tfm := pipeline.NewTransformer(slog.Default(), observability.NewMetrics(), clockwork.NewFakeClock())
			tbl, err := tfm.Transform(context.Background(), raw)
			require.NoError(t, err)

			want := []string{domain.ColVisibility, domain.ColWindDirectionSin, domain.ColWindDirectionCos}
			if diff := cmp.Diff(want, tbl.Columns); diff != "" {
				t.Errorf("columns mismatch (-want +got):\n%s", diff)
			}
			require.Equal(t, 1, tbl.Len())
			assert.Equal(t, time.Date(2020, 1, 1, 1, 0, 0, 0, time.UTC), tbl.Index[0])

			row := tbl.Row(0)
			assert.InDelta(t, 5, row[0].Float64, 0)
			assert.InDelta(t, math.Sin(10*math.Pi/180), row[1].Float64, 1e-9)
			assert.InDelta(t, math.Cos(10*math.Pi/180), row[2].Float64, 1e-9)
		})
	}
}

func TestWeatherTransformer_SingleHour(t *testing.T) {
	raw := makeRaw(map[string][]string{
		domain.ColVisibility:    {"*", "5"},
		domain.ColWindDirection: {"370", "10"},
	}, "2020-01-01 00:10", "2020-01-01 00:50")

	tfm := pipeline.NewTransformer(slog.Default(), observability.NewMetrics(), nil)
	tbl, err := tfm.Transform(context.Background(), raw)
	require.NoError(t, err)

	// One hourly bucket shifts out entirely, leaving a header-only table.
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, []string{domain.ColVisibility, domain.ColWindDirectionSin, domain.ColWindDirectionCos}, tbl.Columns)
}

func TestWeatherTransformer_RowCountLaw(t *testing.T) {
	dates := []string{"2020-01-01 00:05", "2020-01-01 03:59", "2020-01-01 07:30", "2020-01-01 07:45"}
	raw := makeRaw(map[string][]string{
		domain.ColPressureTendency: {"1", "4", "9", "*"},
	}, dates...)

	normalized, _ := domain.Normalize(raw)
	resampled := domain.ResampleHourly(normalized)

	tfm := pipeline.NewTransformer(slog.Default(), observability.NewMetrics(), nil)
	tbl, err := tfm.Transform(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, resampled.Len()-1, tbl.Len())
	assert.Equal(t, 7, tbl.Len())
}

func TestWeatherTransformer_IndicatorsExclusive(t *testing.T) {
	raw := makeRaw(map[string][]string{
		domain.ColPressureTendency: {"*", "0", "4", "8", "9", "2"},
	}, "2020-01-01 00:00", "2020-01-01 01:00", "2020-01-01 02:00", "2020-01-01 03:00", "2020-01-01 04:00", "2020-01-01 05:00")

	tfm := pipeline.NewTransformer(slog.Default(), observability.NewMetrics(), nil)
	tbl, err := tfm.Transform(context.Background(), raw)
	require.NoError(t, err)

	// Hours 01..05 carry codes of hours 00..04: missing, 0, 4, 8, 9.
	wantKnown := []bool{false, true, true, true, false}
	incr := tbl.Column(domain.ColPressureTendencyIncr)
	decr := tbl.Column(domain.ColPressureTendencyDecr)
	cons := tbl.Column(domain.ColPressureTendencyCons)
	require.Len(t, incr, len(wantKnown))
	for i, known := range wantKnown {
		sum := incr[i].Float64 + decr[i].Float64 + cons[i].Float64
		if known {
			assert.InDelta(t, 1, sum, 0, "row %d", i)
		} else {
			assert.InDelta(t, 0, sum, 0, "row %d", i)
		}
	}
}

func TestWeatherTransformer_Cancelled(t *testing.T) {
	raw := makeRaw(map[string][]string{domain.ColVisibility: {"1"}}, "2020-01-01 00:51")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tfm := pipeline.NewTransformer(slog.Default(), observability.NewMetrics(), nil)
	_, err := tfm.Transform(ctx, raw)
	require.ErrorIs(t, err, context.Canceled)
}
