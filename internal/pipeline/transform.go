package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/weather-clean-etl/internal/domain"
	"github.com/couchcryptid/weather-clean-etl/internal/observability"
	"github.com/jonboulle/clockwork"
)

// WeatherTransformer implements Transformer using the domain cleaning
// functions, in order: normalize, range check, hourly resample, gap fill,
// first-row drop, feature encoding.
type WeatherTransformer struct {
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// NewTransformer creates a WeatherTransformer. A nil clock uses real time.
func NewTransformer(logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *WeatherTransformer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &WeatherTransformer{
		logger:  logger,
		metrics: metrics,
		clock:   clock,
	}
}

func (t *WeatherTransformer) Transform(ctx context.Context, raw *domain.RawTable) (*domain.Table, error) {
	start := t.clock.Now()
	tbl, stats := domain.Normalize(raw)
	for col, n := range stats.Missing {
		t.metrics.CellsMissing.WithLabelValues(col).Add(float64(n))
	}
	nulled := domain.NullOutOfRange(tbl)
	t.metrics.VisibilityNulled.Add(float64(nulled))
	if nulled > 0 {
		t.logger.Debug("visibility out of range", "nulled", nulled)
	}
	t.done("normalize", start, tbl)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = t.clock.Now()
	tbl = domain.ResampleHourly(tbl)
	t.done("resample", start, tbl)

	start = t.clock.Now()
	for col, n := range domain.FillGaps(tbl) {
		t.metrics.CellsFilled.WithLabelValues(col, fillMethod(col)).Add(float64(n))
	}
	domain.DropFirstRow(tbl)
	t.done("fill", start, tbl)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = t.clock.Now()
	domain.EncodeWindDirection(tbl)
	domain.EncodePressureTendency(tbl)
	t.done("encode", start, tbl)

	return tbl, nil
}

func (t *WeatherTransformer) done(stage string, start time.Time, tbl *domain.Table) {
	finishStage(t.logger, t.metrics, t.clock, stage, start, tbl.Len())
}

func fillMethod(col string) string {
	if col == domain.ColPressureTendency {
		return "ffill"
	}
	return "linear"
}
