package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/weather-clean-etl/internal/domain"
	"github.com/couchcryptid/weather-clean-etl/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Extractor reads the raw observation table from the source.
type Extractor interface {
	Extract(ctx context.Context) (*domain.RawTable, error)
}

// Transformer cleans a raw table into the hourly feature table.
type Transformer interface {
	Transform(ctx context.Context, raw *domain.RawTable) (*domain.Table, error)
}

// Loader writes the cleaned table to a destination.
type Loader interface {
	Load(ctx context.Context, t *domain.Table) error
}

// Pipeline runs one extract-transform-load pass over a whole file.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	loaders     []Loader
	logger      *slog.Logger
	metrics     *observability.Metrics
	clock       clockwork.Clock
}

// New creates a Pipeline with the given stages and observability. Every
// loader receives the same cleaned table, in order. A nil clock uses real
// time.
func New(e Extractor, t Transformer, loaders []Loader, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Pipeline {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loaders:     loaders,
		logger:      logger,
		metrics:     metrics,
		clock:       clock,
	}
}

// Run extracts, cleans, and loads the table, returning the cleaned table.
// Cancellation is honored between stages.
func (p *Pipeline) Run(ctx context.Context) (*domain.Table, error) {
	start := p.clock.Now()
	p.logger.Info("pipeline started", "loaders", len(p.loaders))

	stageStart := p.clock.Now()
	raw, err := p.extractor.Extract(ctx)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	p.metrics.RowsRead.Add(float64(raw.Len()))
	p.finishStage("extract", stageStart, raw.Len())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaned, err := p.transformer.Transform(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}

	for _, l := range p.loaders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stageStart = p.clock.Now()
		if err := l.Load(ctx, cleaned); err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		p.finishStage("load", stageStart, cleaned.Len())
	}

	p.metrics.RowsWritten.Add(float64(cleaned.Len()))
	end := p.clock.Now()
	p.metrics.LastSuccessSeconds.Set(float64(end.Unix()))
	p.logger.Info("pipeline finished",
		"rows_in", raw.Len(),
		"rows_out", cleaned.Len(),
		"columns", cleaned.Width(),
		"duration", end.Sub(start),
	)
	return cleaned, nil
}

func (p *Pipeline) finishStage(stage string, start time.Time, rows int) {
	finishStage(p.logger, p.metrics, p.clock, stage, start, rows)
}

// finishStage records a stage's duration and logs its row count.
func finishStage(logger *slog.Logger, m *observability.Metrics, clock clockwork.Clock, stage string, start time.Time, rows int) {
	d := clock.Since(start)
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
	logger.Debug("stage complete", "stage", stage, "rows", rows, "duration", d)
}
