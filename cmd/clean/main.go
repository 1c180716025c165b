package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/weather-clean-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/weather-clean-etl/internal/adapter/parquetfile"
	"github.com/couchcryptid/weather-clean-etl/internal/config"
	"github.com/couchcryptid/weather-clean-etl/internal/domain"
	"github.com/couchcryptid/weather-clean-etl/internal/observability"
	"github.com/couchcryptid/weather-clean-etl/internal/pipeline"
	"github.com/couchcryptid/weather-clean-etl/internal/report"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := run(ctx, cfg, logger, metrics)

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Error("metrics export failed", "error", err)
		}
	}

	if runErr != nil {
		logger.Error("cleaning failed", "input", cfg.InputPath, "error", runErr)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) error {
	clock := clockwork.NewRealClock()

	loaders := []pipeline.Loader{
		csvfile.NewWriter(csvfile.OutputPath(cfg.InputPath, csvfile.CleanedSuffix), logger),
	}
	if cfg.Parquet {
		loaders = append(loaders, parquetfile.NewWriter(csvfile.OutputPath(cfg.InputPath, parquetfile.Suffix), logger))
	}

	p := pipeline.New(
		csvfile.NewReader(cfg.InputPath, domain.ImportColumns, logger),
		pipeline.NewTransformer(logger, metrics, clock),
		loaders,
		logger, metrics, clock,
	)

	cleaned, err := p.Run(ctx)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		return report.Summarize(cleaned).Write(os.Stdout)
	}
	return nil
}
