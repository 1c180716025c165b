package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "weather_clean"

// Metrics holds the Prometheus counters, histograms, and gauges for one
// cleaning run. They live on a private registry so a run can be exported
// to a textfile without picking up process collectors.
type Metrics struct {
	Registry *prometheus.Registry

	RowsRead    prometheus.Counter
	RowsWritten prometheus.Counter

	// Data quality metrics.
	CellsMissing       *prometheus.CounterVec // labels: column; missing after coercion
	VisibilityNulled   prometheus.Counter
	CellsFilled        *prometheus.CounterVec // labels: column, method={ffill,linear}
	StageDuration      *prometheus.HistogramVec
	LastSuccessSeconds prometheus.Gauge
}

// NewMetrics creates and registers all run metrics on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_read_total",
			Help:      "Raw observation rows read from the input file.",
		}),
		RowsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_written_total",
			Help:      "Hourly rows written to the cleaned output.",
		}),
		CellsMissing: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cells_missing_total",
			Help:      "Cells that were missing or failed numeric coercion, by column.",
		}, []string{"column"}),
		VisibilityNulled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visibility_out_of_range_total",
			Help:      "Visibility readings outside 0-10 miles replaced with missing.",
		}),
		CellsFilled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cells_filled_total",
			Help:      "Gaps filled after resampling, by column and method.",
		}, []string{"column", "method"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"stage"}),
		LastSuccessSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time the last successful run finished writing output.",
		}),
	}

	m.Registry.MustRegister(
		m.RowsRead,
		m.RowsWritten,
		m.CellsMissing,
		m.VisibilityNulled,
		m.CellsFilled,
		m.StageDuration,
		m.LastSuccessSeconds,
	)

	return m
}

// WriteTextfile writes the registry in Prometheus text format, suitable for
// the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
