package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/infrastructure/export"
	"github.com/threatforge/insider-synth/internal/service/labeling"
	"github.com/threatforge/insider-synth/internal/service/noise"
)

const version = "1.0.0"

// Metric definitions for the synth binary. These aggregate per-run outcomes
// for long batch runs scraped via -metrics-addr; the per-record instruments
// live in internal/metrics.

var (
	// Generation metrics
	generationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "synth",
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "Wall-clock duration of dataset generation",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 14), // 100ms to ~13m
		},
	)

	recordsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "synth",
			Subsystem: "generation",
			Name:      "records_total",
			Help:      "Total number of employee-day records generated",
		},
	)

	maliciousRecords = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "synth",
			Subsystem: "generation",
			Name:      "malicious_records_total",
			Help:      "Total number of records carrying the malicious flag",
		},
	)

	// Labeling metrics
	labeledDays = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "synth",
			Subsystem: "labeling",
			Name:      "flagged_days_total",
			Help:      "Days flagged per labeling outcome",
		},
		[]string{"outcome"},
	)

	// Noise metrics
	noiseModifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "synth",
			Subsystem: "noise",
			Name:      "modifications_total",
			Help:      "Field-group modifications applied per noise category",
		},
		[]string{"category"},
	)

	noisedRows = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "synth",
			Subsystem: "noise",
			Name:      "modified_rows_total",
			Help:      "Rows touched by at least one noise pass",
		},
	)

	// Export metrics
	exportedFiles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "synth",
			Subsystem: "export",
			Name:      "files_total",
			Help:      "Files written per artifact kind",
		},
		[]string{"kind"},
	)

	exportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "synth",
			Subsystem: "export",
			Name:      "duration_seconds",
			Help:      "Duration of export calls",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
	)
)

// MetricsHandler returns the Prometheus scrape handler.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

func observeGeneration(elapsed time.Duration, dataset *activity.Dataset) {
	generationDuration.Observe(elapsed.Seconds())
	recordsGenerated.Add(float64(len(dataset.Records)))
	for _, rec := range dataset.Records {
		if rec.IsMalicious == 1 {
			maliciousRecords.Inc()
		}
	}
}

func observeLabeling(stats *labeling.Stats) {
	labeledDays.WithLabelValues("malicious").Add(float64(stats.MaliciousFlaggedDays))
	labeledDays.WithLabelValues("false_positive").Add(float64(stats.FalsePositiveDays))
}

func observeNoise(stats *noise.Stats) {
	noiseModifications.WithLabelValues("burn").Add(float64(stats.BurnModifications))
	noiseModifications.WithLabelValues("print").Add(float64(stats.PrintModifications))
	noiseModifications.WithLabelValues("entry_time").Add(float64(stats.EntryTimeModifications))
	noisedRows.Add(float64(stats.ModifiedRows))
}

func observeExport(result *export.Result) {
	exportDuration.Observe(result.Duration.Seconds())
	for _, f := range result.Files {
		exportedFiles.WithLabelValues(f.Kind).Inc()
	}
}
