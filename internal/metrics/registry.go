package metrics

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Registry holds all domain-specific metrics for the application
type Registry struct {
	meter metric.Meter

	// Generation Metrics
	EmployeeSimDuration metric.Float64Histogram
	RecordsPerSecond    metric.Float64ObservableGauge
	RecordCounter       metric.Int64Counter
	GenerationProgress  metric.Float64ObservableGauge
	ActiveWorkers       metric.Int64ObservableGauge

	// Activity Metrics
	TripStartCounter    metric.Int64Counter
	TripCompleteCounter metric.Int64Counter
	ActiveTrips         metric.Int64ObservableGauge
	PagesPerDay         metric.Float64Histogram
	BurnVolumePerDay    metric.Float64Histogram
	RiskIndicatorCount  metric.Int64Counter

	// Noise Metrics
	NoiseModCounter  metric.Int64Counter
	NoisedRowCounter metric.Int64Counter

	// Labeling Metrics
	FlaggedDayCounter metric.Int64Counter

	// Export Metrics
	ExportDuration metric.Float64Histogram
	ExportCounter  metric.Int64Counter

	// State for observable metrics
	mu               sync.RWMutex
	activeTrips      int64
	activeWorkers    int64
	progress         float64
	recordsProcessed int64
	lastRecordCount  int64
	lastRecordTime   time.Time
}

// NewRegistry creates a new metrics registry with all domain metrics
func NewRegistry(meterName string) (*Registry, error) {
	meter := otel.Meter(meterName)
	r := &Registry{
		meter:          meter,
		lastRecordTime: time.Now(),
	}

	if err := r.initGenerationMetrics(); err != nil {
		return nil, err
	}

	if err := r.initActivityMetrics(); err != nil {
		return nil, err
	}

	if err := r.initNoiseMetrics(); err != nil {
		return nil, err
	}

	if err := r.initExportMetrics(); err != nil {
		return nil, err
	}

	return r, nil
}

// initGenerationMetrics initializes dataset generation metrics
func (r *Registry) initGenerationMetrics() error {
	var err error

	// Per-employee simulation duration histogram
	r.EmployeeSimDuration, err = r.meter.Float64Histogram(
		"synth.generation.employee_duration",
		metric.WithDescription("Duration of one employee's full simulation in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000),
	)
	if err != nil {
		return err
	}

	// Records per second gauge
	r.RecordsPerSecond, err = r.meter.Float64ObservableGauge(
		"synth.generation.throughput_per_second",
		metric.WithDescription("Current record generation throughput per second"),
		metric.WithFloat64Callback(func(ctx context.Context, o metric.Float64Observer) error {
			r.mu.Lock()
			defer r.mu.Unlock()

			now := time.Now()
			elapsed := now.Sub(r.lastRecordTime).Seconds()
			if elapsed > 0 {
				rate := float64(r.recordsProcessed-r.lastRecordCount) / elapsed
				o.Observe(rate)
				r.lastRecordCount = r.recordsProcessed
				r.lastRecordTime = now
			}
			return nil
		}),
	)
	if err != nil {
		return err
	}

	// Record counter
	r.RecordCounter, err = r.meter.Int64Counter(
		"synth.generation.records_total",
		metric.WithDescription("Total number of employee-day records generated"),
	)
	if err != nil {
		return err
	}

	// Run progress gauge
	r.GenerationProgress, err = r.meter.Float64ObservableGauge(
		"synth.generation.progress_ratio",
		metric.WithDescription("Fraction of employees whose simulation has completed"),
		metric.WithFloat64Callback(func(ctx context.Context, o metric.Float64Observer) error {
			r.mu.RLock()
			defer r.mu.RUnlock()
			o.Observe(r.progress)
			return nil
		}),
	)
	if err != nil {
		return err
	}

	// Active worker gauge
	r.ActiveWorkers, err = r.meter.Int64ObservableGauge(
		"synth.generation.active_workers",
		metric.WithDescription("Number of employee simulation workers currently running"),
		metric.WithInt64Callback(func(ctx context.Context, o metric.Int64Observer) error {
			r.mu.RLock()
			defer r.mu.RUnlock()
			o.Observe(r.activeWorkers)
			return nil
		}),
	)

	return err
}

// initActivityMetrics initializes activity sampler metrics
func (r *Registry) initActivityMetrics() error {
	var err error

	r.TripStartCounter, err = r.meter.Int64Counter(
		"synth.travel.trips_started_total",
		metric.WithDescription("Total trips started across all employees"),
	)
	if err != nil {
		return err
	}

	r.TripCompleteCounter, err = r.meter.Int64Counter(
		"synth.travel.trips_completed_total",
		metric.WithDescription("Total trips completed across all employees"),
	)
	if err != nil {
		return err
	}

	r.ActiveTrips, err = r.meter.Int64ObservableGauge(
		"synth.travel.active_trips",
		metric.WithDescription("Number of trips currently in progress"),
		metric.WithInt64Callback(func(ctx context.Context, o metric.Int64Observer) error {
			r.mu.RLock()
			defer r.mu.RUnlock()
			o.Observe(r.activeTrips)
			return nil
		}),
	)
	if err != nil {
		return err
	}

	r.PagesPerDay, err = r.meter.Float64Histogram(
		"synth.activity.pages_per_day",
		metric.WithDescription("Pages printed per active print day"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 25, 50, 100, 250, 500),
	)
	if err != nil {
		return err
	}

	r.BurnVolumePerDay, err = r.meter.Float64Histogram(
		"synth.activity.burn_volume_mb",
		metric.WithDescription("Burned volume per active burn day in MB"),
		metric.WithUnit("MBy"),
		metric.WithExplicitBucketBoundaries(10, 50, 100, 500, 1000, 5000, 10000, 50000),
	)
	if err != nil {
		return err
	}

	r.RiskIndicatorCount, err = r.meter.Int64Counter(
		"synth.activity.risk_indicators_total",
		metric.WithDescription("Total risk indicator flags raised"),
	)

	return err
}

// initNoiseMetrics initializes noise injection metrics
func (r *Registry) initNoiseMetrics() error {
	var err error

	r.NoiseModCounter, err = r.meter.Int64Counter(
		"synth.noise.modifications_total",
		metric.WithDescription("Total field modifications made by noise injection"),
	)
	if err != nil {
		return err
	}

	r.NoisedRowCounter, err = r.meter.Int64Counter(
		"synth.noise.rows_modified_total",
		metric.WithDescription("Total rows touched by noise injection"),
	)
	if err != nil {
		return err
	}

	r.FlaggedDayCounter, err = r.meter.Int64Counter(
		"synth.labeling.flagged_days_total",
		metric.WithDescription("Total employee-days flagged by the daily labeler"),
	)

	return err
}

// initExportMetrics initializes export metrics
func (r *Registry) initExportMetrics() error {
	var err error

	r.ExportDuration, err = r.meter.Float64Histogram(
		"synth.export.duration",
		metric.WithDescription("Dataset export duration in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(10, 50, 100, 500, 1000, 5000, 10000, 60000),
	)
	if err != nil {
		return err
	}

	r.ExportCounter, err = r.meter.Int64Counter(
		"synth.export.records_total",
		metric.WithDescription("Total records written by exporters"),
	)

	return err
}

// Helper methods for updating observable metric values

// UpdateActiveTrips adjusts the in-progress trip count
func (r *Registry) UpdateActiveTrips(delta int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activeTrips += delta
}

// UpdateActiveWorkers adjusts the running worker count
func (r *Registry) UpdateActiveWorkers(delta int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activeWorkers += delta
}

// SetProgress sets the completed fraction of the current run
func (r *Registry) SetProgress(ratio float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = ratio
}

// Helper methods for recording metrics with common attribute patterns

// RecordEmployeeSimulation records the simulation of one employee
func (r *Registry) RecordEmployeeSimulation(ctx context.Context, durationMS float64, group string, malicious bool, records int64) {
	attrs := []attribute.KeyValue{
		attribute.String("behavioral_group", group),
		attribute.Bool("malicious", malicious),
	}

	r.EmployeeSimDuration.Record(ctx, durationMS, metric.WithAttributes(attrs...))
	r.RecordCounter.Add(ctx, records, metric.WithAttributes(attrs...))

	r.mu.Lock()
	r.recordsProcessed += records
	r.mu.Unlock()
}

// RecordTripStart records a trip beginning
func (r *Registry) RecordTripStart(ctx context.Context, hostile, official bool) {
	r.TripStartCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("hostile", hostile),
		attribute.Bool("official", official),
	))
	r.UpdateActiveTrips(1)
}

// RecordTripComplete records a trip ending
func (r *Registry) RecordTripComplete(ctx context.Context) {
	r.TripCompleteCounter.Add(ctx, 1)
	r.UpdateActiveTrips(-1)
}

// RecordDayActivity records the volume histograms for one employee-day.
// Zero volumes mean the activity did not occur and are skipped.
func (r *Registry) RecordDayActivity(ctx context.Context, pages int64, burnMB float64) {
	if pages > 0 {
		r.PagesPerDay.Record(ctx, float64(pages))
	}
	if burnMB > 0 {
		r.BurnVolumePerDay.Record(ctx, burnMB)
	}
}

// RecordRiskIndicator counts one raised risk flag
func (r *Registry) RecordRiskIndicator(ctx context.Context, kind string) {
	r.RiskIndicatorCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

// RecordNoise records one noise pass over a row
func (r *Registry) RecordNoise(ctx context.Context, category string, modifications int64) {
	if modifications <= 0 {
		return
	}
	r.NoiseModCounter.Add(ctx, modifications, metric.WithAttributes(
		attribute.String("category", category),
	))
}

// RecordNoisedRows records rows touched by a noise pass
func (r *Registry) RecordNoisedRows(ctx context.Context, rows int64) {
	if rows <= 0 {
		return
	}
	r.NoisedRowCounter.Add(ctx, rows)
}

// RecordFlaggedDays records days flagged by one labeling stage
func (r *Registry) RecordFlaggedDays(ctx context.Context, stage string, days int64) {
	if days <= 0 {
		return
	}
	r.FlaggedDayCounter.Add(ctx, days, metric.WithAttributes(
		attribute.String("stage", stage),
	))
}

// RecordExport records one export operation
func (r *Registry) RecordExport(ctx context.Context, durationMS float64, format string, records int64) {
	attrs := []attribute.KeyValue{
		attribute.String("format", format),
	}
	r.ExportDuration.Record(ctx, durationMS, metric.WithAttributes(attrs...))
	r.ExportCounter.Add(ctx, records, metric.WithAttributes(attrs...))
}
