package generation

import (
	"context"
	"time"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/infrastructure/random"
	"github.com/threatforge/insider-synth/internal/service/simulation"
)

// Service runs the full daily-activity simulation for a workforce.
type Service interface {
	// Generate simulates every employee over the requested day window and
	// returns the assembled dataset, sorted by employee id and date. Equal
	// seeds and requests produce identical records for any worker count.
	Generate(ctx context.Context, rng *random.Source, req Request) (*activity.Dataset, error)
}

// TravelSimulator advances per-employee trip state one day at a time. Calls
// for the same employee must arrive in increasing date order.
type TravelSimulator interface {
	Day(rng *random.Source, sub simulation.Subject, date time.Time) activity.Travel
}

// PrintSampler draws one day of printing activity.
type PrintSampler interface {
	Sample(rng *random.Source, sub simulation.Subject, abroad bool) activity.Print
}

// BurnSampler draws one day of document destruction activity.
type BurnSampler interface {
	Sample(rng *random.Source, sub simulation.Subject, abroad bool) activity.Burn
}

// AccessSampler draws one day of building access activity.
type AccessSampler interface {
	Sample(rng *random.Source, sub simulation.Subject, date time.Time, abroad bool) activity.Access
}

// MetricsCollector defines the interface for generation metrics collection
type MetricsCollector interface {
	RecordEmployeeSimulation(ctx context.Context, durationMS float64, group string, malicious bool, records int64)
	RecordTripStart(ctx context.Context, hostile, official bool)
	RecordTripComplete(ctx context.Context)
	RecordDayActivity(ctx context.Context, pages int64, burnMB float64)
	RecordRiskIndicator(ctx context.Context, kind string)
	UpdateActiveWorkers(delta int64)
	SetProgress(ratio float64)
}
