package noise

import (
	"context"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/infrastructure/random"
)

// Service perturbs a generated dataset in place so it resembles data pulled
// from real collection systems rather than a clean simulation.
type Service interface {
	// Inject runs the burn, print, and entry-time noise passes over every
	// record, marks the rows it touched, and returns per-category counts.
	// Each row draws from its own stream derived from rng, so the outcome
	// does not depend on record order.
	Inject(ctx context.Context, rng *random.Source, dataset *activity.Dataset) (*Stats, error)
}
