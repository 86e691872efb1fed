package workforce

import (
	"context"

	"github.com/threatforge/insider-synth/internal/infrastructure/random"
)

// Service builds the static employee population for a generation run.
type Service interface {
	// Generate creates count profiles and selects the malicious cohort.
	// All draws come from rng, so a fixed seed reproduces the population.
	Generate(ctx context.Context, rng *random.Source, count int, maliciousRatio float64) (*Workforce, error)
}
