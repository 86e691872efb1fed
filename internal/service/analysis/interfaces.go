package analysis

import (
	"context"

	"github.com/threatforge/insider-synth/internal/domain/activity"
)

// Service computes aggregate views over a generated dataset.
type Service interface {
	// Analyze builds the overview, per-group, per-employee and per-day
	// summaries for the dataset. The dataset is not modified.
	Analyze(ctx context.Context, dataset *activity.Dataset) (*Summary, error)
}
