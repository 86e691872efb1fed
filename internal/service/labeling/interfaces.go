package labeling

import (
	"context"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/infrastructure/random"
)

// Service rewrites the dataset's employee-level malicious flag into
// day-level labels.
type Service interface {
	// Label copies each record's employee-level flag to is_emp_malicious,
	// then re-derives is_malicious per day: anomalous days of the malicious
	// cohort first, their adjacent days second, and a small set of benign
	// false positives last. The dataset is modified in place.
	Label(ctx context.Context, rng *random.Source, dataset *activity.Dataset) (*Stats, error)
}
