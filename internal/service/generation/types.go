package generation

import (
	"fmt"
	"time"

	"github.com/threatforge/insider-synth/internal/domain/errors"
	"github.com/threatforge/insider-synth/internal/service/workforce"
)

// Request describes one generation run.
type Request struct {
	// Staff is the workforce to simulate, including its malicious cohort.
	Staff *workforce.Workforce

	// Days is the length of the simulated window.
	Days int

	// StartDate is the first simulated day, normalized to UTC midnight.
	// The zero value means Days days before now, a trailing window ending
	// today.
	StartDate time.Time

	// Workers bounds the concurrent employee simulations. Values below one
	// mean one worker per CPU; the pool never exceeds the employee count.
	Workers int
}

func (r Request) validate() error {
	if r.Staff == nil || len(r.Staff.Profiles) == 0 {
		return errors.NewValidationError("EMPTY_WORKFORCE",
			"generation requires at least one employee profile")
	}
	if r.Days <= 0 {
		return errors.NewValidationError("INVALID_DAYS",
			fmt.Sprintf("day count must be positive, got %d", r.Days))
	}
	seen := make(map[string]bool, len(r.Staff.Profiles))
	for _, p := range r.Staff.Profiles {
		if seen[p.ID] {
			return fmt.Errorf("employee %s: %w", p.ID, errors.ErrDuplicateEmployee)
		}
		seen[p.ID] = true
	}
	return nil
}
