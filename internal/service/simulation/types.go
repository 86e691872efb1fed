// Package simulation contains the per-day activity samplers. Each sampler
// draws one employee-day of a single activity family (travel, printing,
// document destruction, building access) from the behavioral pattern of the
// employee's group, with distinct distributions for the malicious cohort.
package simulation

import (
	"github.com/threatforge/insider-synth/internal/domain/behavior"
	"github.com/threatforge/insider-synth/internal/domain/employee"
)

// Subject bundles the immutable per-employee inputs every sampler needs:
// the profile, the resolved behavioral pattern, and the cohort flag.
type Subject struct {
	Profile   *employee.Profile
	Pattern   behavior.Pattern
	Malicious bool
}

// NewSubject resolves the behavioral pattern for the profile's group.
func NewSubject(profile *employee.Profile, malicious bool) (Subject, error) {
	pattern, err := behavior.ForGroup(profile.Group)
	if err != nil {
		return Subject{}, err
	}
	return Subject{Profile: profile, Pattern: pattern, Malicious: malicious}, nil
}
