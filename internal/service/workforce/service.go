package workforce

import (
	"context"
	"fmt"
	"strconv"

	"github.com/threatforge/insider-synth/internal/domain/employee"
	"github.com/threatforge/insider-synth/internal/domain/errors"
	"github.com/threatforge/insider-synth/internal/domain/geography"
	"github.com/threatforge/insider-synth/internal/domain/organization"
	"github.com/threatforge/insider-synth/internal/domain/values"
	"github.com/threatforge/insider-synth/internal/infrastructure/random"
)

// service implements the Service interface
type service struct{}

// NewService creates a new workforce service
func NewService() Service {
	return &service{}
}

func (s *service) Generate(ctx context.Context, rng *random.Source, count int, maliciousRatio float64) (*Workforce, error) {
	if count <= 0 {
		return nil, errors.NewValidationError("INVALID_EMPLOYEE_COUNT",
			fmt.Sprintf("employee count must be positive, got %d", count))
	}
	if maliciousRatio < 0 || maliciousRatio > 1 {
		return nil, errors.NewValidationError("INVALID_MALICIOUS_RATIO",
			fmt.Sprintf("malicious ratio must be between 0 and 1, got %g", maliciousRatio))
	}

	// IDs are sequential, zero padded to the width of the population size.
	width := len(strconv.Itoa(count))

	profiles := make([]*employee.Profile, 0, count)
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id := fmt.Sprintf("%0*d", width, i+1)
		profiles = append(profiles, buildProfile(rng, id))
		ids = append(ids, id)
	}

	cohortSize := int(float64(count) * maliciousRatio)
	malicious := make(map[string]bool, cohortSize)
	for _, id := range random.SampleIDs(rng, ids, cohortSize) {
		malicious[id] = true
	}

	return &Workforce{Profiles: profiles, Malicious: malicious}, nil
}

// buildProfile draws one employee's static attributes. The department draw
// fixes the behavioral group and the clearance distribution; the position
// draw fixes the seniority range.
func buildProfile(rng *random.Source, id string) *employee.Profile {
	dept := random.PickWeighted(rng, organization.Departments, organization.DepartmentWeights())
	position := random.Pick(rng, dept.Positions)

	minYears, maxYears := organization.SeniorityRange(position)
	clearance := organization.ClassificationFor(dept.Name)

	return &employee.Profile{
		ID:                 id,
		Department:         dept.Name,
		Position:           position,
		Group:              dept.Group,
		Campus:             random.Pick(rng, geography.Campuses),
		SeniorityYears:     rng.IntBetween(minYears, maxYears),
		Classification:     values.ClampClassification(random.PickWeighted(rng, clearance.Levels, clearance.Weights)),
		OriginCountry:      random.PickWeighted(rng, geography.OriginCountries, geography.OriginWeights),
		IsContractor:       rng.Bernoulli(organization.ContractorProbability),
		ForeignCitizenship: rng.Bernoulli(organization.ForeignCitizenshipProbability),
		CriminalRecord:     rng.Bernoulli(organization.CriminalRecordProbability),
		MedicalHistory:     rng.Bernoulli(organization.MedicalHistoryProbability),
	}
}
