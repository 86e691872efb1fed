package fixtures

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/threatforge/insider-synth/internal/domain/employee"
)

// ProfileBuilder builds test employee profiles
type ProfileBuilder struct {
	t              *testing.T
	id             string
	department     string
	position       string
	group          employee.Group
	campus         string
	classification int
	seniority      int
	originCountry  string
	contractor     bool
	foreign        bool
	criminal       bool
	medical        bool
}

// NewProfileBuilder creates a new ProfileBuilder with defaults
func NewProfileBuilder(t *testing.T) *ProfileBuilder {
	t.Helper()
	return &ProfileBuilder{
		t:              t,
		id:             "EMP0001",
		department:     "Engineering",
		position:       "Engineer",
		group:          employee.GroupEngineering,
		campus:         "Campus A",
		classification: 2,
		seniority:      5,
		originCountry:  "USA",
	}
}

// WithID sets the employee id
func (b *ProfileBuilder) WithID(id string) *ProfileBuilder {
	b.id = id
	return b
}

// WithGroup sets the behavioral group
func (b *ProfileBuilder) WithGroup(group employee.Group) *ProfileBuilder {
	b.group = group
	return b
}

// WithDepartment sets the department and position
func (b *ProfileBuilder) WithDepartment(department, position string) *ProfileBuilder {
	b.department = department
	b.position = position
	return b
}

// WithCampus sets the home campus
func (b *ProfileBuilder) WithCampus(campus string) *ProfileBuilder {
	b.campus = campus
	return b
}

// WithClassification sets the clearance level
func (b *ProfileBuilder) WithClassification(level int) *ProfileBuilder {
	b.classification = level
	return b
}

// WithSeniority sets the seniority in years
func (b *ProfileBuilder) WithSeniority(years int) *ProfileBuilder {
	b.seniority = years
	return b
}

// WithOriginCountry sets the origin country
func (b *ProfileBuilder) WithOriginCountry(country string) *ProfileBuilder {
	b.originCountry = country
	return b
}

// WithContractor marks the employee as a contractor
func (b *ProfileBuilder) WithContractor() *ProfileBuilder {
	b.contractor = true
	return b
}

// WithBackgroundFlags sets the screening flags
func (b *ProfileBuilder) WithBackgroundFlags(foreign, criminal, medical bool) *ProfileBuilder {
	b.foreign = foreign
	b.criminal = criminal
	b.medical = medical
	return b
}

// Build creates the profile
func (b *ProfileBuilder) Build() *employee.Profile {
	p, err := employee.NewProfile(b.id, b.department, b.position, b.group, b.campus, b.classification)
	require.NoError(b.t, err)
	p.SeniorityYears = b.seniority
	p.OriginCountry = b.originCountry
	p.IsContractor = b.contractor
	p.ForeignCitizenship = b.foreign
	p.CriminalRecord = b.criminal
	p.MedicalHistory = b.medical
	return p
}
