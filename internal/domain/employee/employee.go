package employee

import (
	"fmt"

	"github.com/threatforge/insider-synth/internal/domain/errors"
	"github.com/threatforge/insider-synth/internal/domain/values"
)

// Group is the behavioral classification letter assigned to an employee by
// department. Members of a group share activity distributions.
type Group string

const (
	GroupExecutive   Group = "A" // executive management
	GroupEngineering Group = "B" // developers and engineers
	GroupOffice      Group = "C" // office workers and secretaries
	GroupMarketing   Group = "D" // marketing and business development
	GroupSecurity    Group = "E" // security personnel, shift based
	GroupIT          Group = "F" // IT staff
)

// AllGroups lists every behavioral group in stable order
func AllGroups() []Group {
	return []Group{GroupExecutive, GroupEngineering, GroupOffice, GroupMarketing, GroupSecurity, GroupIT}
}

// Valid reports whether g is a known behavioral group
func (g Group) Valid() bool {
	switch g {
	case GroupExecutive, GroupEngineering, GroupOffice, GroupMarketing, GroupSecurity, GroupIT:
		return true
	}
	return false
}

func (g Group) String() string {
	return string(g)
}

// Profile holds the static attributes of one simulated employee. Profiles
// are immutable for the lifetime of a generation run.
type Profile struct {
	ID                 string                `json:"id"`
	Department         string                `json:"department"`
	Position           string                `json:"position"`
	Group              Group                 `json:"behavioral_group"`
	Campus             string                `json:"campus"`
	SeniorityYears     int                   `json:"seniority_years"`
	Classification     values.Classification `json:"classification"`
	OriginCountry      string                `json:"origin_country"`
	IsContractor       bool                  `json:"is_contractor"`
	ForeignCitizenship bool                  `json:"foreign_citizenship"`
	CriminalRecord     bool                  `json:"criminal_record"`
	MedicalHistory     bool                  `json:"medical_history"`
}

// NewProfile creates a validated employee profile
func NewProfile(id, department, position string, group Group, campus string, classification int) (*Profile, error) {
	if id == "" {
		return nil, errors.NewValidationError("EMPTY_EMPLOYEE_ID", "employee id cannot be empty")
	}
	if !group.Valid() {
		return nil, errors.NewValidationError("INVALID_GROUP",
			fmt.Sprintf("unknown behavioral group %q", group))
	}
	if department == "" {
		return nil, errors.NewValidationError("EMPTY_DEPARTMENT", "department cannot be empty")
	}
	level, err := values.NewClassification(classification)
	if err != nil {
		return nil, err
	}

	return &Profile{
		ID:             id,
		Department:     department,
		Position:       position,
		Group:          group,
		Campus:         campus,
		Classification: level,
	}, nil
}
