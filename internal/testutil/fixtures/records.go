package fixtures

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/domain/employee"
)

// DailyRecordBuilder builds test daily activity records
type DailyRecordBuilder struct {
	t   *testing.T
	rec *activity.DailyRecord
}

// NewDailyRecordBuilder creates a builder seeded with a quiet office day
func NewDailyRecordBuilder(t *testing.T) *DailyRecordBuilder {
	t.Helper()
	return &DailyRecordBuilder{
		t: t,
		rec: &activity.DailyRecord{
			EmployeeID:             "EMP0001",
			Date:                   time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), // a Monday
			EmployeeDepartment:     "Engineering",
			EmployeeCampus:         "Campus A",
			EmployeePosition:       "Engineer",
			EmployeeSeniorityYears: 5,
			EmployeeClassification: 2,
			EmployeeOriginCountry:  "USA",
			BehavioralGroup:        employee.GroupEngineering.String(),
			Access: activity.Access{
				NumEntries:           1,
				NumExits:             1,
				FirstEntryTime:       "08:30",
				LastExitTime:         "17:30",
				TotalPresenceMinutes: 540,
				NumUniqueCampus:      1,
			},
		},
	}
}

// ForProfile copies the echoed employee attributes from a profile
func (b *DailyRecordBuilder) ForProfile(p *employee.Profile) *DailyRecordBuilder {
	b.rec.EmployeeID = p.ID
	b.rec.EmployeeDepartment = p.Department
	b.rec.EmployeeCampus = p.Campus
	b.rec.EmployeePosition = p.Position
	b.rec.EmployeeSeniorityYears = p.SeniorityYears
	b.rec.EmployeeClassification = p.Classification.Level()
	b.rec.EmployeeOriginCountry = p.OriginCountry
	b.rec.BehavioralGroup = p.Group.String()
	if p.IsContractor {
		b.rec.IsContractor = 1
	}
	if p.ForeignCitizenship {
		b.rec.HasForeignCitizenship = 1
	}
	if p.CriminalRecord {
		b.rec.HasCriminalRecord = 1
	}
	if p.MedicalHistory {
		b.rec.HasMedicalHistory = 1
	}
	return b
}

// WithDate sets the record date
func (b *DailyRecordBuilder) WithDate(date time.Time) *DailyRecordBuilder {
	b.rec.Date = date
	return b
}

// WithMalicious sets the ground-truth flag
func (b *DailyRecordBuilder) WithMalicious() *DailyRecordBuilder {
	b.rec.IsMalicious = 1
	return b
}

// WithPrinting sets a consistent printing block: the page total is split
// into color and black-and-white by the ratio
func (b *DailyRecordBuilder) WithPrinting(commands, pages int, colorRatio float64) *DailyRecordBuilder {
	color := int(float64(pages) * colorRatio)
	b.rec.Print = activity.Print{
		NumPrintCommands:  commands,
		TotalPrintedPages: pages,
		NumColorPrints:    color,
		NumBWPrints:       pages - color,
		RatioColorPrints:  colorRatio,
		PrintCampuses:     1,
	}
	return b
}

// WithOffHoursPrinting attributes part of the printing to off hours
func (b *DailyRecordBuilder) WithOffHoursPrinting(commands, pages int) *DailyRecordBuilder {
	b.rec.Print.NumPrintCommandsOffHours = commands
	b.rec.Print.NumPrintedPagesOffHours = pages
	return b
}

// WithBurning sets a consistent destruction block
func (b *DailyRecordBuilder) WithBurning(requests, files int, volumeMB float64, maxClass int) *DailyRecordBuilder {
	b.rec.Burn = activity.Burn{
		NumBurnRequests:          requests,
		TotalFilesBurned:         files,
		TotalBurnVolumeMB:        volumeMB,
		MaxRequestClassification: maxClass,
		AvgRequestClassification: float64(maxClass),
		BurnCampuses:             1,
	}
	return b
}

// WithTrip sets the travel block for a day abroad
func (b *DailyRecordBuilder) WithTrip(country string, dayNumber, hostilityLevel, official int) *DailyRecordBuilder {
	hostile := 0
	if hostilityLevel > 0 {
		hostile = 1
	}
	b.rec.Travel = activity.Travel{
		IsAbroad:              1,
		TripDayNumber:         &dayNumber,
		CountryName:           &country,
		IsHostileCountryTrip:  hostile,
		HostilityCountryLevel: hostilityLevel,
		IsOfficialTrip:        official,
	}
	return b
}

// WithEntryTimes overrides the access entry and exit times
func (b *DailyRecordBuilder) WithEntryTimes(first, last string) *DailyRecordBuilder {
	b.rec.Access.FirstEntryTime = first
	b.rec.Access.LastExitTime = last
	return b
}

// WithAbsence clears the access block for a day out of the office
func (b *DailyRecordBuilder) WithAbsence() *DailyRecordBuilder {
	b.rec.Access = activity.Access{}
	return b
}

// Build validates and returns the record
func (b *DailyRecordBuilder) Build() *activity.DailyRecord {
	require.NoError(b.t, b.rec.Validate())
	return b.rec
}

// NewDataset wraps records into a dataset with a fixed seed and run id
func NewDataset(t *testing.T, records ...*activity.DailyRecord) *activity.Dataset {
	t.Helper()
	require.NotEmpty(t, records)
	ds := &activity.Dataset{
		RunID:       uuid.New(),
		Seed:        42,
		GeneratedAt: time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC),
		StartDate:   records[0].Date,
		Days:        1,
		Records:     records,
	}
	ds.Sort()
	return ds
}
