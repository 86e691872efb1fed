// Package behavior holds the per-group activity patterns that drive the
// daily simulation. Each behavioral group (employee.Group) carries its own
// work-hour distribution and activity likelihoods, tuned so the generated
// population shows distinct, learnable profiles per job family.
package behavior

import (
	"github.com/threatforge/insider-synth/internal/domain/employee"
	"github.com/threatforge/insider-synth/internal/domain/errors"
)

// Simulation bounds shared by the activity samplers.
const (
	MinWorkHour     = 6
	MaxWorkHour     = 22
	MinWorkDuration = 4

	MinTripDuration = 1
	MaxTripDuration = 14
)

// WorkHours is the normal distribution of daily start and end hours,
// expressed as fractional hours of the day.
type WorkHours struct {
	StartMean float64
	StartStd  float64
	EndMean   float64
	EndStd    float64
}

// PrintVolume sets the expected print command count, page count, and color
// share for days on which the employee prints.
type PrintVolume struct {
	CommandsMean float64
	PagesMean    float64
	ColorRatio   float64
}

// BurnProfile sets the destruction-request volume parameters. VolumeMu is
// the log-space mean of the lognormal burn volume draw, in MB.
type BurnProfile struct {
	RequestsMean       float64
	VolumeMu           float64
	FilesMean          float64
	HighClassification bool
}

// Pattern is the complete behavioral profile of one group.
type Pattern struct {
	WorkHours        WorkHours
	PrintLikelihood  float64
	PrintVolume      PrintVolume
	BurnLikelihood   float64
	Burn             BurnProfile
	TravelLikelihood float64
	OffHoursTendency float64

	// WeekendWork is the weekend shift probability. Only the security
	// group staffs weekends on a rota; for everyone else weekend access
	// is handled by the sampler's rare-work branches.
	WeekendWork float64
}

var patterns = map[employee.Group]Pattern{
	employee.GroupExecutive: {
		WorkHours:        WorkHours{StartMean: 7.5, StartStd: 1.0, EndMean: 18.5, EndStd: 1.5},
		PrintLikelihood:  0.4,
		PrintVolume:      PrintVolume{CommandsMean: 4, PagesMean: 12, ColorRatio: 0.4},
		BurnLikelihood:   0.08,
		Burn:             BurnProfile{RequestsMean: 2, VolumeMu: 7.5, FilesMean: 15, HighClassification: true},
		TravelLikelihood: 0.015,
		OffHoursTendency: 0.3,
	},
	employee.GroupEngineering: {
		WorkHours:        WorkHours{StartMean: 8.5, StartStd: 0.8, EndMean: 18.0, EndStd: 2.0},
		PrintLikelihood:  0.2,
		PrintVolume:      PrintVolume{CommandsMean: 2, PagesMean: 6, ColorRatio: 0.1},
		BurnLikelihood:   0.12,
		Burn:             BurnProfile{RequestsMean: 3, VolumeMu: 6.8, FilesMean: 35},
		TravelLikelihood: 0.003,
		OffHoursTendency: 0.4,
	},
	employee.GroupOffice: {
		WorkHours:        WorkHours{StartMean: 8.0, StartStd: 0.3, EndMean: 16.5, EndStd: 0.5},
		PrintLikelihood:  0.6,
		PrintVolume:      PrintVolume{CommandsMean: 5, PagesMean: 18, ColorRatio: 0.25},
		BurnLikelihood:   0.03,
		Burn:             BurnProfile{RequestsMean: 1, VolumeMu: 5.5, FilesMean: 8},
		TravelLikelihood: 0.001,
		OffHoursTendency: 0.05,
	},
	employee.GroupMarketing: {
		WorkHours:        WorkHours{StartMean: 8.2, StartStd: 1.0, EndMean: 17.8, EndStd: 1.8},
		PrintLikelihood:  0.7,
		PrintVolume:      PrintVolume{CommandsMean: 6, PagesMean: 22, ColorRatio: 0.6},
		BurnLikelihood:   0.06,
		Burn:             BurnProfile{RequestsMean: 2, VolumeMu: 6.5, FilesMean: 20},
		TravelLikelihood: 0.012,
		OffHoursTendency: 0.2,
	},
	employee.GroupSecurity: {
		WorkHours:        WorkHours{StartMean: 8.0, StartStd: 4.0, EndMean: 17.0, EndStd: 4.0},
		PrintLikelihood:  0.15,
		PrintVolume:      PrintVolume{CommandsMean: 2, PagesMean: 4, ColorRatio: 0.05},
		BurnLikelihood:   0.04,
		Burn:             BurnProfile{RequestsMean: 1, VolumeMu: 6.0, FilesMean: 5, HighClassification: true},
		TravelLikelihood: 0.001,
		OffHoursTendency: 0.3,
		WeekendWork:      0.6,
	},
	employee.GroupIT: {
		WorkHours:        WorkHours{StartMean: 8.5, StartStd: 1.2, EndMean: 17.5, EndStd: 2.5},
		PrintLikelihood:  0.25,
		PrintVolume:      PrintVolume{CommandsMean: 3, PagesMean: 9, ColorRatio: 0.15},
		BurnLikelihood:   0.15,
		Burn:             BurnProfile{RequestsMean: 4, VolumeMu: 7.2, FilesMean: 45},
		TravelLikelihood: 0.002,
		OffHoursTendency: 0.35,
	},
}

// ForGroup returns the behavioral pattern of the given group.
func ForGroup(g employee.Group) (Pattern, error) {
	p, ok := patterns[g]
	if !ok {
		return Pattern{}, errors.ErrPatternNotFound
	}
	return p, nil
}
