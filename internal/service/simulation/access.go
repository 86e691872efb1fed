package simulation

import (
	"math"
	"time"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/domain/behavior"
	"github.com/threatforge/insider-synth/internal/domain/employee"
	"github.com/threatforge/insider-synth/internal/domain/values"
	"github.com/threatforge/insider-synth/internal/infrastructure/random"
)

// WorkHourBounds clamp the drawn workday. The zero value means the
// reference bounds.
type WorkHourBounds struct {
	MinStartHour float64
	MaxEndHour   float64
	MinDuration  float64
}

// DefaultWorkHourBounds returns the reference office bounds.
func DefaultWorkHourBounds() WorkHourBounds {
	return WorkHourBounds{
		MinStartHour: behavior.MinWorkHour,
		MaxEndHour:   behavior.MaxWorkHour,
		MinDuration:  behavior.MinWorkDuration,
	}
}

// AccessSampler draws one day of building access activity.
type AccessSampler struct {
	Hours WorkHourBounds
}

// Sample returns the subject's building access for one day. Days abroad
// produce no access except for rare badge events, suspicious ones for the
// malicious cohort. A flat absence rate keeps attendance below 100%.
func (s AccessSampler) Sample(rng *random.Source, sub Subject, date time.Time, abroad bool) activity.Access {
	if abroad {
		suspicious := sub.Malicious && rng.Bernoulli(0.05)
		rare := !sub.Malicious && rng.Bernoulli(0.001)
		if !suspicious && !rare {
			return activity.Access{}
		}
	}

	if rng.Bernoulli(0.05) {
		return activity.Access{}
	}

	startHour, endHour := workHours(rng, sub, s.Hours)

	if !worksToday(rng, sub, date) {
		return activity.Access{}
	}

	return accessData(rng, sub, date, startHour, endHour)
}

// workHours draws the day's start and end hours from the group pattern,
// clamped to plausible office bounds, with a rare night-hours anomaly that
// escapes the clamp.
func workHours(rng *random.Source, sub Subject, bounds WorkHourBounds) (float64, float64) {
	if bounds == (WorkHourBounds{}) {
		bounds = DefaultWorkHourBounds()
	}

	hours := sub.Pattern.WorkHours

	start := rng.Normal(hours.StartMean, hours.StartStd)
	end := rng.Normal(hours.EndMean, hours.EndStd)

	start = math.Max(bounds.MinStartHour, math.Min(12, start))
	end = math.Max(start+bounds.MinDuration, math.Min(bounds.MaxEndHour, end))

	anomaly := 0.008
	if sub.Malicious {
		anomaly = 0.01
	}
	if rng.Bernoulli(anomaly) {
		if rng.Bernoulli(0.5) {
			start = rng.Uniform(5, 7)
		} else {
			end = rng.Uniform(20, 23)
		}
	}

	return start, end
}

// worksToday gates weekend attendance. Security staffs weekends on a rota;
// everyone else comes in rarely, the malicious cohort more often.
func worksToday(rng *random.Source, sub Subject, date time.Time) bool {
	if activity.DayIndex(date) < 4 {
		return true
	}
	if sub.Profile.Group == employee.GroupSecurity {
		return rng.Bernoulli(sub.Pattern.WeekendWork)
	}
	if sub.Malicious && rng.Bernoulli(0.3) {
		return true
	}
	return rng.Bernoulli(0.05)
}

func accessData(rng *random.Source, sub Subject, date time.Time, startHour, endHour float64) activity.Access {
	var entries int
	if sub.Malicious && rng.Bernoulli(0.2) {
		entries = random.PickWeighted(rng, []int{2, 3, 4}, []float64{0.5, 0.3, 0.2})
	} else {
		entries = random.PickWeighted(rng, []int{1, 2}, []float64{0.8, 0.2})
	}

	entry := values.TimeOfDayFromMinutes(int(startHour * 60))
	exit := values.TimeOfDayFromMinutes(int(endHour * 60))

	campuses := 1
	if sub.Malicious && rng.Bernoulli(0.15) {
		campuses = rng.IntBetween(2, 3)
	}

	return activity.Access{
		NumEntries:              entries,
		NumExits:                entries,
		FirstEntryTime:          entry.String(),
		LastExitTime:            exit.String(),
		TotalPresenceMinutes:    int((endHour - startHour) * 60),
		EnteredDuringNightHours: boolToInt(entry.Hour() <= 5 || entry.Hour() >= 22),
		NumUniqueCampus:         campuses,
		EarlyEntryFlag:          boolToInt(entry.Hour() < 6),
		LateExitFlag:            boolToInt(exit.Hour() > 22),
		EntryDuringWeekend:      boolToInt(activity.IsWeekend(date)),
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
