package simulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/domain/employee"
	"github.com/threatforge/insider-synth/internal/domain/values"
	"github.com/threatforge/insider-synth/internal/infrastructure/random"
)

var (
	testMonday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	testFriday = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
)

func TestAccessSampler_WeekdayInvariants(t *testing.T) {
	sub := newTestSubject(t, employee.GroupOffice, false)
	rng := random.New(19)
	var sampler AccessSampler

	present := 0
	const trials = 2000
	for i := 0; i < trials; i++ {
		a := sampler.Sample(rng, sub, testMonday, false)
		if a.NumEntries == 0 {
			assert.Equal(t, activity.Access{}, a)
			continue
		}
		present++

		assert.Equal(t, a.NumEntries, a.NumExits)

		entry, err := values.ParseTimeOfDay(a.FirstEntryTime)
		require.NoError(t, err)
		exit, err := values.ParseTimeOfDay(a.LastExitTime)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, entry.Hour(), 5)
		assert.LessOrEqual(t, entry.Hour(), 12)
		assert.LessOrEqual(t, exit.Hour(), 22)
		assert.Greater(t, exit.Minutes(), entry.Minutes())

		// Presence minutes come from the fractional hours before the
		// HH:MM truncation, so allow one minute of slack.
		assert.InDelta(t, entry.MinutesUntil(exit), a.TotalPresenceMinutes, 1)

		assert.Zero(t, a.EntryDuringWeekend)
		assert.GreaterOrEqual(t, a.NumUniqueCampus, 1)
	}

	// A flat 5% absence rate applies on weekdays.
	assert.InDelta(t, 0.95, float64(present)/trials, 0.02)
}

func TestAccessSampler_WeekendAttendanceByGroup(t *testing.T) {
	rng := random.New(53)
	var sampler AccessSampler

	attendance := func(group employee.Group, malicious bool) float64 {
		sub := newTestSubject(t, group, malicious)
		present := 0
		const trials = 3000
		for i := 0; i < trials; i++ {
			a := sampler.Sample(rng, sub, testFriday, false)
			if a.NumEntries > 0 {
				assert.Equal(t, 1, a.EntryDuringWeekend)
				present++
			}
		}
		return float64(present) / trials
	}

	office := attendance(employee.GroupOffice, false)
	security := attendance(employee.GroupSecurity, false)
	maliciousOffice := attendance(employee.GroupOffice, true)

	// Security staffs weekends on a rota; office workers almost never
	// appear, and malicious employees land in between.
	assert.InDelta(t, 0.05*0.95, office, 0.02)
	assert.InDelta(t, 0.6*0.95, security, 0.03)
	assert.Greater(t, maliciousOffice, office*2)
}

func TestAccessSampler_AbroadMostlyAbsent(t *testing.T) {
	rng := random.New(61)
	var sampler AccessSampler

	sub := newTestSubject(t, employee.GroupOffice, false)
	accessed := 0
	const trials = 5000
	for i := 0; i < trials; i++ {
		if sampler.Sample(rng, sub, testMonday, true).NumEntries > 0 {
			accessed++
		}
	}
	assert.Less(t, accessed, 25, "benign employees abroad should almost never badge in")

	malicious := newTestSubject(t, employee.GroupOffice, true)
	accessed = 0
	for i := 0; i < trials; i++ {
		if sampler.Sample(rng, malicious, testMonday, true).NumEntries > 0 {
			accessed++
		}
	}
	assert.InDelta(t, 0.05*0.95, float64(accessed)/trials, 0.02)
}

func TestAccessSampler_CustomWorkHourBounds(t *testing.T) {
	sub := newTestSubject(t, employee.GroupOffice, false)
	rng := random.New(43)
	sampler := AccessSampler{Hours: WorkHourBounds{
		MinStartHour: 8,
		MaxEndHour:   18,
		MinDuration:  6,
	}}

	for i := 0; i < 2000; i++ {
		a := sampler.Sample(rng, sub, testMonday, false)
		if a.NumEntries == 0 {
			continue
		}

		entry, err := values.ParseTimeOfDay(a.FirstEntryTime)
		require.NoError(t, err)
		exit, err := values.ParseTimeOfDay(a.LastExitTime)
		require.NoError(t, err)

		// The night-hours anomaly escapes both bounds: an early entry
		// lands in [5,7), a late exit in [20,23). Everything else must
		// respect the tightened clamp.
		if entry.Hour() >= 7 {
			assert.GreaterOrEqual(t, entry.Minutes(), 8*60)
		} else {
			assert.GreaterOrEqual(t, entry.Hour(), 5)
		}
		if exit.Minutes() > 18*60 {
			assert.GreaterOrEqual(t, exit.Hour(), 20)
		}
		assert.GreaterOrEqual(t, a.TotalPresenceMinutes, 6*60-1)
	}
}

func TestAccessSampler_NightAnomalyFlags(t *testing.T) {
	sub := newTestSubject(t, employee.GroupEngineering, true)
	rng := random.New(67)
	var sampler AccessSampler

	sawEarly := false
	for i := 0; i < 20000 && !sawEarly; i++ {
		a := sampler.Sample(rng, sub, testMonday, false)
		if a.NumEntries == 0 {
			continue
		}
		entry, err := values.ParseTimeOfDay(a.FirstEntryTime)
		require.NoError(t, err)
		if entry.Hour() < 6 {
			sawEarly = true
			assert.Equal(t, 1, a.EarlyEntryFlag)
			assert.Equal(t, 1, a.EnteredDuringNightHours)
		} else {
			assert.Zero(t, a.EarlyEntryFlag)
		}
	}
	assert.True(t, sawEarly, "night-hours anomaly never fired")
}
