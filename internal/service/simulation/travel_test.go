package simulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threatforge/insider-synth/internal/domain/behavior"
	"github.com/threatforge/insider-synth/internal/domain/employee"
	"github.com/threatforge/insider-synth/internal/domain/geography"
	"github.com/threatforge/insider-synth/internal/infrastructure/random"
)

func newTestSubject(t *testing.T, group employee.Group, malicious bool) Subject {
	t.Helper()

	profile, err := employee.NewProfile("0042", "R&D", "Development Engineer", group, "Campus A", 2)
	require.NoError(t, err)
	profile.OriginCountry = "Israel"
	profile.SeniorityYears = 5

	sub, err := NewSubject(profile, malicious)
	require.NoError(t, err)
	return sub
}

func TestTravelSimulator_TripLifecycle(t *testing.T) {
	sub := newTestSubject(t, employee.GroupExecutive, false)
	sub.Pattern.TravelLikelihood = 1 // force a trip on day one

	ts := NewTravelSimulator()
	rng := random.New(11)
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	first := ts.Day(rng, sub, start)
	require.Equal(t, 1, first.IsAbroad)
	require.NotNil(t, first.TripDayNumber)
	require.NotNil(t, first.CountryName)
	assert.Equal(t, 1, *first.TripDayNumber)
	assert.True(t, ts.Active(sub.Profile.ID))

	// Walk the trip to its end. Day numbers must increase by one per day
	// and never exceed the maximum duration.
	sub.Pattern.TravelLikelihood = 0
	wantDay := 2
	ended := false
	for i := 1; i <= behavior.MaxTripDuration+1; i++ {
		date := start.AddDate(0, 0, i)
		travel := ts.Day(rng, sub, date)
		if travel.IsAbroad == 0 {
			assert.Nil(t, travel.TripDayNumber)
			assert.Nil(t, travel.CountryName)
			assert.False(t, ts.Active(sub.Profile.ID))
			ended = true
			break
		}
		require.NotNil(t, travel.TripDayNumber)
		assert.Equal(t, wantDay, *travel.TripDayNumber)
		assert.Equal(t, *first.CountryName, *travel.CountryName)
		assert.Equal(t, first.IsOfficialTrip, travel.IsOfficialTrip)
		wantDay++
	}
	assert.True(t, ended, "trip never ended within the maximum duration")
	assert.LessOrEqual(t, wantDay-1, behavior.MaxTripDuration)
}

func TestTravelSimulator_ZeroLikelihoodStaysHome(t *testing.T) {
	sub := newTestSubject(t, employee.GroupOffice, false)
	sub.Pattern.TravelLikelihood = 0

	ts := NewTravelSimulator()
	rng := random.New(7)
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 60; i++ {
		travel := ts.Day(rng, sub, start.AddDate(0, 0, i))
		assert.Equal(t, 0, travel.IsAbroad)
		assert.Equal(t, 0, travel.HostilityCountryLevel)
		assert.Equal(t, 0, travel.IsOfficialTrip)
	}
}

func TestTravelSimulator_HostileMetadataConsistent(t *testing.T) {
	sub := newTestSubject(t, employee.GroupExecutive, true)
	sub.Pattern.TravelLikelihood = 1

	rng := random.New(23)
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	sawHostile := false
	for i := 0; i < 400; i++ {
		ts := NewTravelSimulator()
		travel := ts.Day(rng, sub, start)
		require.Equal(t, 1, travel.IsAbroad)
		require.NotNil(t, travel.CountryName)

		level := geography.HostilityLevel(*travel.CountryName)
		assert.Equal(t, level, travel.HostilityCountryLevel)
		if level > 0 {
			assert.Equal(t, 1, travel.IsHostileCountryTrip)
			sawHostile = true
		} else {
			assert.Equal(t, 0, travel.IsHostileCountryTrip)
		}
		assert.Contains(t, []int{0, 1}, travel.IsOfficialTrip)
	}
	assert.True(t, sawHostile, "malicious traveler never drew a hostile destination in 400 trips")
}

func TestChooseDestination_HostileRates(t *testing.T) {
	rng := random.New(99)
	ts := NewTravelSimulator()

	const trials = 20000
	hostile := map[bool]int{}
	for _, malicious := range []bool{true, false} {
		for i := 0; i < trials; i++ {
			country := ts.chooseDestination(rng, malicious)
			if geography.HostilityLevel(country) > 0 {
				hostile[malicious]++
			}
		}
	}

	maliciousRate := float64(hostile[true]) / trials
	benignRate := float64(hostile[false]) / trials

	// Malicious draws route ~35% to hostile tiers, benign ~3.5%.
	assert.InDelta(t, 0.35, maliciousRate, 0.03)
	assert.InDelta(t, 0.035, benignRate, 0.01)
}

func TestTravelSimulator_CustomSettings(t *testing.T) {
	sub := newTestSubject(t, employee.GroupExecutive, false)
	sub.Pattern.TravelLikelihood = 1

	settings := TravelSettings{
		MinTripDays: 3,
		MaxTripDays: 3,
		Geo: geography.Tables{
			TravelCountries:  []string{"Freedonia"},
			TravelWeights:    []float64{1.0},
			HostileCountries: map[int][]string{2: {"Sylvania"}},
		},
	}

	rng := random.New(31)
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	for run := 0; run < 50; run++ {
		ts := NewTravelSimulatorWith(settings)
		first := ts.Day(rng, sub, start)
		require.Equal(t, 1, first.IsAbroad)
		require.NotNil(t, first.CountryName)
		assert.Contains(t, []string{"Freedonia", "Sylvania"}, *first.CountryName)
		if *first.CountryName == "Sylvania" {
			assert.Equal(t, 2, first.HostilityCountryLevel)
			assert.Equal(t, 1, first.IsHostileCountryTrip)
		} else {
			assert.Equal(t, 0, first.HostilityCountryLevel)
		}

		// Every trip runs exactly three days under the pinned bounds.
		sub.Pattern.TravelLikelihood = 0
		for day := 2; day <= 3; day++ {
			travel := ts.Day(rng, sub, start.AddDate(0, 0, day-1))
			require.Equal(t, 1, travel.IsAbroad, "day %d should still be abroad", day)
			assert.Equal(t, day, *travel.TripDayNumber)
		}
		home := ts.Day(rng, sub, start.AddDate(0, 0, 3))
		assert.Equal(t, 0, home.IsAbroad)
		sub.Pattern.TravelLikelihood = 1
	}
}
