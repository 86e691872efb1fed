package simulation

import (
	"math"
	"sync"
	"time"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/domain/behavior"
	"github.com/threatforge/insider-synth/internal/domain/geography"
	"github.com/threatforge/insider-synth/internal/infrastructure/random"
)

// trip is one employee's open trip. It stays registered until the first
// simulated day on or after start+duration, which is the travel-free
// return day.
type trip struct {
	country  string
	start    time.Time
	duration int
	official int
}

// TravelSettings bound the trip length and supply the destination tables a
// simulator draws from.
type TravelSettings struct {
	MinTripDays int
	MaxTripDays int
	Geo         geography.Tables
}

// DefaultTravelSettings returns the reference trip bounds and tables.
func DefaultTravelSettings() TravelSettings {
	return TravelSettings{
		MinTripDays: behavior.MinTripDuration,
		MaxTripDays: behavior.MaxTripDuration,
		Geo:         geography.DefaultTables(),
	}
}

// TravelSimulator tracks open trips across employees and advances each
// employee's travel state one day at a time. Days for a given employee must
// be fed in chronological order.
type TravelSimulator struct {
	mu       sync.Mutex
	trips    map[string]*trip
	settings TravelSettings
}

// NewTravelSimulator creates a simulator with no open trips and the
// reference settings.
func NewTravelSimulator() *TravelSimulator {
	return NewTravelSimulatorWith(DefaultTravelSettings())
}

// NewTravelSimulatorWith creates a simulator with no open trips and the
// given settings.
func NewTravelSimulatorWith(settings TravelSettings) *TravelSimulator {
	return &TravelSimulator{trips: make(map[string]*trip), settings: settings}
}

// Day returns the subject's travel state for the given date, continuing an
// open trip, starting a new one, or staying home.
func (ts *TravelSimulator) Day(rng *random.Source, sub Subject, date time.Time) activity.Travel {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if t, ok := ts.trips[sub.Profile.ID]; ok {
		return ts.continueTrip(sub.Profile.ID, t, date)
	}

	likelihood := sub.Pattern.TravelLikelihood
	if sub.Malicious {
		likelihood *= 1.5
	}
	if !rng.Bernoulli(likelihood) {
		return noTravel()
	}

	return ts.startTrip(rng, sub, date)
}

// Active reports whether the employee has an open trip.
func (ts *TravelSimulator) Active(employeeID string) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	_, ok := ts.trips[employeeID]
	return ok
}

func (ts *TravelSimulator) continueTrip(employeeID string, t *trip, date time.Time) activity.Travel {
	daysSinceStart := int(date.Sub(t.start) / (24 * time.Hour))
	if daysSinceStart >= t.duration {
		delete(ts.trips, employeeID)
		return noTravel()
	}
	return ts.abroadDay(t.country, daysSinceStart+1, t.official)
}

func (ts *TravelSimulator) startTrip(rng *random.Source, sub Subject, date time.Time) activity.Travel {
	country := ts.chooseDestination(rng, sub.Malicious)

	official := 0
	if rng.Bernoulli(0.7) {
		official = 1
	}

	// Trips home to the origin country are mostly personal.
	if country == sub.Profile.OriginCountry && rng.Bernoulli(0.6) {
		official = 0
	}

	// The more hostile the destination, the rarer an official mandate.
	if level := ts.settings.Geo.HostilityLevel(country); level > 0 {
		if rng.Float64() > math.Pow(0.8, float64(level)) {
			official = 0
		}
	}

	duration := rng.IntBetween(ts.settings.MinTripDays, ts.settings.MaxTripDays)

	ts.trips[sub.Profile.ID] = &trip{
		country:  country,
		start:    date,
		duration: duration,
		official: official,
	}

	return ts.abroadDay(country, 1, official)
}

// chooseDestination draws a trip destination. Malicious employees carry an
// elevated chance of hostile destinations, highest tier first; their
// ordinary fallback is uniform, while benign travel follows the weighted
// destination mix. Empty hostile tiers fall through to ordinary travel.
func (ts *TravelSimulator) chooseDestination(rng *random.Source, malicious bool) string {
	geo := ts.settings.Geo
	r := rng.Float64()
	if malicious {
		switch {
		case r < 0.15 && len(geo.HostileCountries[3]) > 0:
			return random.Pick(rng, geo.HostileCountries[3])
		case r < 0.25 && len(geo.HostileCountries[2]) > 0:
			return random.Pick(rng, geo.HostileCountries[2])
		case r < 0.35 && len(geo.HostileCountries[1]) > 0:
			return random.Pick(rng, geo.HostileCountries[1])
		}
		return random.Pick(rng, geo.TravelCountries)
	}
	switch {
	case r < 0.02 && len(geo.HostileCountries[1]) > 0:
		return random.Pick(rng, geo.HostileCountries[1])
	case r < 0.03 && len(geo.HostileCountries[2]) > 0:
		return random.Pick(rng, geo.HostileCountries[2])
	case r < 0.035 && len(geo.HostileCountries[3]) > 0:
		return random.Pick(rng, geo.HostileCountries[3])
	}
	return random.PickWeighted(rng, geo.TravelCountries, geo.TravelWeights)
}

func (ts *TravelSimulator) abroadDay(country string, dayNumber, official int) activity.Travel {
	level := ts.settings.Geo.HostilityLevel(country)
	hostile := 0
	if level > 0 {
		hostile = 1
	}
	return activity.Travel{
		IsAbroad:              1,
		TripDayNumber:         &dayNumber,
		CountryName:           &country,
		IsHostileCountryTrip:  hostile,
		HostilityCountryLevel: level,
		IsOfficialTrip:        official,
	}
}

func noTravel() activity.Travel {
	return activity.Travel{}
}
