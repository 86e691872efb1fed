// Package geography holds the campus, origin-country, and travel-destination
// tables the simulation samples from, plus the hostile-country tiers used to
// grade travel risk.
package geography

// Campuses are the site locations an employee can be assigned to or act from.
var Campuses = []string{"Campus A", "Campus B", "Campus C"}

// OriginCountries and OriginWeights describe the workforce origin-country
// distribution. The slices are index-aligned.
var OriginCountries = []string{
	"Israel", "Russia", "Ukraine", "USA", "France", "Ethiopia", "Morocco",
	"Argentina", "Germany", "UK", "India", "China", "South Africa",
	"Brazil", "Canada", "Romania", "Hungary", "Poland", "Turkey", "Georgia",
	"Iran", "Syria", "Lebanon", "Iraq", "Yemen",
	"Libya", "Afghanistan", "Pakistan", "Sudan", "Qatar",
	"North Korea", "Algeria", "Malaysia", "Kuwait", "Tunisia",
}

var OriginWeights = []float64{
	0.432, 0.08, 0.07, 0.05, 0.05, 0.04, 0.03,
	0.02, 0.02, 0.02, 0.02, 0.02, 0.02,
	0.015, 0.015, 0.015, 0.01, 0.01, 0.01, 0.01,
	0.004, 0.004, 0.004, 0.003, 0.003,
	0.003, 0.003, 0.003, 0.003, 0.003,
	0.002, 0.002, 0.002, 0.002, 0.002,
}

// TravelCountries and TravelWeights describe the ordinary trip destination
// distribution. Hostile destinations are drawn separately.
var TravelCountries = []string{
	"Turkey", "Greece", "Cyprus", "Italy", "USA", "UK", "France", "Germany",
	"UAE", "Thailand", "Spain", "Netherlands", "India",
	"China", "Japan", "Georgia", "Austria", "Switzerland",
	"Romania", "Ukraine", "South Korea", "Belgium", "Czech Republic",
}

var TravelWeights = []float64{
	0.12, 0.11, 0.1, 0.08, 0.1, 0.07, 0.06, 0.06,
	0.05, 0.04, 0.04, 0.03, 0.02,
	0.02, 0.02, 0.02, 0.01, 0.01,
	0.01, 0.01, 0.01, 0.005, 0.005,
}

// HostileCountries groups destinations by threat tier, 3 being the highest.
var HostileCountries = map[int][]string{
	3: {"Iran", "Syria", "Lebanon", "Iraq", "Yemen"},
	2: {"Libya", "Afghanistan", "Pakistan", "Sudan", "Qatar", "Russia", "North Korea"},
	1: {"Algeria", "Malaysia", "Kuwait", "Tunisia"},
}

// HostilityLevel returns the threat tier of a country, or 0 when the
// country is not on any hostile list.
func HostilityLevel(country string) int {
	return DefaultTables().HostilityLevel(country)
}

// Tables bundles the destination data a travel simulation draws from, so
// the reference lists above can be swapped out through configuration.
type Tables struct {
	TravelCountries  []string
	TravelWeights    []float64
	HostileCountries map[int][]string
}

// DefaultTables returns the reference destination tables.
func DefaultTables() Tables {
	return Tables{
		TravelCountries:  TravelCountries,
		TravelWeights:    TravelWeights,
		HostileCountries: HostileCountries,
	}
}

// HostilityLevel returns the threat tier of a country within these tables,
// or 0 when the country is not on any hostile list.
func (t Tables) HostilityLevel(country string) int {
	for level, countries := range t.HostileCountries {
		for _, c := range countries {
			if c == country {
				return level
			}
		}
	}
	return 0
}
