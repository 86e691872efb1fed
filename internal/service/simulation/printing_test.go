package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/domain/employee"
	"github.com/threatforge/insider-synth/internal/infrastructure/random"
)

func TestPrintSampler_ZeroLikelihoodIsEmpty(t *testing.T) {
	sub := newTestSubject(t, employee.GroupOffice, false)
	sub.Pattern.PrintLikelihood = 0

	rng := random.New(3)
	var sampler PrintSampler
	for i := 0; i < 50; i++ {
		assert.Equal(t, activity.Print{}, sampler.Sample(rng, sub, false))
	}
}

func TestPrintSampler_ActiveDayInvariants(t *testing.T) {
	rng := random.New(17)
	var sampler PrintSampler

	for _, malicious := range []bool{false, true} {
		sub := newTestSubject(t, employee.GroupMarketing, malicious)
		sub.Pattern.PrintLikelihood = 1

		for i := 0; i < 500; i++ {
			p := sampler.Sample(rng, sub, false)

			require.GreaterOrEqual(t, p.NumPrintCommands, 1)
			require.GreaterOrEqual(t, p.TotalPrintedPages, 1)
			assert.Equal(t, p.TotalPrintedPages, p.NumColorPrints+p.NumBWPrints)
			assert.LessOrEqual(t, p.NumPrintCommandsOffHours, p.NumPrintCommands)
			assert.LessOrEqual(t, p.NumPrintedPagesOffHours, p.TotalPrintedPages)
			assert.GreaterOrEqual(t, p.RatioColorPrints, 0.0)
			assert.LessOrEqual(t, p.RatioColorPrints, 1.0)

			if p.PrintedFromOther == 1 {
				assert.GreaterOrEqual(t, p.PrintCampuses, 2)
			} else {
				assert.Equal(t, 1, p.PrintCampuses)
			}
		}
	}
}

func TestPrintSampler_AbroadRarelyPrints(t *testing.T) {
	sub := newTestSubject(t, employee.GroupMarketing, false)
	sub.Pattern.PrintLikelihood = 1

	rng := random.New(29)
	var sampler PrintSampler

	const trials = 2000
	active := 0
	for i := 0; i < trials; i++ {
		if sampler.Sample(rng, sub, true).NumPrintCommands > 0 {
			active++
		}
	}

	// Benign employees abroad print on ~2% of days.
	assert.InDelta(t, 0.02, float64(active)/trials, 0.015)
}

func TestPrintSampler_MaliciousVolumeExceedsBenign(t *testing.T) {
	rng := random.New(41)
	var sampler PrintSampler

	meanPages := func(malicious bool) float64 {
		sub := newTestSubject(t, employee.GroupEngineering, malicious)
		sub.Pattern.PrintLikelihood = 1

		total := 0
		const trials = 3000
		for i := 0; i < trials; i++ {
			total += sampler.Sample(rng, sub, false).TotalPrintedPages
		}
		return float64(total) / trials
	}

	benign := meanPages(false)
	malicious := meanPages(true)
	assert.Greater(t, malicious, benign*3,
		"malicious mean pages %.1f not well above benign %.1f", malicious, benign)
}
