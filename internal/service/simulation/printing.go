package simulation

import (
	"math"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/domain/values"
	"github.com/threatforge/insider-synth/internal/infrastructure/random"
)

// gammaShape controls the right skew of the daily page-count draw.
const gammaShape = 1.2

// PrintSampler draws one day of printing activity.
type PrintSampler struct{}

// Sample returns the subject's printing activity for one day. Days abroad
// almost never print; malicious employees print heavier volumes and lean
// further into off-hours work.
func (PrintSampler) Sample(rng *random.Source, sub Subject, abroad bool) activity.Print {
	if abroad && !sub.Malicious && rng.Bernoulli(0.98) {
		return activity.Print{}
	}
	if abroad && sub.Malicious && rng.Bernoulli(0.85) {
		return activity.Print{}
	}

	if rng.Float64() > sub.Pattern.PrintLikelihood {
		return activity.Print{}
	}

	var multiplier float64
	if sub.Malicious {
		multiplier = rng.Uniform(0.8, 1.2)
	} else {
		multiplier = rng.Uniform(0.7, 1.3)
	}

	baseCommands := rng.Poisson(sub.Pattern.PrintVolume.CommandsMean)
	if baseCommands < 1 {
		baseCommands = 1
	}

	pagesBase := sub.Pattern.PrintVolume.PagesMean
	if sub.Malicious {
		pagesBase *= 5
	}

	totalPages := int(rng.Gamma(gammaShape, pagesBase/gammaShape) * multiplier)
	if totalPages < 1 {
		totalPages = 1
	}

	// Unusually large page totals arrive as an extra print job.
	commands := baseCommands
	if float64(totalPages) > pagesBase*2 {
		commands++
	}

	colorRatio := values.Clamp01(rng.Normal(sub.Pattern.PrintVolume.ColorRatio, 0.1))

	offCommands, offPages := offHoursPrinting(rng, sub, commands, totalPages)
	campuses, fromOther := multiCampusPrinting(rng, sub.Malicious)

	numColor := int(float64(totalPages) * colorRatio)

	return activity.Print{
		NumPrintCommands:         commands,
		TotalPrintedPages:        totalPages,
		NumPrintCommandsOffHours: offCommands,
		NumPrintedPagesOffHours:  offPages,
		NumColorPrints:           numColor,
		NumBWPrints:              totalPages - numColor,
		RatioColorPrints:         colorRatio,
		PrintedFromOther:         fromOther,
		PrintCampuses:            campuses,
	}
}

func offHoursPrinting(rng *random.Source, sub Subject, commands, pages int) (int, int) {
	tendency := sub.Pattern.OffHoursTendency
	if sub.Malicious {
		tendency = math.Min(0.4, tendency*1.8)
	}
	if !rng.Bernoulli(tendency) {
		return 0, 0
	}

	var ratio float64
	if sub.Malicious {
		ratio = rng.Uniform(0.3, 0.7)
	} else {
		ratio = rng.Uniform(0.1, 0.4)
	}
	return int(float64(commands) * ratio), int(float64(pages) * ratio)
}

func multiCampusPrinting(rng *random.Source, malicious bool) (campuses, fromOther int) {
	if malicious && rng.Bernoulli(0.25) {
		return rng.IntBetween(2, 3), 1
	}
	if rng.Bernoulli(0.05) {
		return 2, 1
	}
	return 1, 0
}
