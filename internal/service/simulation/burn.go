package simulation

import (
	"math"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/domain/values"
	"github.com/threatforge/insider-synth/internal/infrastructure/random"
)

// BurnSampler draws one day of document destruction activity.
type BurnSampler struct{}

// Sample returns the subject's destruction activity for one day. The
// malicious cohort burns three times as often, in larger batches, and at
// classification levels above its clearance.
func (BurnSampler) Sample(rng *random.Source, sub Subject, abroad bool) activity.Burn {
	if abroad && !sub.Malicious && rng.Bernoulli(0.99) {
		return activity.Burn{}
	}
	if abroad && sub.Malicious && rng.Bernoulli(0.90) {
		return activity.Burn{}
	}

	likelihood := sub.Pattern.BurnLikelihood
	if sub.Malicious {
		likelihood *= 3
	}
	if rng.Float64() > likelihood {
		return activity.Burn{}
	}

	profile := sub.Pattern.Burn

	var (
		requests, files int
		volumeMB        float64
	)
	if sub.Malicious {
		requests = int(float64(rng.Poisson(profile.RequestsMean)) * rng.Uniform(1.5, 2.5))
		volumeMB = rng.LogNormal(profile.VolumeMu, 1.5)
		files = int(float64(rng.Poisson(profile.FilesMean)) * rng.Uniform(1.8, 3.0))
	} else {
		requests = rng.Poisson(profile.RequestsMean)
		volumeMB = rng.LogNormal(profile.VolumeMu, 1.0)
		files = rng.Poisson(profile.FilesMean)
	}
	if requests < 1 {
		requests = 1
	}
	if files < 1 {
		files = 1
	}

	maxSeen, avg := requestClassifications(rng, sub, requests)
	offHours := offHoursBurning(rng, sub, requests)
	campuses, fromOther := multiCampusBurning(rng, sub.Malicious)

	return activity.Burn{
		NumBurnRequests:          requests,
		MaxRequestClassification: maxSeen,
		AvgRequestClassification: avg,
		NumBurnRequestsOffHours:  offHours,
		TotalBurnVolumeMB:        math.Trunc(volumeMB),
		TotalFilesBurned:         files,
		BurnedFromOther:          fromOther,
		BurnCampuses:             campuses,
	}
}

// requestClassifications draws one classification per request, uniform
// between 1 and a per-day ceiling, and returns the max and mean. Days with
// a high-classification pattern or a malicious subject push the ceiling
// above the employee's own clearance.
func requestClassifications(rng *random.Source, sub Subject, requests int) (int, float64) {
	ceiling := classificationCeiling(rng, sub)

	maxSeen, sum := 0, 0
	for i := 0; i < requests; i++ {
		level := rng.IntBetween(1, ceiling)
		if level > maxSeen {
			maxSeen = level
		}
		sum += level
	}
	return maxSeen, float64(sum) / float64(requests)
}

func classificationCeiling(rng *random.Source, sub Subject) int {
	clearance := sub.Profile.Classification.Level()

	if sub.Pattern.Burn.HighClassification || sub.Malicious {
		bump := random.PickWeighted(rng, []int{0, 1, 2}, []float64{0.3, 0.4, 0.3})
		if clearance+bump > values.MaxClassification {
			return values.MaxClassification
		}
		return clearance + bump
	}

	limit := random.PickWeighted(rng, []int{1, 2, 3}, []float64{0.6, 0.3, 0.1})
	if limit > clearance {
		limit = clearance
	}
	if limit < 1 {
		limit = 1
	}
	return limit
}

func offHoursBurning(rng *random.Source, sub Subject, requests int) int {
	if sub.Malicious && rng.Bernoulli(sub.Pattern.OffHoursTendency) {
		return int(float64(requests) * rng.Uniform(0.3, 0.8))
	}
	return 0
}

func multiCampusBurning(rng *random.Source, malicious bool) (campuses, fromOther int) {
	if malicious && rng.Bernoulli(0.2) {
		return rng.IntBetween(2, 3), 1
	}
	return 1, 0
}
