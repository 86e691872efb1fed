package simulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/domain/employee"
	"github.com/threatforge/insider-synth/internal/infrastructure/random"
)

func TestBurnSampler_ZeroLikelihoodIsEmpty(t *testing.T) {
	sub := newTestSubject(t, employee.GroupIT, false)
	sub.Pattern.BurnLikelihood = 0

	rng := random.New(5)
	var sampler BurnSampler
	for i := 0; i < 50; i++ {
		assert.Equal(t, activity.Burn{}, sampler.Sample(rng, sub, false))
	}
}

func TestBurnSampler_ActiveDayInvariants(t *testing.T) {
	rng := random.New(13)
	var sampler BurnSampler

	for _, malicious := range []bool{false, true} {
		sub := newTestSubject(t, employee.GroupIT, malicious)
		sub.Pattern.BurnLikelihood = 1

		for i := 0; i < 500; i++ {
			b := sampler.Sample(rng, sub, false)

			require.GreaterOrEqual(t, b.NumBurnRequests, 1)
			require.GreaterOrEqual(t, b.TotalFilesBurned, 1)
			assert.GreaterOrEqual(t, b.MaxRequestClassification, 1)
			assert.LessOrEqual(t, b.MaxRequestClassification, 4)
			assert.GreaterOrEqual(t, b.AvgRequestClassification, 1.0)
			assert.LessOrEqual(t, b.AvgRequestClassification, float64(b.MaxRequestClassification))
			assert.LessOrEqual(t, b.NumBurnRequestsOffHours, b.NumBurnRequests)
			assert.GreaterOrEqual(t, b.TotalBurnVolumeMB, 0.0)
			assert.Equal(t, math.Trunc(b.TotalBurnVolumeMB), b.TotalBurnVolumeMB,
				"burn volume should be a whole number of MB")

			if b.BurnedFromOther == 1 {
				assert.GreaterOrEqual(t, b.BurnCampuses, 2)
			} else {
				assert.Equal(t, 1, b.BurnCampuses)
			}
		}
	}
}

func TestBurnSampler_BenignCeilingRespectsClearance(t *testing.T) {
	// Engineering has no high-classification burn profile, so a benign
	// engineer's requests must stay at or below their own clearance.
	sub := newTestSubject(t, employee.GroupEngineering, false)
	sub.Pattern.BurnLikelihood = 1
	require.False(t, sub.Pattern.Burn.HighClassification)

	clearance := sub.Profile.Classification.Level()
	rng := random.New(31)
	var sampler BurnSampler

	for i := 0; i < 500; i++ {
		b := sampler.Sample(rng, sub, false)
		assert.LessOrEqual(t, b.MaxRequestClassification, clearance)
	}
}

func TestBurnSampler_MaliciousExceedsClearance(t *testing.T) {
	sub := newTestSubject(t, employee.GroupEngineering, true)
	sub.Pattern.BurnLikelihood = 1

	clearance := sub.Profile.Classification.Level()
	rng := random.New(37)
	var sampler BurnSampler

	exceeded := false
	for i := 0; i < 500; i++ {
		if sampler.Sample(rng, sub, false).MaxRequestClassification > clearance {
			exceeded = true
			break
		}
	}
	assert.True(t, exceeded, "malicious burns never climbed above clearance %d", clearance)
}

func TestBurnSampler_OffHoursOnlyForMalicious(t *testing.T) {
	sub := newTestSubject(t, employee.GroupIT, false)
	sub.Pattern.BurnLikelihood = 1

	rng := random.New(43)
	var sampler BurnSampler
	for i := 0; i < 500; i++ {
		assert.Zero(t, sampler.Sample(rng, sub, false).NumBurnRequestsOffHours)
	}
}
