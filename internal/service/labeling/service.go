package labeling

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/domain/errors"
	"github.com/threatforge/insider-synth/internal/infrastructure/random"
)

const (
	// falsePositiveShare is the fraction of benign employees that receive
	// one mislabeled day.
	falsePositiveShare = 0.05

	// topScoreProbability is how often the false-positive day is the
	// employee's highest-scoring candidate rather than a random one.
	topScoreProbability = 0.8
)

// service implements the Service interface
type service struct{}

// NewService creates a new labeling service
func NewService() Service {
	return &service{}
}

func (s *service) Label(ctx context.Context, rng *random.Source, dataset *activity.Dataset) (*Stats, error) {
	if len(dataset.Records) == 0 {
		return nil, errors.ErrEmptyDataset
	}

	dataset.Sort()

	for _, r := range dataset.Records {
		r.IsEmpMalicious = r.IsMalicious
		r.IsMalicious = 0
	}

	maliciousIDs, benignIDs := splitCohorts(dataset.Records)
	thresholds := computeThresholds(dataset.Records)
	byEmployee := dataset.ByEmployee()

	for _, id := range maliciousIDs {
		labelPrimaryDays(byEmployee[id], thresholds)
	}
	for _, id := range maliciousIDs {
		labelAdjacentDays(byEmployee[id], thresholds)
	}

	fpEmployees := labelFalsePositives(rng, benignIDs, byEmployee, thresholds)

	dataset.Labeled = true
	return collectStats(dataset.Records, maliciousIDs, fpEmployees, thresholds), nil
}

// splitCohorts partitions employee IDs by the employee-level flag,
// preserving first-appearance order.
func splitCohorts(records []*activity.DailyRecord) (malicious, benign []string) {
	seen := make(map[string]bool)
	for _, r := range records {
		if seen[r.EmployeeID] {
			continue
		}
		seen[r.EmployeeID] = true
		if r.IsEmpMalicious == 1 {
			malicious = append(malicious, r.EmployeeID)
		} else {
			benign = append(benign, r.EmployeeID)
		}
	}
	return malicious, benign
}

// computeThresholds derives the anomaly cutoffs from benign rows only, so
// the malicious cohort cannot shift its own detection baseline.
func computeThresholds(records []*activity.DailyRecord) Thresholds {
	var prints, burns, presence, tripDays []float64
	for _, r := range records {
		if r.IsEmpMalicious == 1 {
			continue
		}
		prints = append(prints, float64(r.Print.NumPrintCommands))
		burns = append(burns, float64(r.Burn.NumBurnRequests))
		presence = append(presence, float64(r.Access.TotalPresenceMinutes))
		if r.Travel.TripDayNumber != nil {
			tripDays = append(tripDays, float64(*r.Travel.TripDayNumber))
		}
	}

	return Thresholds{
		Prints95:   quantile(prints, 0.95),
		Burns95:    quantile(burns, 0.95),
		Presence95: quantile(presence, 0.95),
		TripDays95: quantile(tripDays, 0.95),
		Prints75:   quantile(prints, 0.75),
		Burns75:    quantile(burns, 0.75),
		Presence75: quantile(presence, 0.75),
	}
}

func labelPrimaryDays(records []*activity.DailyRecord, th Thresholds) {
	for _, r := range records {
		if primaryBreach(r, th) {
			r.IsMalicious = 1
		}
	}
}

func primaryBreach(r *activity.DailyRecord, th Thresholds) bool {
	switch {
	case float64(r.Print.NumPrintCommands) > th.Prints95:
		return true
	case r.Print.NumPrintCommandsOffHours > 0:
		return true
	case float64(r.Burn.NumBurnRequests) > th.Burns95:
		return true
	case r.Burn.NumBurnRequestsOffHours > 0:
		return true
	case float64(r.Access.TotalPresenceMinutes) > th.Presence95:
		return true
	case r.Access.EnteredDuringNightHours == 1:
		return true
	case r.Access.EarlyEntryFlag == 1:
		return true
	case r.Access.LateExitFlag == 1:
		return true
	case r.Travel.IsAbroad == 1:
		return true
	case r.Travel.TripDayNumber != nil && float64(*r.Travel.TripDayNumber) > th.TripDays95:
		return true
	case r.Travel.IsHostileCountryTrip == 1:
		return true
	}
	return false
}

// labelAdjacentDays extends each primary label to the day before and after
// when those days breach the softer 75th-percentile cutoffs. The set of
// primary days is snapshotted first, so spillover does not cascade.
func labelAdjacentDays(records []*activity.DailyRecord, th Thresholds) {
	byDate := make(map[string]*activity.DailyRecord, len(records))
	var flagged []time.Time
	for _, r := range records {
		byDate[r.Date.Format(activity.DateLayout)] = r
		if r.IsMalicious == 1 {
			flagged = append(flagged, r.Date)
		}
	}

	for _, day := range flagged {
		for _, offset := range []int{-1, 1} {
			key := day.AddDate(0, 0, offset).Format(activity.DateLayout)
			adjacent, ok := byDate[key]
			if !ok || adjacent.IsMalicious == 1 {
				continue
			}
			if adjacentBreach(adjacent, th) {
				adjacent.IsMalicious = 1
			}
		}
	}
}

func adjacentBreach(r *activity.DailyRecord, th Thresholds) bool {
	return float64(r.Print.NumPrintCommands) > th.Prints75 ||
		float64(r.Burn.NumBurnRequests) > th.Burns75 ||
		float64(r.Access.TotalPresenceMinutes) > th.Presence75 ||
		r.Access.EnteredDuringNightHours == 1 ||
		r.Travel.IsAbroad == 1
}

// labelFalsePositives picks a small share of benign employees and marks the
// single most anomalous day of each, relative to the employee's own
// baseline. Returns how many employees actually received a mark.
func labelFalsePositives(rng *random.Source, benignIDs []string, byEmployee map[string][]*activity.DailyRecord, th Thresholds) int {
	count := int(float64(len(benignIDs)) * falsePositiveShare)

	marked := 0
	for _, id := range random.SampleIDs(rng, benignIDs, count) {
		if markAnomalousDay(rng, byEmployee[id], th) {
			marked++
		}
	}
	return marked
}

func markAnomalousDay(rng *random.Source, records []*activity.DailyRecord, th Thresholds) bool {
	var sumPrints, sumBurns, sumPresence float64
	for _, r := range records {
		sumPrints += float64(r.Print.NumPrintCommands)
		sumBurns += float64(r.Burn.NumBurnRequests)
		sumPresence += float64(r.Access.TotalPresenceMinutes)
	}
	n := float64(len(records))
	avgPrints, avgBurns, avgPresence := sumPrints/n, sumBurns/n, sumPresence/n

	var candidates []*activity.DailyRecord
	for _, r := range records {
		switch {
		case float64(r.Print.NumPrintCommands) > math.Max(th.Prints95, 2*avgPrints),
			float64(r.Burn.NumBurnRequests) > math.Max(th.Burns95, 2*avgBurns),
			float64(r.Access.TotalPresenceMinutes) > math.Max(th.Presence95, 2*avgPresence),
			r.Access.EnteredDuringNightHours == 1:
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return false
	}

	var chosen *activity.DailyRecord
	if rng.Bernoulli(topScoreProbability) {
		chosen = topSuspicion(candidates)
	} else {
		chosen = random.Pick(rng, candidates)
	}
	chosen.IsMalicious = 1
	return true
}

// topSuspicion scores candidates by percentile rank of prints, burns, and
// presence within the candidate set, plus half weights for night and early
// entries, and returns the highest scorer. Ties go to the earliest date.
func topSuspicion(candidates []*activity.DailyRecord) *activity.DailyRecord {
	prints := make([]float64, len(candidates))
	burns := make([]float64, len(candidates))
	presence := make([]float64, len(candidates))
	for i, r := range candidates {
		prints[i] = float64(r.Print.NumPrintCommands)
		burns[i] = float64(r.Burn.NumBurnRequests)
		presence[i] = float64(r.Access.TotalPresenceMinutes)
	}

	printRanks := pctRanks(prints)
	burnRanks := pctRanks(burns)
	presenceRanks := pctRanks(presence)

	best, bestScore := candidates[0], math.Inf(-1)
	for i, r := range candidates {
		score := printRanks[i] + burnRanks[i] + presenceRanks[i] +
			0.5*float64(r.Access.EnteredDuringNightHours) +
			0.5*float64(r.Access.EarlyEntryFlag)
		if score > bestScore {
			best, bestScore = r, score
		}
	}
	return best
}

// pctRanks returns each value's average rank divided by the count, ties
// sharing the mean of their positions.
func pctRanks(values []float64) []float64 {
	n := float64(len(values))
	ranks := make([]float64, len(values))
	for i, v := range values {
		less, equal := 0, 0
		for _, w := range values {
			switch {
			case w < v:
				less++
			case w == v:
				equal++
			}
		}
		ranks[i] = (float64(less) + float64(equal+1)/2) / n
	}
	return ranks
}

// quantile computes the q-th quantile with linear interpolation between
// order statistics. An empty input yields NaN, which no threshold
// comparison ever exceeds.
func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func collectStats(records []*activity.DailyRecord, maliciousIDs []string, fpEmployees int, th Thresholds) *Stats {
	stats := &Stats{
		Thresholds:             th,
		TotalRecords:           len(records),
		MaliciousEmployees:     len(maliciousIDs),
		FalsePositiveEmployees: fpEmployees,
	}
	for _, r := range records {
		if r.IsMalicious == 1 {
			stats.SuspiciousDays++
		}
		if r.IsEmpMalicious == 1 {
			stats.MaliciousEmployeeDays++
			if r.IsMalicious == 1 {
				stats.MaliciousFlaggedDays++
			}
		} else if r.IsMalicious == 1 {
			stats.FalsePositiveDays++
		}
	}
	return stats
}
