package simulation

import (
	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/domain/values"
)

// highVolumePageThreshold is the daily page count above which printing is
// flagged as high volume.
const highVolumePageThreshold = 50

// ScoreRisk derives the day's risk indicators from the assembled activity
// blocks. It must run after travel, print, burn, and access are filled in.
func ScoreRisk(rec *activity.DailyRecord) activity.Risk {
	var risk activity.Risk

	// Unofficial travel to a hostile country combined with data handling
	// on the same day.
	if rec.Travel.IsAbroad == 1 &&
		rec.Travel.IsOfficialTrip == 0 &&
		rec.Travel.IsHostileCountryTrip == 1 &&
		(rec.Burn.TotalFilesBurned > 0 || rec.Print.TotalPrintedPages > 0) {
		risk.RiskTravelIndicator = 1
	}

	score := 0
	if rec.Print.NumPrintCommandsOffHours > 0 || rec.Burn.NumBurnRequestsOffHours > 0 {
		score++
	}
	if rec.Print.PrintedFromOther == 1 || rec.Burn.BurnedFromOther == 1 {
		score++
	}
	if rec.Access.EnteredDuringNightHours == 1 || rec.Access.EntryDuringWeekend == 1 {
		score++
	}
	risk.UnusualActivityScore = score

	if rec.Print.TotalPrintedPages > highVolumePageThreshold {
		risk.HighVolumePrintFlag = 1
	}
	if rec.Burn.MaxRequestClassification >= values.MaxClassification {
		risk.HighClassificationBurnFlag = 1
	}
	if rec.Access.NumUniqueCampus > 1 {
		risk.MultiCampusActivityFlag = 1
	}

	return risk
}
