package noise

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/domain/errors"
	"github.com/threatforge/insider-synth/internal/domain/values"
	"github.com/threatforge/insider-synth/internal/infrastructure/random"
)

// offHoursBumpProbability is the chance a noised burn or print row also
// gains one off-hours event.
const offHoursBumpProbability = 0.3

// service implements the Service interface
type service struct {
	params   Params
	logger   *slog.Logger
	progress rate.Sometimes
}

// NewService creates a new noise injection service
func NewService(params Params, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		params:   params,
		logger:   logger,
		progress: rate.Sometimes{Interval: 2 * time.Second},
	}
}

func (s *service) Inject(ctx context.Context, rng *random.Source, dataset *activity.Dataset) (*Stats, error) {
	if len(dataset.Records) == 0 {
		return nil, errors.ErrEmptyDataset
	}

	stats := &Stats{TotalRows: len(dataset.Records)}
	s.logger.InfoContext(ctx, "injecting noise",
		"rows", stats.TotalRows,
		"burn_rate", s.params.BurnRate,
		"print_rate", s.params.PrintRate,
		"entry_time_rate", s.params.EntryTimeRate,
		"gaussian", s.params.Gaussian)

	for i, rec := range dataset.Records {
		rowRNG := rng.Derive(rec.EmployeeID + "@" + rec.Date.Format(activity.DateLayout))

		var changes []string
		changes = s.burnNoise(rowRNG, rec, changes, stats)
		changes = s.printNoise(rowRNG, rec, changes, stats)
		changes = s.entryTimeNoise(rowRNG, rec, changes, stats)

		if len(changes) > 0 {
			rec.Noise.RowModified = 1
			rec.Noise.ModificationDetails = strings.Join(changes, "; ")
			stats.ModifiedRows++
		} else {
			rec.Noise.RowModified = 0
			rec.Noise.ModificationDetails = ""
		}

		s.progress.Do(func() {
			s.logger.InfoContext(ctx, "noise progress",
				"rows_done", i+1,
				"rows_total", stats.TotalRows,
				"rows_modified", stats.ModifiedRows)
		})
	}

	dataset.Noised = true
	s.logger.InfoContext(ctx, "noise injection complete",
		"rows_modified", stats.ModifiedRows,
		"modification_rate", stats.ModificationRate(),
		"burn_modifications", stats.BurnModifications,
		"print_modifications", stats.PrintModifications,
		"entry_time_modifications", stats.EntryTimeModifications)
	return stats, nil
}

// burnNoise inflates the destruction counters on a small share of rows and
// nudges the classification stats around their generated values.
func (s *service) burnNoise(rng *random.Source, rec *activity.DailyRecord, changes []string, stats *Stats) []string {
	if !rng.Bernoulli(s.params.BurnRate) {
		return changes
	}
	stats.BurnModifications++

	deltaRequests := s.intDelta(rng, 2, 1, 1, 3, 1)
	rec.Burn.NumBurnRequests += deltaRequests
	changes = append(changes, fmt.Sprintf("num_burn_requests += %d", deltaRequests))

	deltaFiles := s.intDelta(rng, 6, 4, 2, 10, 1)
	rec.Burn.TotalFilesBurned += deltaFiles
	changes = append(changes, fmt.Sprintf("total_files_burned += %d", deltaFiles))

	deltaVolume := s.intDelta(rng, 175, 75, 50, 300, 50)
	rec.Burn.TotalBurnVolumeMB += float64(deltaVolume)
	changes = append(changes, fmt.Sprintf("total_burn_volume_mb += %d", deltaVolume))

	if rng.Bernoulli(offHoursBumpProbability) {
		rec.Burn.NumBurnRequestsOffHours++
		changes = append(changes, "num_burn_requests_off_hours += 1")
	}

	var deltaAvg float64
	if s.params.Gaussian {
		deltaAvg = rng.Normal(0, 0.3)
	} else {
		deltaAvg = math.Round(rng.Uniform(-0.4, 0.4)*100) / 100
	}
	rec.Burn.AvgRequestClassification = values.ClampClassificationValue(rec.Burn.AvgRequestClassification + deltaAvg)
	changes = append(changes, fmt.Sprintf("avg_request_classification adjusted by %v", deltaAvg))

	if rng.Bernoulli(0.05) && rec.Burn.MaxRequestClassification < values.MaxClassification {
		rec.Burn.MaxRequestClassification++
		changes = append(changes, "max_request_classification +1")
	}

	if rng.Bernoulli(0.03) {
		if rec.Burn.BurnCampuses < 2 {
			old := rec.Burn.BurnCampuses
			rec.Burn.BurnCampuses++
			changes = append(changes, fmt.Sprintf("burn_campuses: %d → %d", old, rec.Burn.BurnCampuses))
		}
		if rec.Burn.BurnCampuses > 1 {
			rec.Burn.BurnedFromOther = 1
			changes = append(changes, "burned_from_other set to 1")
		}
	}
	return changes
}

// printNoise grows print activity proportionally on rows that already
// printed; silent rows stay silent.
func (s *service) printNoise(rng *random.Source, rec *activity.DailyRecord, changes []string, stats *Stats) []string {
	if rec.Print.NumPrintCommands == 0 || !rng.Bernoulli(s.params.PrintRate) {
		return changes
	}
	stats.PrintModifications++

	var factor float64
	if s.params.Gaussian {
		factor = math.Max(0.05, rng.Normal(0.15, 0.05))
	} else {
		factor = rng.Uniform(0.05, 0.2)
	}
	deltaCommands := int(float64(rec.Print.NumPrintCommands) * factor)
	if deltaCommands < 1 {
		deltaCommands = 1
	}
	rec.Print.NumPrintCommands += deltaCommands
	changes = append(changes, fmt.Sprintf("num_print_commands += %d", deltaCommands))

	// Pages grow in proportion to the pre-noise pages-per-command. The
	// color/bw split is left alone, so page totals drift off it.
	oldCommands := rec.Print.NumPrintCommands - deltaCommands
	if oldCommands < 1 {
		oldCommands = 1
	}
	extraPages := int(float64(deltaCommands) * float64(rec.Print.TotalPrintedPages) / float64(oldCommands))
	rec.Print.TotalPrintedPages += extraPages
	changes = append(changes, fmt.Sprintf("total_printed_pages += %d", extraPages))

	var colorDelta float64
	if s.params.Gaussian {
		colorDelta = rng.Normal(0, 0.03)
	} else {
		colorDelta = rng.Uniform(-0.05, 0.05)
	}
	rec.Print.RatioColorPrints = values.Clamp01(rec.Print.RatioColorPrints + colorDelta)
	changes = append(changes, fmt.Sprintf("ratio_color_prints adjusted by %.3f", colorDelta))

	if rng.Bernoulli(offHoursBumpProbability) {
		rec.Print.NumPrintCommandsOffHours++
		changes = append(changes, "num_print_commands_off_hours += 1")
	}
	return changes
}

// entryTimeNoise shifts the first entry time by a few minutes, wrapping at
// midnight, and recomputes the flags that depend on it. The early window
// here is an hour wider than the one the access sampler uses.
func (s *service) entryTimeNoise(rng *random.Source, rec *activity.DailyRecord, changes []string, stats *Stats) []string {
	if rec.Access.FirstEntryTime == "" || !rng.Bernoulli(s.params.EntryTimeRate) {
		return changes
	}

	entry, err := values.ParseTimeOfDay(rec.Access.FirstEntryTime)
	if err != nil {
		s.logger.Warn("skipping unparseable entry time",
			"employee_id", rec.EmployeeID,
			"value", rec.Access.FirstEntryTime,
			"error", err)
		return changes
	}
	stats.EntryTimeModifications++

	var deltaMinutes int
	if s.params.Gaussian {
		deltaMinutes = int(rng.Normal(0, 7))
	} else {
		deltaMinutes = rng.IntBetween(-10, 10)
	}

	shifted := entry.AddMinutes(deltaMinutes)
	rec.Access.FirstEntryTime = shifted.String()
	changes = append(changes, fmt.Sprintf("first_entry_time shifted by %d mins", deltaMinutes))

	hour := shifted.Hour()
	rec.Access.EnteredDuringNightHours = 0
	if hour < 6 || hour >= 22 {
		rec.Access.EnteredDuringNightHours = 1
	}
	rec.Access.EarlyEntryFlag = 0
	if hour < 7 {
		rec.Access.EarlyEntryFlag = 1
	}
	changes = append(changes, "updated night and early entry flags")
	return changes
}

// intDelta draws an integer perturbation, normal or uniform per the
// configured shape, floored at min.
func (s *service) intDelta(rng *random.Source, mean, stddev float64, lo, hi, min int) int {
	var d int
	if s.params.Gaussian {
		d = int(rng.Normal(mean, stddev))
	} else {
		d = rng.IntBetween(lo, hi)
	}
	if d < min {
		d = min
	}
	return d
}
