package generation

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/domain/errors"
	"github.com/threatforge/insider-synth/internal/infrastructure/random"
	"github.com/threatforge/insider-synth/internal/service/simulation"
)

type service struct {
	travel   TravelSimulator
	print    PrintSampler
	burn     BurnSampler
	access   AccessSampler
	metrics  MetricsCollector
	logger   *slog.Logger
	progress rate.Sometimes
}

// NewService creates a new generation service
func NewService(
	travel TravelSimulator,
	print PrintSampler,
	burn BurnSampler,
	access AccessSampler,
	metrics MetricsCollector,
	logger *slog.Logger,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		travel:   travel,
		print:    print,
		burn:     burn,
		access:   access,
		metrics:  metrics,
		logger:   logger,
		progress: rate.Sometimes{First: 1, Interval: 2 * time.Second},
	}
}

// run carries the shared state of one Generate call across its workers.
// Workers write only their own index in batches and errs.
type run struct {
	req       Request
	start     time.Time
	rng       *random.Source
	batches   [][]*activity.DailyRecord
	errs      []error
	completed atomic.Int64
}

func (s *service) Generate(ctx context.Context, rng *random.Source, req Request) (*activity.Dataset, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	start := req.StartDate
	if start.IsZero() {
		start = time.Now().AddDate(0, 0, -req.Days)
	}
	start = midnightUTC(start)

	profiles := req.Staff.Profiles
	workers := req.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(profiles) {
		workers = len(profiles)
	}

	s.logger.InfoContext(ctx, "generating dataset",
		"employees", len(profiles),
		"malicious_employees", len(req.Staff.MaliciousIDs()),
		"days", req.Days,
		"start_date", start.Format(activity.DateLayout),
		"workers", workers)

	r := &run{
		req:     req,
		start:   start,
		rng:     rng,
		batches: make([][]*activity.DailyRecord, len(profiles)),
		errs:    make([]error, len(profiles)),
	}

	jobs := make(chan int)
	go func() {
		defer close(jobs)
		for i := range profiles {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go s.worker(ctx, &wg, jobs, r)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, "GENERATION_INTERRUPTED",
			"dataset generation interrupted")
	}
	for _, err := range r.errs {
		if err != nil {
			return nil, err
		}
	}

	records := make([]*activity.DailyRecord, 0, len(profiles)*req.Days)
	for _, batch := range r.batches {
		records = append(records, batch...)
	}
	maliciousRecords := 0
	for _, rec := range records {
		if rec.IsMalicious == 1 {
			maliciousRecords++
		}
	}

	dataset := &activity.Dataset{
		RunID:       uuid.New(),
		Seed:        rng.Seed(),
		GeneratedAt: time.Now().UTC(),
		StartDate:   start,
		Days:        req.Days,
		Records:     records,
	}
	postProcess(dataset)
	dataset.Sort()

	s.logger.InfoContext(ctx, "dataset generated",
		"run_id", dataset.RunID,
		"records", len(dataset.Records),
		"malicious_records", maliciousRecords)
	return dataset, nil
}

func (s *service) worker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan int, r *run) {
	defer wg.Done()
	if s.metrics != nil {
		s.metrics.UpdateActiveWorkers(1)
		defer s.metrics.UpdateActiveWorkers(-1)
	}

	total := len(r.req.Staff.Profiles)
	for idx := range jobs {
		r.errs[idx] = s.simulateEmployee(ctx, r, idx)

		done := r.completed.Add(1)
		ratio := float64(done) / float64(total)
		if s.metrics != nil {
			s.metrics.SetProgress(ratio)
		}
		s.progress.Do(func() {
			s.logger.InfoContext(ctx, "generation progress",
				"employees_done", done,
				"employees_total", total,
				"percent", int(ratio*100))
		})
	}
}

// simulateEmployee walks one employee through the whole window on a derived
// random stream, so the outcome does not depend on which worker ran it.
func (s *service) simulateEmployee(ctx context.Context, r *run, idx int) error {
	profile := r.req.Staff.Profiles[idx]
	sub, err := simulation.NewSubject(profile, r.req.Staff.IsMalicious(profile.ID))
	if err != nil {
		return err
	}

	rng := r.rng.Derive(profile.ID)
	began := time.Now()
	records := make([]*activity.DailyRecord, 0, r.req.Days)
	wasAbroad := false

	for day := 0; day < r.req.Days; day++ {
		date := r.start.AddDate(0, 0, day)
		rec := s.simulateDay(rng, sub, date)
		s.recordDayMetrics(ctx, rec, wasAbroad)
		wasAbroad = rec.Travel.IsAbroad == 1
		records = append(records, rec)
	}

	r.batches[idx] = records
	if s.metrics != nil {
		s.metrics.RecordEmployeeSimulation(ctx,
			float64(time.Since(began).Microseconds())/1000,
			profile.Group.String(), sub.Malicious, int64(len(records)))
	}
	return nil
}

// simulateDay assembles one flattened employee-day record. Travel runs
// first because the abroad state gates the other samplers.
func (s *service) simulateDay(rng *random.Source, sub simulation.Subject, date time.Time) *activity.DailyRecord {
	travel := s.travel.Day(rng, sub, date)
	abroad := travel.IsAbroad == 1

	rec := &activity.DailyRecord{
		EmployeeID:             sub.Profile.ID,
		Date:                   date,
		EmployeeDepartment:     sub.Profile.Department,
		EmployeeCampus:         sub.Profile.Campus,
		EmployeePosition:       sub.Profile.Position,
		EmployeeSeniorityYears: sub.Profile.SeniorityYears,
		IsContractor:           boolToInt(sub.Profile.IsContractor),
		EmployeeClassification: sub.Profile.Classification.Level(),
		HasForeignCitizenship:  boolToInt(sub.Profile.ForeignCitizenship),
		HasCriminalRecord:      boolToInt(sub.Profile.CriminalRecord),
		HasMedicalHistory:      boolToInt(sub.Profile.MedicalHistory),
		EmployeeOriginCountry:  sub.Profile.OriginCountry,
		BehavioralGroup:        sub.Profile.Group.String(),
		IsMalicious:            boolToInt(sub.Malicious),
		Travel:                 travel,
	}
	rec.Print = s.print.Sample(rng, sub, abroad)
	rec.Burn = s.burn.Sample(rng, sub, abroad)
	rec.Access = s.access.Sample(rng, sub, date, abroad)
	rec.Risk = simulation.ScoreRisk(rec)
	return rec
}

func (s *service) recordDayMetrics(ctx context.Context, rec *activity.DailyRecord, wasAbroad bool) {
	if s.metrics == nil {
		return
	}
	if rec.Travel.TripDayNumber != nil && *rec.Travel.TripDayNumber == 1 {
		s.metrics.RecordTripStart(ctx,
			rec.Travel.IsHostileCountryTrip == 1,
			rec.Travel.IsOfficialTrip == 1)
	}
	if wasAbroad && rec.Travel.IsAbroad == 0 {
		s.metrics.RecordTripComplete(ctx)
	}
	s.metrics.RecordDayActivity(ctx,
		int64(rec.Print.TotalPrintedPages), rec.Burn.TotalBurnVolumeMB)
	if rec.Risk.RiskTravelIndicator == 1 {
		s.metrics.RecordRiskIndicator(ctx, "travel")
	}
	if rec.Risk.HighVolumePrintFlag == 1 {
		s.metrics.RecordRiskIndicator(ctx, "high_volume_print")
	}
	if rec.Risk.HighClassificationBurnFlag == 1 {
		s.metrics.RecordRiskIndicator(ctx, "high_classification_burn")
	}
	if rec.Risk.MultiCampusActivityFlag == 1 {
		s.metrics.RecordRiskIndicator(ctx, "multi_campus")
	}
}

// postProcess applies the export-facing cleanups: two-decimal rounding of
// the fractional columns and a non-negative clip on the counters.
func postProcess(dataset *activity.Dataset) {
	for _, rec := range dataset.Records {
		rec.Burn.AvgRequestClassification = round2(rec.Burn.AvgRequestClassification)
		rec.Print.RatioColorPrints = round2(rec.Print.RatioColorPrints)
		clipCounts(rec)
	}
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func clipCounts(rec *activity.DailyRecord) {
	for _, n := range []*int{
		&rec.Access.NumEntries,
		&rec.Access.NumExits,
		&rec.Access.TotalPresenceMinutes,
		&rec.Print.NumPrintCommands,
		&rec.Print.TotalPrintedPages,
		&rec.Print.NumPrintCommandsOffHours,
		&rec.Print.NumColorPrints,
		&rec.Print.NumBWPrints,
		&rec.Burn.NumBurnRequests,
		&rec.Burn.TotalFilesBurned,
		&rec.Burn.NumBurnRequestsOffHours,
	} {
		if *n < 0 {
			*n = 0
		}
	}
	if rec.Burn.TotalBurnVolumeMB < 0 {
		rec.Burn.TotalBurnVolumeMB = 0
	}
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
