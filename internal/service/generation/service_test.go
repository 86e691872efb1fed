package generation

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/domain/errors"
	"github.com/threatforge/insider-synth/internal/infrastructure/random"
	"github.com/threatforge/insider-synth/internal/service/simulation"
	"github.com/threatforge/insider-synth/internal/service/workforce"
)

var genStart = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func newTestService(metrics MetricsCollector) Service {
	return NewService(
		simulation.NewTravelSimulator(),
		simulation.PrintSampler{},
		simulation.BurnSampler{},
		simulation.AccessSampler{},
		metrics,
		nil,
	)
}

func testWorkforce(t *testing.T, count int) *workforce.Workforce {
	t.Helper()
	wf, err := workforce.NewService().Generate(context.Background(), random.New(5), count, 0.1)
	require.NoError(t, err)
	return wf
}

func TestService_Generate_DeterministicAcrossWorkerCounts(t *testing.T) {
	ctx := context.Background()
	staff := testWorkforce(t, 40)

	variants := make([]map[string]*activity.DailyRecord, 0, 3)
	for _, workers := range []int{1, 4, 16} {
		// A fresh travel simulator per run keeps trip state from leaking
		// between variants.
		svc := newTestService(nil)
		ds, err := svc.Generate(ctx, random.New(77), Request{
			Staff:     staff,
			Days:      20,
			StartDate: genStart,
			Workers:   workers,
		})
		require.NoError(t, err)
		require.Len(t, ds.Records, 40*20)
		assert.Equal(t, int64(77), ds.Seed)

		byKey := make(map[string]*activity.DailyRecord, len(ds.Records))
		for _, rec := range ds.Records {
			byKey[rec.EmployeeID+"@"+rec.Date.Format("2006-01-02")] = rec
		}
		variants = append(variants, byKey)
	}

	assert.Equal(t, variants[0], variants[1], "1 vs 4 workers")
	assert.Equal(t, variants[0], variants[2], "1 vs 16 workers")
}

func TestService_Generate_RecordShape(t *testing.T) {
	ctx := context.Background()
	staff := testWorkforce(t, 30)
	svc := newTestService(nil)

	ds, err := svc.Generate(ctx, random.New(11), Request{
		Staff:     staff,
		Days:      15,
		StartDate: genStart,
		Workers:   4,
	})
	require.NoError(t, err)

	require.Len(t, ds.Records, 30*15)
	assert.Equal(t, 30, ds.EmployeeCount())
	assert.Equal(t, genStart, ds.StartDate)
	assert.Equal(t, 15, ds.Days)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", ds.RunID.String())
	assert.False(t, ds.Noised)
	assert.False(t, ds.Labeled)

	profilesByID := make(map[string]bool, len(staff.Profiles))
	for _, p := range staff.Profiles {
		profilesByID[p.ID] = true
	}

	for i, rec := range ds.Records {
		require.NoError(t, rec.Validate(), "record %d (%s %s)",
			i, rec.EmployeeID, rec.Date.Format("2006-01-02"))
		assert.True(t, profilesByID[rec.EmployeeID])

		if i > 0 {
			prev := ds.Records[i-1]
			sorted := prev.EmployeeID < rec.EmployeeID ||
				(prev.EmployeeID == rec.EmployeeID && prev.Date.Before(rec.Date))
			assert.True(t, sorted, "records out of order at %d", i)
		}
	}

	for id, days := range ds.ByEmployee() {
		require.Len(t, days, 15, "employee %s", id)
		for i, rec := range days {
			assert.Equal(t, genStart.AddDate(0, 0, i), rec.Date)
		}
	}
}

func TestService_Generate_EchoesProfileFields(t *testing.T) {
	ctx := context.Background()
	staff := testWorkforce(t, 25)
	svc := newTestService(nil)

	ds, err := svc.Generate(ctx, random.New(3), Request{
		Staff:     staff,
		Days:      5,
		StartDate: genStart,
	})
	require.NoError(t, err)

	byID := ds.ByEmployee()
	for _, p := range staff.Profiles {
		days := byID[p.ID]
		require.NotEmpty(t, days, "employee %s has no records", p.ID)
		for _, rec := range days {
			assert.Equal(t, p.Department, rec.EmployeeDepartment)
			assert.Equal(t, p.Campus, rec.EmployeeCampus)
			assert.Equal(t, p.Position, rec.EmployeePosition)
			assert.Equal(t, p.SeniorityYears, rec.EmployeeSeniorityYears)
			assert.Equal(t, p.Classification.Level(), rec.EmployeeClassification)
			assert.Equal(t, p.OriginCountry, rec.EmployeeOriginCountry)
			assert.Equal(t, p.Group.String(), rec.BehavioralGroup)

			wantMalicious := 0
			if staff.IsMalicious(p.ID) {
				wantMalicious = 1
			}
			assert.Equal(t, wantMalicious, rec.IsMalicious)
		}
	}
}

func TestService_Generate_TripDaysAreContiguous(t *testing.T) {
	ctx := context.Background()
	staff := testWorkforce(t, 60)
	svc := newTestService(nil)

	ds, err := svc.Generate(ctx, random.New(21), Request{
		Staff:     staff,
		Days:      90,
		StartDate: genStart,
		Workers:   8,
	})
	require.NoError(t, err)

	trips := 0
	for id, days := range ds.ByEmployee() {
		for i, rec := range days {
			if rec.Travel.IsAbroad != 1 {
				continue
			}
			require.NotNil(t, rec.Travel.TripDayNumber, "employee %s day %d", id, i)
			n := *rec.Travel.TripDayNumber
			if i == 0 || days[i-1].Travel.IsAbroad == 0 {
				assert.Equal(t, 1, n, "employee %s: trips start at day one", id)
				trips++
			} else {
				assert.Equal(t, *days[i-1].Travel.TripDayNumber+1, n,
					"employee %s day %d", id, i)
			}
		}
	}
	assert.Positive(t, trips, "a 90 day window over 60 employees should see travel")
}

func TestService_Generate_RoundsFractionalColumns(t *testing.T) {
	ctx := context.Background()
	staff := testWorkforce(t, 50)
	svc := newTestService(nil)

	ds, err := svc.Generate(ctx, random.New(9), Request{
		Staff:     staff,
		Days:      30,
		StartDate: genStart,
	})
	require.NoError(t, err)

	for _, rec := range ds.Records {
		assertTwoDecimals(t, rec.Burn.AvgRequestClassification, "avg_request_classification")
		assertTwoDecimals(t, rec.Print.RatioColorPrints, "ratio_color_prints")
	}
}

func assertTwoDecimals(t *testing.T, v float64, column string) {
	t.Helper()
	scaled := v * 100
	assert.InDelta(t, math.Round(scaled), scaled, 1e-6,
		"%s not rounded to two decimals: %v", column, v)
}

func TestService_Generate_DefaultStartDate(t *testing.T) {
	ctx := context.Background()
	staff := testWorkforce(t, 5)
	svc := newTestService(nil)

	ds, err := svc.Generate(ctx, random.New(1), Request{Staff: staff, Days: 10})
	require.NoError(t, err)

	want := time.Now().UTC().AddDate(0, 0, -10)
	assert.WithinDuration(t, want, ds.StartDate, 25*time.Hour)
	assert.Equal(t, time.UTC, ds.StartDate.Location())
	assert.Zero(t, ds.StartDate.Hour())
	assert.Zero(t, ds.StartDate.Minute())
}

func TestService_Generate_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(nil)
	staff := testWorkforce(t, 3)

	cases := []struct {
		name string
		req  Request
	}{
		{"nil staff", Request{Days: 10}},
		{"empty staff", Request{Staff: &workforce.Workforce{}, Days: 10}},
		{"zero days", Request{Staff: staff}},
		{"negative days", Request{Staff: staff, Days: -4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ds, err := svc.Generate(ctx, random.New(1), tc.req)
			require.Error(t, err)
			assert.Nil(t, ds)
			assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
		})
	}
}

func TestService_Generate_RejectsDuplicateEmployeeIDs(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(nil)

	staff := testWorkforce(t, 3)
	staff.Profiles = append(staff.Profiles, staff.Profiles[1])

	ds, err := svc.Generate(ctx, random.New(1), Request{Staff: staff, Days: 5})
	require.Error(t, err)
	assert.Nil(t, ds)
	assert.ErrorIs(t, err, errors.ErrDuplicateEmployee)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConflict))
}

func TestService_Generate_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	staff := testWorkforce(t, 20)
	svc := newTestService(nil)

	ds, err := svc.Generate(ctx, random.New(1), Request{
		Staff:     staff,
		Days:      30,
		StartDate: genStart,
	})
	require.Error(t, err)
	assert.Nil(t, ds)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_Generate_MetricsRecorded(t *testing.T) {
	ctx := context.Background()
	staff := testWorkforce(t, 20)
	collector := &capturingCollector{}
	svc := newTestService(collector)

	ds, err := svc.Generate(ctx, random.New(13), Request{
		Staff:     staff,
		Days:      60,
		StartDate: genStart,
		Workers:   4,
	})
	require.NoError(t, err)

	collector.mu.Lock()
	defer collector.mu.Unlock()

	assert.Equal(t, 20, collector.employees, "one simulation metric per employee")
	assert.Equal(t, len(ds.Records), collector.dayActivities)
	assert.Zero(t, collector.activeWorkers, "worker gauge must return to zero")
	assert.InDelta(t, 1.0, collector.lastProgress, 1e-9)
	assert.GreaterOrEqual(t, collector.tripStarts, collector.tripCompletes,
		"a trip can outlive the window but never complete unstarted")
}

type capturingCollector struct {
	mu            sync.Mutex
	employees     int
	dayActivities int
	tripStarts    int
	tripCompletes int
	riskKinds     map[string]int
	activeWorkers int64
	lastProgress  float64
}

func (c *capturingCollector) RecordEmployeeSimulation(_ context.Context, _ float64, _ string, _ bool, _ int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.employees++
}

func (c *capturingCollector) RecordTripStart(_ context.Context, _, _ bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tripStarts++
}

func (c *capturingCollector) RecordTripComplete(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tripCompletes++
}

func (c *capturingCollector) RecordDayActivity(_ context.Context, _ int64, _ float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dayActivities++
}

func (c *capturingCollector) RecordRiskIndicator(_ context.Context, kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.riskKinds == nil {
		c.riskKinds = make(map[string]int)
	}
	c.riskKinds[kind]++
}

func (c *capturingCollector) UpdateActiveWorkers(delta int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeWorkers += delta
}

func (c *capturingCollector) SetProgress(ratio float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ratio > c.lastProgress {
		c.lastProgress = ratio
	}
}
