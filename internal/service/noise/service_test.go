package noise

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/domain/errors"
	"github.com/threatforge/insider-synth/internal/domain/values"
	"github.com/threatforge/insider-synth/internal/infrastructure/random"
)

var noiseBase = time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC)

// activeDay builds a record with activity in every block, so all three
// noise passes have something to touch.
func activeDay(employeeID string, offset int) *activity.DailyRecord {
	return &activity.DailyRecord{
		EmployeeID: employeeID,
		Date:       noiseBase.AddDate(0, 0, offset),
		Print: activity.Print{
			NumPrintCommands:  4,
			TotalPrintedPages: 40,
			NumColorPrints:    12,
			NumBWPrints:       28,
			RatioColorPrints:  0.3,
			PrintCampuses:     1,
		},
		Burn: activity.Burn{
			NumBurnRequests:          2,
			MaxRequestClassification: 2,
			AvgRequestClassification: 1.5,
			TotalBurnVolumeMB:        100,
			TotalFilesBurned:         5,
			BurnCampuses:             1,
		},
		Access: activity.Access{
			NumEntries: 1, NumExits: 1,
			FirstEntryTime: "08:00", LastExitTime: "16:00",
			TotalPresenceMinutes: 480,
		},
	}
}

func activeDataset(n int) *activity.Dataset {
	ds := &activity.Dataset{}
	for i := 0; i < n; i++ {
		ds.Records = append(ds.Records, activeDay(fmt.Sprintf("%04d", i+1), i%30))
	}
	return ds
}

func TestService_Inject_AllRatesFireEveryRow(t *testing.T) {
	ds := activeDataset(50)
	params := Params{BurnRate: 1, PrintRate: 1, EntryTimeRate: 1}

	stats, err := NewService(params, nil).Inject(context.Background(), random.New(42), ds)
	require.NoError(t, err)
	require.True(t, ds.Noised)

	assert.Equal(t, 50, stats.TotalRows)
	assert.Equal(t, 50, stats.ModifiedRows)
	assert.Equal(t, 50, stats.BurnModifications)
	assert.Equal(t, 50, stats.PrintModifications)
	assert.Equal(t, 50, stats.EntryTimeModifications)
	assert.InDelta(t, 1.0, stats.ModificationRate(), 0.0001)

	for _, r := range ds.Records {
		assert.Equal(t, 1, r.Noise.RowModified)
		assert.Contains(t, r.Noise.ModificationDetails, "num_burn_requests += ")
		assert.Contains(t, r.Noise.ModificationDetails, "; num_print_commands += ")
		assert.Contains(t, r.Noise.ModificationDetails, "; first_entry_time shifted by ")
	}
}

func TestService_Inject_ZeroRatesLeaveRowsAlone(t *testing.T) {
	ds := activeDataset(20)
	before := make([]activity.DailyRecord, len(ds.Records))
	for i, r := range ds.Records {
		before[i] = *r
	}

	stats, err := NewService(Params{}, nil).Inject(context.Background(), random.New(42), ds)
	require.NoError(t, err)
	require.True(t, ds.Noised)

	assert.Equal(t, 20, stats.TotalRows)
	assert.Zero(t, stats.ModifiedRows)
	assert.Zero(t, stats.BurnModifications)
	assert.Zero(t, stats.PrintModifications)
	assert.Zero(t, stats.EntryTimeModifications)
	for i, r := range ds.Records {
		assert.Equal(t, before[i], *r)
	}
}

func TestService_Inject_PrintPassSkipsSilentRows(t *testing.T) {
	ds := activeDataset(10)
	for _, r := range ds.Records {
		r.Print = activity.Print{}
	}

	stats, err := NewService(Params{PrintRate: 1}, nil).Inject(context.Background(), random.New(42), ds)
	require.NoError(t, err)

	assert.Zero(t, stats.PrintModifications)
	assert.Zero(t, stats.ModifiedRows)
	for _, r := range ds.Records {
		assert.Equal(t, activity.Print{}, r.Print)
	}
}

func TestService_Inject_ProportionalPageGrowth(t *testing.T) {
	ds := activeDataset(1)

	stats, err := NewService(Params{PrintRate: 1}, nil).Inject(context.Background(), random.New(7), ds)
	require.NoError(t, err)
	require.Equal(t, 1, stats.PrintModifications)

	// A uniform factor in [0.05, 0.2) of four commands truncates to zero,
	// so the delta floors at one command and ten pages (40/4).
	r := ds.Records[0]
	assert.Equal(t, 5, r.Print.NumPrintCommands)
	assert.Equal(t, 50, r.Print.TotalPrintedPages)
	assert.GreaterOrEqual(t, r.Print.RatioColorPrints, 0.0)
	assert.LessOrEqual(t, r.Print.RatioColorPrints, 1.0)
	assert.Contains(t, r.Noise.ModificationDetails, "num_print_commands += 1")
	assert.Contains(t, r.Noise.ModificationDetails, "total_printed_pages += 10")
	assert.Contains(t, r.Noise.ModificationDetails, "ratio_color_prints adjusted by ")
}

func TestService_Inject_BurnDeltasWithinUniformBounds(t *testing.T) {
	ds := activeDataset(300)

	stats, err := NewService(Params{BurnRate: 1}, nil).Inject(context.Background(), random.New(11), ds)
	require.NoError(t, err)
	require.Equal(t, 300, stats.BurnModifications)

	for _, r := range ds.Records {
		deltaRequests := r.Burn.NumBurnRequests - 2
		assert.GreaterOrEqual(t, deltaRequests, 1)
		assert.LessOrEqual(t, deltaRequests, 3)

		deltaFiles := r.Burn.TotalFilesBurned - 5
		assert.GreaterOrEqual(t, deltaFiles, 2)
		assert.LessOrEqual(t, deltaFiles, 10)

		deltaVolume := r.Burn.TotalBurnVolumeMB - 100
		assert.GreaterOrEqual(t, deltaVolume, 50.0)
		assert.LessOrEqual(t, deltaVolume, 300.0)
		assert.Equal(t, math.Trunc(deltaVolume), deltaVolume)

		assert.GreaterOrEqual(t, r.Burn.AvgRequestClassification, 1.1-0.0001)
		assert.LessOrEqual(t, r.Burn.AvgRequestClassification, 1.9+0.0001)
		assert.GreaterOrEqual(t, r.Burn.MaxRequestClassification, 2)
		assert.LessOrEqual(t, r.Burn.MaxRequestClassification, 3)

		if r.Burn.BurnedFromOther == 1 {
			assert.Equal(t, 2, r.Burn.BurnCampuses)
		} else {
			assert.Equal(t, 1, r.Burn.BurnCampuses)
		}
	}
}

func TestService_Inject_GaussianDeltasRespectFloors(t *testing.T) {
	ds := activeDataset(300)
	params := Params{BurnRate: 1, Gaussian: true}

	stats, err := NewService(params, nil).Inject(context.Background(), random.New(13), ds)
	require.NoError(t, err)
	require.Equal(t, 300, stats.BurnModifications)

	for _, r := range ds.Records {
		assert.GreaterOrEqual(t, r.Burn.NumBurnRequests-2, 1)
		assert.GreaterOrEqual(t, r.Burn.TotalFilesBurned-5, 1)
		assert.GreaterOrEqual(t, r.Burn.TotalBurnVolumeMB-100, 50.0)
		assert.GreaterOrEqual(t, r.Burn.AvgRequestClassification, 0.0)
		assert.LessOrEqual(t, r.Burn.AvgRequestClassification, 4.0)
	}
}

func TestService_Inject_EntryShiftRecomputesFlags(t *testing.T) {
	ds := activeDataset(200)
	for _, r := range ds.Records {
		r.Access.FirstEntryTime = "00:03"
	}

	stats, err := NewService(Params{EntryTimeRate: 1}, nil).Inject(context.Background(), random.New(17), ds)
	require.NoError(t, err)
	require.Equal(t, 200, stats.EntryTimeModifications)

	original, err2 := values.ParseTimeOfDay("00:03")
	require.NoError(t, err2)

	for _, r := range ds.Records {
		shifted, perr := values.ParseTimeOfDay(r.Access.FirstEntryTime)
		require.NoError(t, perr)

		// Uniform shifts stay within ten minutes, wrapping at midnight.
		forward := (shifted.Minutes() - original.Minutes() + 24*60) % (24 * 60)
		assert.True(t, forward <= 10 || forward >= 24*60-10,
			"shifted %s is more than ten minutes from %s", shifted, original)

		hour := shifted.Hour()
		assert.Equal(t, 1, r.Access.EnteredDuringNightHours, "hour %d around midnight", hour)
		if hour < 7 {
			assert.Equal(t, 1, r.Access.EarlyEntryFlag)
		} else {
			assert.Zero(t, r.Access.EarlyEntryFlag)
		}
		assert.Contains(t, r.Noise.ModificationDetails, "updated night and early entry flags")
	}
}

func TestService_Inject_UnparseableEntryTimeLeftIntact(t *testing.T) {
	ds := activeDataset(1)
	ds.Records[0].Access.FirstEntryTime = "late morning"

	stats, err := NewService(Params{EntryTimeRate: 1}, nil).Inject(context.Background(), random.New(3), ds)
	require.NoError(t, err)

	assert.Zero(t, stats.EntryTimeModifications)
	assert.Zero(t, stats.ModifiedRows)
	assert.Equal(t, "late morning", ds.Records[0].Access.FirstEntryTime)
	assert.Zero(t, ds.Records[0].Noise.RowModified)
	assert.Empty(t, ds.Records[0].Noise.ModificationDetails)
}

func TestService_Inject_IndependentOfRecordOrder(t *testing.T) {
	params := Params{BurnRate: 1, PrintRate: 1, EntryTimeRate: 1}

	forward := activeDataset(60)
	_, err := NewService(params, nil).Inject(context.Background(), random.New(99), forward)
	require.NoError(t, err)

	reversed := activeDataset(60)
	for i, j := 0, len(reversed.Records)-1; i < j; i, j = i+1, j-1 {
		reversed.Records[i], reversed.Records[j] = reversed.Records[j], reversed.Records[i]
	}
	_, err = NewService(params, nil).Inject(context.Background(), random.New(99), reversed)
	require.NoError(t, err)

	byKey := make(map[string]*activity.DailyRecord, len(reversed.Records))
	for _, r := range reversed.Records {
		byKey[r.EmployeeID+"@"+r.Date.Format(activity.DateLayout)] = r
	}
	for _, want := range forward.Records {
		got := byKey[want.EmployeeID+"@"+want.Date.Format(activity.DateLayout)]
		require.NotNil(t, got)
		assert.Equal(t, *want, *got)
	}
}

func TestService_Inject_EmptyDataset(t *testing.T) {
	_, err := NewService(DefaultParams(), nil).Inject(context.Background(), random.New(1), &activity.Dataset{})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeBusiness))
}

func TestStats_ModificationRate(t *testing.T) {
	assert.Zero(t, (&Stats{}).ModificationRate())
	assert.InDelta(t, 0.25, (&Stats{TotalRows: 8, ModifiedRows: 2}).ModificationRate(), 0.0001)
}
