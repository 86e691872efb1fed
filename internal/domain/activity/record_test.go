package activity

import (
	"testing"
	"time"
)

func validRecord() *DailyRecord {
	return &DailyRecord{
		EmployeeID:             "042",
		Date:                   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EmployeeDepartment:     "Engineering",
		EmployeeCampus:         "Campus A",
		EmployeePosition:       "Design Engineer",
		EmployeeSeniorityYears: 7,
		EmployeeClassification: 2,
		EmployeeOriginCountry:  "Israel",
		BehavioralGroup:        "B",
		Print: Print{
			NumPrintCommands:  3,
			TotalPrintedPages: 10,
			NumColorPrints:    4,
			NumBWPrints:       6,
			RatioColorPrints:  0.4,
			PrintCampuses:     1,
		},
		Burn: Burn{
			NumBurnRequests:          1,
			MaxRequestClassification: 2,
			AvgRequestClassification: 2,
			TotalBurnVolumeMB:        120.5,
			TotalFilesBurned:         14,
			BurnCampuses:             1,
		},
		Access: Access{
			NumEntries:           1,
			NumExits:             1,
			FirstEntryTime:       "08:12",
			LastExitTime:         "17:40",
			TotalPresenceMinutes: 568,
			NumUniqueCampus:      1,
		},
	}
}

func TestDailyRecordValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*DailyRecord)
		expectError bool
	}{
		{
			name:   "valid record",
			mutate: func(r *DailyRecord) {},
		},
		{
			name:        "missing employee id",
			mutate:      func(r *DailyRecord) { r.EmployeeID = "" },
			expectError: true,
		},
		{
			name: "color plus bw must equal total pages",
			mutate: func(r *DailyRecord) {
				r.Print.NumColorPrints = 5
			},
			expectError: true,
		},
		{
			name: "off hours commands above total",
			mutate: func(r *DailyRecord) {
				r.Print.NumPrintCommandsOffHours = r.Print.NumPrintCommands + 1
			},
			expectError: true,
		},
		{
			name: "off hours pages above total",
			mutate: func(r *DailyRecord) {
				r.Print.NumPrintedPagesOffHours = r.Print.TotalPrintedPages + 1
			},
			expectError: true,
		},
		{
			name: "off hours burns above total",
			mutate: func(r *DailyRecord) {
				r.Burn.NumBurnRequestsOffHours = r.Burn.NumBurnRequests + 1
			},
			expectError: true,
		},
		{
			name: "color ratio above one",
			mutate: func(r *DailyRecord) {
				r.Print.RatioColorPrints = 1.2
			},
			expectError: true,
		},
		{
			name: "burn classification above scale",
			mutate: func(r *DailyRecord) {
				r.Burn.MaxRequestClassification = 5
			},
			expectError: true,
		},
		{
			name: "negative page count",
			mutate: func(r *DailyRecord) {
				r.Print.TotalPrintedPages = -3
				r.Print.NumColorPrints = 0
				r.Print.NumBWPrints = -3
			},
			expectError: true,
		},
		{
			name: "trip day set while home",
			mutate: func(r *DailyRecord) {
				day := 2
				r.Travel.TripDayNumber = &day
			},
			expectError: true,
		},
		{
			name: "official flag set while home",
			mutate: func(r *DailyRecord) {
				r.Travel.IsOfficialTrip = 1
			},
			expectError: true,
		},
		{
			name: "abroad with trip fields",
			mutate: func(r *DailyRecord) {
				day := 3
				country := "Turkey"
				r.Travel.IsAbroad = 1
				r.Travel.TripDayNumber = &day
				r.Travel.CountryName = &country
				r.Travel.IsOfficialTrip = 1
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(r)
			err := r.Validate()
			if tt.expectError && err == nil {
				t.Errorf("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestDayIndex(t *testing.T) {
	tests := []struct {
		name    string
		date    time.Time
		index   int
		weekend bool
	}{
		{"monday", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), 0, false},
		{"thursday", time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), 3, false},
		{"friday", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), 4, true},
		{"saturday", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), 5, true},
		{"sunday", time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC), 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayIndex(tt.date); got != tt.index {
				t.Errorf("DayIndex() = %d, want %d", got, tt.index)
			}
			if got := IsWeekend(tt.date); got != tt.weekend {
				t.Errorf("IsWeekend() = %v, want %v", got, tt.weekend)
			}
		})
	}
}

func TestDatasetSortAndCounts(t *testing.T) {
	d1 := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)

	ds := &Dataset{
		Records: []*DailyRecord{
			{EmployeeID: "002", Date: d2, IsMalicious: 1},
			{EmployeeID: "001", Date: d2},
			{EmployeeID: "002", Date: d1, IsMalicious: 1},
			{EmployeeID: "001", Date: d1},
		},
	}
	ds.Sort()

	wantOrder := []struct {
		id   string
		date time.Time
	}{
		{"001", d1}, {"001", d2}, {"002", d1}, {"002", d2},
	}
	for i, want := range wantOrder {
		got := ds.Records[i]
		if got.EmployeeID != want.id || !got.Date.Equal(want.date) {
			t.Errorf("record %d = (%s, %s), want (%s, %s)",
				i, got.EmployeeID, got.Date.Format(DateLayout), want.id, want.date.Format(DateLayout))
		}
	}

	if got := ds.EmployeeCount(); got != 2 {
		t.Errorf("EmployeeCount() = %d, want 2", got)
	}
	if got := ds.MaliciousEmployeeCount(); got != 1 {
		t.Errorf("MaliciousEmployeeCount() = %d, want 1", got)
	}

	groups := ds.ByEmployee()
	if len(groups) != 2 || len(groups["001"]) != 2 || len(groups["002"]) != 2 {
		t.Errorf("ByEmployee() grouped %d employees, want 2 with 2 records each", len(groups))
	}
}
