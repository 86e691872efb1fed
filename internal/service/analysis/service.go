package analysis

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/domain/errors"
	"github.com/threatforge/insider-synth/internal/domain/organization"
)

type service struct {
	logger *slog.Logger
}

// NewService creates a new analysis service
func NewService(logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{logger: logger}
}

func (s *service) Analyze(ctx context.Context, dataset *activity.Dataset) (*Summary, error) {
	if dataset == nil || len(dataset.Records) == 0 {
		return nil, errors.ErrEmptyDataset
	}

	started := time.Now()
	byEmployee := dataset.ByEmployee()
	malicious := maliciousEmployees(dataset, byEmployee)

	summary := &Summary{
		Overview:  buildOverview(dataset, byEmployee, malicious),
		Groups:    buildGroupStats(dataset, malicious),
		Employees: buildEmployeeStats(dataset, byEmployee, malicious),
		Daily:     buildDailyStats(dataset),
	}

	s.logger.InfoContext(ctx, "dataset analyzed",
		"records", summary.Overview.TotalRecords,
		"employees", summary.Overview.TotalEmployees,
		"groups", len(summary.Groups),
		"duration_ms", time.Since(started).Milliseconds())
	return summary, nil
}

// maliciousEmployees resolves the employee-level flag. After the daily
// labeler runs, IsMalicious is a per-day label and the employee flag lives
// in IsEmpMalicious.
func maliciousEmployees(dataset *activity.Dataset, byEmployee map[string][]*activity.DailyRecord) map[string]bool {
	out := make(map[string]bool, len(byEmployee))
	for id, days := range byEmployee {
		if dataset.Labeled {
			out[id] = days[0].IsEmpMalicious == 1
			continue
		}
		out[id] = days[0].IsMalicious == 1
	}
	return out
}

func buildOverview(dataset *activity.Dataset, byEmployee map[string][]*activity.DailyRecord, malicious map[string]bool) Overview {
	o := Overview{
		TotalRecords:   len(dataset.Records),
		TotalEmployees: len(byEmployee),
		FirstDate:      dataset.Records[0].Date,
		LastDate:       dataset.Records[0].Date,
	}

	volume := decimal.Zero
	missing := map[string]int{
		"trip_day_number":  0,
		"country_name":     0,
		"first_entry_time": 0,
		"last_exit_time":   0,
	}
	deptIDs := make(map[string]map[string]bool)

	for _, rec := range dataset.Records {
		if rec.Date.Before(o.FirstDate) {
			o.FirstDate = rec.Date
		}
		if rec.Date.After(o.LastDate) {
			o.LastDate = rec.Date
		}
		if rec.IsMalicious == 1 {
			o.MaliciousRecords++
		}

		ids := deptIDs[rec.EmployeeDepartment]
		if ids == nil {
			ids = make(map[string]bool)
			deptIDs[rec.EmployeeDepartment] = ids
		}
		ids[rec.EmployeeID] = true

		o.TotalPrintCommands += rec.Print.NumPrintCommands
		o.TotalPrintedPages += rec.Print.TotalPrintedPages
		o.TotalBurnRequests += rec.Burn.NumBurnRequests
		o.TotalFilesBurned += rec.Burn.TotalFilesBurned
		volume = volume.Add(decimal.NewFromFloat(rec.Burn.TotalBurnVolumeMB))
		o.TotalDaysAbroad += rec.Travel.IsAbroad
		o.HostileCountryVisits += rec.Travel.IsHostileCountryTrip
		o.RiskTravelIncidents += rec.Risk.RiskTravelIndicator

		o.OffHoursPrintCommands += rec.Print.NumPrintCommandsOffHours
		o.OffHoursBurnRequests += rec.Burn.NumBurnRequestsOffHours
		o.EarlyEntries += rec.Access.EarlyEntryFlag
		o.LateExits += rec.Access.LateExitFlag
		o.WeekendEntries += rec.Access.EntryDuringWeekend

		if rec.Travel.TripDayNumber == nil {
			missing["trip_day_number"]++
		}
		if rec.Travel.CountryName == nil {
			missing["country_name"]++
		}
		if rec.Access.FirstEntryTime == "" {
			missing["first_entry_time"]++
		}
		if rec.Access.LastExitTime == "" {
			missing["last_exit_time"]++
		}

		if rec.Travel.IsAbroad == 1 {
			o.AbroadRecords++
			if rec.Access.NumEntries == 0 {
				o.AbroadWithoutAccess++
			}
			if rec.Travel.IsOfficialTrip == 0 {
				o.UnofficialTravelDays++
			}
		}
		o.ColorPrints += rec.Print.NumColorPrints
		o.BWPrints += rec.Print.NumBWPrints
		if rec.Burn.MaxRequestClassification == 4 {
			o.TopClassificationBurnDays++
		}
		if rec.Access.NumUniqueCampus > 1 {
			o.MultiCampusDays++
		}
	}

	o.TotalBurnVolumeMB = volume.InexactFloat64()
	o.TotalDays = int(o.LastDate.Sub(o.FirstDate).Hours()/24) + 1
	for _, flagged := range malicious {
		if flagged {
			o.MaliciousEmployees++
		}
	}
	o.MaliciousRecordRate = float64(o.MaliciousRecords) / float64(o.TotalRecords)
	o.MaliciousEmployeeRate = float64(o.MaliciousEmployees) / float64(o.TotalEmployees)
	o.OffHoursPrintRate = ratio(o.OffHoursPrintCommands, o.TotalPrintCommands)
	o.OffHoursBurnRate = ratio(o.OffHoursBurnRequests, o.TotalBurnRequests)

	for _, column := range []string{"trip_day_number", "country_name", "first_entry_time", "last_exit_time"} {
		o.MissingValues = append(o.MissingValues, ColumnMissing{Column: column, Count: missing[column]})
	}

	depts := make([]string, 0, len(deptIDs))
	for name := range deptIDs {
		depts = append(depts, name)
	}
	sort.Strings(depts)
	for _, name := range depts {
		stats := DepartmentStats{Department: name, Employees: len(deptIDs[name])}
		for id := range deptIDs[name] {
			if malicious[id] {
				stats.MaliciousEmployees++
			}
		}
		o.Departments = append(o.Departments, stats)
	}
	sort.SliceStable(o.Departments, func(i, j int) bool {
		return o.Departments[i].Employees > o.Departments[j].Employees
	})
	return o
}

func buildGroupStats(dataset *activity.Dataset, malicious map[string]bool) []GroupStats {
	groups := make(map[string][]*activity.DailyRecord)
	for _, rec := range dataset.Records {
		groups[rec.BehavioralGroup] = append(groups[rec.BehavioralGroup], rec)
	}

	out := make([]GroupStats, 0, len(groups))
	for _, group := range sortedKeys(groups) {
		records := groups[group]
		n := len(records)

		stats := GroupStats{
			Group:        group,
			Department:   groupDepartment(group),
			TotalRecords: n,
		}

		ids := make(map[string]bool)
		var printDays, burnDays, travelDays, weekendDays int
		var printCommands, offHoursPrints, burnRequests, offHoursBurns int
		var pages, multiCampus, hostileDays, unofficialDays int
		volume := decimal.Zero
		classification := decimal.Zero

		for _, rec := range records {
			ids[rec.EmployeeID] = true
			if rec.Print.TotalPrintedPages > 0 {
				printDays++
			}
			if rec.Burn.NumBurnRequests > 0 {
				burnDays++
			}
			if rec.Travel.IsAbroad == 1 {
				travelDays++
				if rec.Travel.IsOfficialTrip == 0 {
					unofficialDays++
				}
			}
			if rec.Travel.IsHostileCountryTrip == 1 {
				hostileDays++
			}
			weekendDays += rec.Access.EntryDuringWeekend
			printCommands += rec.Print.NumPrintCommands
			offHoursPrints += rec.Print.NumPrintCommandsOffHours
			burnRequests += rec.Burn.NumBurnRequests
			offHoursBurns += rec.Burn.NumBurnRequestsOffHours
			pages += rec.Print.TotalPrintedPages
			if rec.Access.NumUniqueCampus > 1 {
				multiCampus++
			}
			volume = volume.Add(decimal.NewFromFloat(rec.Burn.TotalBurnVolumeMB))
			classification = classification.Add(decimal.NewFromFloat(rec.Burn.AvgRequestClassification))
			if rec.Burn.MaxRequestClassification > stats.MaxClassification {
				stats.MaxClassification = rec.Burn.MaxRequestClassification
			}
		}

		stats.TotalEmployees = len(ids)
		for id := range ids {
			if malicious[id] {
				stats.MaliciousEmployees++
			}
		}
		stats.PrintFrequency = float64(printDays) / float64(n)
		stats.BurnFrequency = float64(burnDays) / float64(n)
		stats.TravelFrequency = float64(travelDays) / float64(n)
		stats.AvgPagesPerDay = float64(pages) / float64(n)
		stats.AvgBurnVolumeMB = volume.InexactFloat64() / float64(n)
		stats.WeekendWorkRate = float64(weekendDays) / float64(n)
		stats.OffHoursPrintRate = ratio(offHoursPrints, printCommands)
		stats.OffHoursBurnRate = ratio(offHoursBurns, burnRequests)
		stats.MultiCampusRate = float64(multiCampus) / float64(n)
		stats.AvgClassification = classification.InexactFloat64() / float64(n)
		stats.ForeignTravelRate = stats.TravelFrequency
		stats.HostileCountryRate = float64(hostileDays) / float64(n)
		stats.UnofficialTravelRate = float64(unofficialDays) / float64(n)

		out = append(out, stats)
	}
	return out
}

func buildEmployeeStats(dataset *activity.Dataset, byEmployee map[string][]*activity.DailyRecord, malicious map[string]bool) []EmployeeStats {
	out := make([]EmployeeStats, 0, len(byEmployee))
	for _, id := range sortedKeys(byEmployee) {
		days := byEmployee[id]
		first := days[0]
		for _, rec := range days {
			if rec.Date.Before(first.Date) {
				first = rec
			}
		}

		stats := EmployeeStats{
			EmployeeID:            id,
			Department:            first.EmployeeDepartment,
			Position:              first.EmployeePosition,
			Campus:                first.EmployeeCampus,
			BehavioralGroup:       first.BehavioralGroup,
			SeniorityYears:        first.EmployeeSeniorityYears,
			Classification:        first.EmployeeClassification,
			IsContractor:          first.IsContractor,
			OriginCountry:         first.EmployeeOriginCountry,
			HasForeignCitizenship: first.HasForeignCitizenship,
			HasCriminalRecord:     first.HasCriminalRecord,
			HasMedicalHistory:     first.HasMedicalHistory,
		}
		if malicious[id] {
			stats.IsMalicious = 1
		}

		countries := make(map[string]bool)
		var printCommands, offHoursPrints, burnRequests, offHoursBurns int
		var offHoursWorkDays, multiCampusDays, weekendDays int
		volume := decimal.Zero
		classification := decimal.Zero

		for _, rec := range days {
			if rec.Access.NumEntries > 0 {
				stats.WorkDays++
			}
			stats.TotalPrintedPages += rec.Print.TotalPrintedPages
			stats.TotalPrintCommands += rec.Print.NumPrintCommands
			stats.TotalBurnRequests += rec.Burn.NumBurnRequests
			stats.TotalFilesBurned += rec.Burn.TotalFilesBurned
			volume = volume.Add(decimal.NewFromFloat(rec.Burn.TotalBurnVolumeMB))
			classification = classification.Add(decimal.NewFromFloat(rec.Burn.AvgRequestClassification))
			stats.DaysAbroad += rec.Travel.IsAbroad
			if rec.Travel.CountryName != nil {
				countries[*rec.Travel.CountryName] = true
			}
			stats.HostileCountryVisits += rec.Travel.IsHostileCountryTrip
			if rec.Travel.IsAbroad == 1 && rec.Travel.IsOfficialTrip == 0 {
				stats.UnofficialTrips++
			}
			if rec.Access.EarlyEntryFlag == 1 || rec.Access.LateExitFlag == 1 {
				offHoursWorkDays++
			}
			weekendDays += rec.Access.EntryDuringWeekend
			if rec.Access.NumUniqueCampus > 1 {
				multiCampusDays++
			}
			printCommands += rec.Print.NumPrintCommands
			offHoursPrints += rec.Print.NumPrintCommandsOffHours
			burnRequests += rec.Burn.NumBurnRequests
			offHoursBurns += rec.Burn.NumBurnRequestsOffHours
			if rec.Burn.MaxRequestClassification > stats.MaxBurnClassification {
				stats.MaxBurnClassification = rec.Burn.MaxRequestClassification
			}
			stats.RiskTravelIncidents += rec.Risk.RiskTravelIndicator
		}

		n := float64(len(days))
		stats.TotalBurnVolumeMB = volume.InexactFloat64()
		stats.UniqueCountries = len(countries)
		stats.OffHoursWorkRate = float64(offHoursWorkDays) / n
		stats.WeekendWorkRate = float64(weekendDays) / n
		stats.MultiCampusRate = float64(multiCampusDays) / n
		stats.OffHoursPrintRate = ratio(offHoursPrints, printCommands)
		stats.OffHoursBurnRate = ratio(offHoursBurns, burnRequests)
		stats.AvgBurnClassification = classification.InexactFloat64() / n
		stats.SuspicionScore = suspicionScore(days)

		out = append(out, stats)
	}
	return out
}

// suspicionScore is an additive heuristic over one employee's window. The
// volume rules compare the window total against the ninetieth percentile of
// the employee's own daily values.
func suspicionScore(days []*activity.DailyRecord) int {
	score := 0

	var offHoursPrints, offHoursBurns, weekendDays, multiCampusDays int
	var hostileDays, maxClassification int
	var pagesSum, volumeSum float64
	var unofficialPages, unofficialBurns int
	pages := make([]float64, 0, len(days))
	volumes := make([]float64, 0, len(days))

	for _, rec := range days {
		offHoursPrints += rec.Print.NumPrintCommandsOffHours
		offHoursBurns += rec.Burn.NumBurnRequestsOffHours
		weekendDays += rec.Access.EntryDuringWeekend
		if rec.Access.NumUniqueCampus > 1 {
			multiCampusDays++
		}
		if rec.Burn.MaxRequestClassification > maxClassification {
			maxClassification = rec.Burn.MaxRequestClassification
		}
		hostileDays += rec.Travel.IsHostileCountryTrip
		if rec.Travel.IsAbroad == 1 && rec.Travel.IsOfficialTrip == 0 {
			unofficialPages += rec.Print.TotalPrintedPages
			unofficialBurns += rec.Burn.NumBurnRequests
		}
		pagesSum += float64(rec.Print.TotalPrintedPages)
		volumeSum += rec.Burn.TotalBurnVolumeMB
		pages = append(pages, float64(rec.Print.TotalPrintedPages))
		volumes = append(volumes, rec.Burn.TotalBurnVolumeMB)
	}

	if offHoursPrints > 0 {
		score++
	}
	if offHoursBurns > 0 {
		score += 2
	}
	if weekendDays > 0 {
		score++
	}
	if multiCampusDays > 0 {
		score++
	}
	if maxClassification >= 4 {
		score += 2
	}
	if hostileDays > 0 {
		score += 3
	}
	if unofficialPages > 0 || unofficialBurns > 0 {
		score += 3
	}
	if pagesSum > quantileLinear(pages, 0.9) {
		score++
	}
	if volumeSum > quantileLinear(volumes, 0.9) {
		score++
	}
	return score
}

func buildDailyStats(dataset *activity.Dataset) []DailyStats {
	type dayAgg struct {
		stats DailyStats
		ids   map[string]bool
	}
	byDate := make(map[string]*dayAgg)

	for _, rec := range dataset.Records {
		key := rec.Date.Format(activity.DateLayout)
		agg := byDate[key]
		if agg == nil {
			agg = &dayAgg{stats: DailyStats{Date: rec.Date}, ids: make(map[string]bool)}
			byDate[key] = agg
		}
		agg.ids[rec.EmployeeID] = true
		agg.stats.MaliciousRecords += rec.IsMalicious
		agg.stats.TotalPagesPrinted += rec.Print.TotalPrintedPages
		agg.stats.TotalPrintCommands += rec.Print.NumPrintCommands
		agg.stats.TotalBurnRequests += rec.Burn.NumBurnRequests
		agg.stats.TotalBurnVolumeMB += rec.Burn.TotalBurnVolumeMB
		agg.stats.TotalFilesBurned += rec.Burn.TotalFilesBurned
		agg.stats.EmployeesAbroad += rec.Travel.IsAbroad
		agg.stats.WeekendEntries += rec.Access.EntryDuringWeekend
		agg.stats.EarlyEntries += rec.Access.EarlyEntryFlag
		agg.stats.LateExits += rec.Access.LateExitFlag
		agg.stats.OffHoursPrintCommands += rec.Print.NumPrintCommandsOffHours
		agg.stats.OffHoursBurnRequests += rec.Burn.NumBurnRequestsOffHours
		agg.stats.RiskTravelIncidents += rec.Risk.RiskTravelIndicator
	}

	out := make([]DailyStats, 0, len(byDate))
	for _, key := range sortedKeys(byDate) {
		agg := byDate[key]
		agg.stats.ActiveEmployees = len(agg.ids)
		agg.stats.DayOfWeek = agg.stats.Date.Weekday().String()
		agg.stats.IsWeekend = activity.IsWeekend(agg.stats.Date)
		out = append(out, agg.stats)
	}
	return out
}

// groupDepartment names a behavioral group after the first department that
// carries it, matching how the population tables present the groups.
func groupDepartment(group string) string {
	for _, dept := range organization.Departments {
		if dept.Group.String() == group {
			return dept.Name
		}
	}
	return ""
}

// quantileLinear is the linearly interpolated quantile of vals, the same
// estimator pandas and numpy default to.
func quantileLinear(vals []float64, q float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func ratio(part, whole int) float64 {
	if whole < 1 {
		whole = 1
	}
	return float64(part) / float64(whole)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
