package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/domain/errors"
)

// baseColumns is the wire contract column order. The labeler's
// is_emp_malicious column slots in after is_malicious when present; the
// noise columns close the row either way.
var baseColumns = []string{
	"employee_id",
	"date",
	"employee_department",
	"employee_campus",
	"employee_position",
	"employee_seniority_years",
	"is_contractor",
	"employee_classification",
	"has_foreign_citizenship",
	"has_criminal_record",
	"has_medical_history",
	"employee_origin_country",
	"behavioral_group",
	"is_malicious",
	"risk_travel_indicator",
	"num_print_commands",
	"total_printed_pages",
	"num_print_commands_off_hours",
	"num_printed_pages_off_hours",
	"num_color_prints",
	"num_bw_prints",
	"ratio_color_prints",
	"printed_from_other",
	"print_campuses",
	"num_burn_requests",
	"max_request_classification",
	"avg_request_classification",
	"num_burn_requests_off_hours",
	"total_burn_volume_mb",
	"total_files_burned",
	"burned_from_other",
	"burn_campuses",
	"is_abroad",
	"trip_day_number",
	"country_name",
	"is_hostile_country_trip",
	"hostility_country_level",
	"is_official_trip",
	"num_entries",
	"num_exits",
	"first_entry_time",
	"last_exit_time",
	"total_presence_minutes",
	"entered_during_night_hours",
	"num_unique_campus",
	"early_entry_flag",
	"late_exit_flag",
	"entry_during_weekend",
	"unusual_activity_score",
	"high_volume_print_flag",
	"high_classification_burn_flag",
	"multi_campus_activity_flag",
	"row_modified",
	"modification_details",
}

// csvHeader returns the column order for a dataset, with the employee-level
// echo column included once the daily labeler has run.
func csvHeader(labeled bool) []string {
	if !labeled {
		return baseColumns
	}
	header := make([]string, 0, len(baseColumns)+1)
	for _, col := range baseColumns {
		header = append(header, col)
		if col == "is_malicious" {
			header = append(header, "is_emp_malicious")
		}
	}
	return header
}

func writeDatasetCSV(w io.Writer, dataset *activity.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader(dataset.Labeled)); err != nil {
		return err
	}
	for _, rec := range dataset.Records {
		if err := cw.Write(csvRow(rec, dataset.Labeled)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(rec *activity.DailyRecord, labeled bool) []string {
	row := make([]string, 0, len(baseColumns)+1)
	row = append(row,
		rec.EmployeeID,
		rec.Date.Format(activity.DateLayout),
		rec.EmployeeDepartment,
		rec.EmployeeCampus,
		rec.EmployeePosition,
		strconv.Itoa(rec.EmployeeSeniorityYears),
		strconv.Itoa(rec.IsContractor),
		strconv.Itoa(rec.EmployeeClassification),
		strconv.Itoa(rec.HasForeignCitizenship),
		strconv.Itoa(rec.HasCriminalRecord),
		strconv.Itoa(rec.HasMedicalHistory),
		rec.EmployeeOriginCountry,
		rec.BehavioralGroup,
		strconv.Itoa(rec.IsMalicious),
	)
	if labeled {
		row = append(row, strconv.Itoa(rec.IsEmpMalicious))
	}
	row = append(row,
		strconv.Itoa(rec.Risk.RiskTravelIndicator),
		strconv.Itoa(rec.Print.NumPrintCommands),
		strconv.Itoa(rec.Print.TotalPrintedPages),
		strconv.Itoa(rec.Print.NumPrintCommandsOffHours),
		strconv.Itoa(rec.Print.NumPrintedPagesOffHours),
		strconv.Itoa(rec.Print.NumColorPrints),
		strconv.Itoa(rec.Print.NumBWPrints),
		floatField(rec.Print.RatioColorPrints),
		strconv.Itoa(rec.Print.PrintedFromOther),
		strconv.Itoa(rec.Print.PrintCampuses),
		strconv.Itoa(rec.Burn.NumBurnRequests),
		strconv.Itoa(rec.Burn.MaxRequestClassification),
		floatField(rec.Burn.AvgRequestClassification),
		strconv.Itoa(rec.Burn.NumBurnRequestsOffHours),
		floatField(rec.Burn.TotalBurnVolumeMB),
		strconv.Itoa(rec.Burn.TotalFilesBurned),
		strconv.Itoa(rec.Burn.BurnedFromOther),
		strconv.Itoa(rec.Burn.BurnCampuses),
		strconv.Itoa(rec.Travel.IsAbroad),
		intPtrField(rec.Travel.TripDayNumber),
		strPtrField(rec.Travel.CountryName),
		strconv.Itoa(rec.Travel.IsHostileCountryTrip),
		strconv.Itoa(rec.Travel.HostilityCountryLevel),
		strconv.Itoa(rec.Travel.IsOfficialTrip),
		strconv.Itoa(rec.Access.NumEntries),
		strconv.Itoa(rec.Access.NumExits),
		rec.Access.FirstEntryTime,
		rec.Access.LastExitTime,
		strconv.Itoa(rec.Access.TotalPresenceMinutes),
		strconv.Itoa(rec.Access.EnteredDuringNightHours),
		strconv.Itoa(rec.Access.NumUniqueCampus),
		strconv.Itoa(rec.Access.EarlyEntryFlag),
		strconv.Itoa(rec.Access.LateExitFlag),
		strconv.Itoa(rec.Access.EntryDuringWeekend),
		strconv.Itoa(rec.Risk.UnusualActivityScore),
		strconv.Itoa(rec.Risk.HighVolumePrintFlag),
		strconv.Itoa(rec.Risk.HighClassificationBurnFlag),
		strconv.Itoa(rec.Risk.MultiCampusActivityFlag),
		strconv.Itoa(rec.Noise.RowModified),
		rec.Noise.ModificationDetails,
	)
	return row
}

func intPtrField(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func strPtrField(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func floatField(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// readDatasetCSV parses a dataset export. Columns are resolved by header
// name, so extra columns and either labeled layout are accepted.
func readDatasetCSV(r io.Reader) (*activity.Dataset, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, errors.NewIOError("failed to read csv header").WithCause(err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, required := range []string{"employee_id", "date", "is_malicious"} {
		if _, ok := index[required]; !ok {
			return nil, errors.NewValidationError("MISSING_COLUMN",
				fmt.Sprintf("dataset csv is missing the %s column", required))
		}
	}
	_, labeled := index["is_emp_malicious"]

	dataset := &activity.Dataset{Labeled: labeled}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewIOError(fmt.Sprintf("failed to read csv line %d", line)).WithCause(err)
		}
		rec, err := parseCSVRecord(row, index)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("csv line %d", line))
		}
		if rec.Noise.RowModified == 1 {
			dataset.Noised = true
		}
		dataset.Records = append(dataset.Records, rec)
	}
	dataset.Sort()
	return dataset, nil
}

func parseCSVRecord(row []string, index map[string]int) (*activity.DailyRecord, error) {
	p := &rowParser{row: row, index: index}
	rec := &activity.DailyRecord{
		EmployeeID:             p.str("employee_id"),
		EmployeeDepartment:     p.str("employee_department"),
		EmployeeCampus:         p.str("employee_campus"),
		EmployeePosition:       p.str("employee_position"),
		EmployeeSeniorityYears: p.num("employee_seniority_years"),
		IsContractor:           p.num("is_contractor"),
		EmployeeClassification: p.num("employee_classification"),
		HasForeignCitizenship:  p.num("has_foreign_citizenship"),
		HasCriminalRecord:      p.num("has_criminal_record"),
		HasMedicalHistory:      p.num("has_medical_history"),
		EmployeeOriginCountry:  p.str("employee_origin_country"),
		BehavioralGroup:        p.str("behavioral_group"),
		IsMalicious:            p.num("is_malicious"),
		IsEmpMalicious:         p.num("is_emp_malicious"),
	}
	rec.Date = p.date("date")

	rec.Travel = activity.Travel{
		IsAbroad:              p.num("is_abroad"),
		TripDayNumber:         p.numPtr("trip_day_number"),
		CountryName:           p.strPtr("country_name"),
		IsHostileCountryTrip:  p.num("is_hostile_country_trip"),
		HostilityCountryLevel: p.num("hostility_country_level"),
		IsOfficialTrip:        p.num("is_official_trip"),
	}
	rec.Print = activity.Print{
		NumPrintCommands:         p.num("num_print_commands"),
		TotalPrintedPages:        p.num("total_printed_pages"),
		NumPrintCommandsOffHours: p.num("num_print_commands_off_hours"),
		NumPrintedPagesOffHours:  p.num("num_printed_pages_off_hours"),
		NumColorPrints:           p.num("num_color_prints"),
		NumBWPrints:              p.num("num_bw_prints"),
		RatioColorPrints:         p.float("ratio_color_prints"),
		PrintedFromOther:         p.num("printed_from_other"),
		PrintCampuses:            p.num("print_campuses"),
	}
	rec.Burn = activity.Burn{
		NumBurnRequests:          p.num("num_burn_requests"),
		MaxRequestClassification: p.num("max_request_classification"),
		AvgRequestClassification: p.float("avg_request_classification"),
		NumBurnRequestsOffHours:  p.num("num_burn_requests_off_hours"),
		TotalBurnVolumeMB:        p.float("total_burn_volume_mb"),
		TotalFilesBurned:         p.num("total_files_burned"),
		BurnedFromOther:          p.num("burned_from_other"),
		BurnCampuses:             p.num("burn_campuses"),
	}
	rec.Access = activity.Access{
		NumEntries:              p.num("num_entries"),
		NumExits:                p.num("num_exits"),
		FirstEntryTime:          p.str("first_entry_time"),
		LastExitTime:            p.str("last_exit_time"),
		TotalPresenceMinutes:    p.num("total_presence_minutes"),
		EnteredDuringNightHours: p.num("entered_during_night_hours"),
		NumUniqueCampus:         p.num("num_unique_campus"),
		EarlyEntryFlag:          p.num("early_entry_flag"),
		LateExitFlag:            p.num("late_exit_flag"),
		EntryDuringWeekend:      p.num("entry_during_weekend"),
	}
	rec.Risk = activity.Risk{
		RiskTravelIndicator:        p.num("risk_travel_indicator"),
		UnusualActivityScore:       p.num("unusual_activity_score"),
		HighVolumePrintFlag:        p.num("high_volume_print_flag"),
		HighClassificationBurnFlag: p.num("high_classification_burn_flag"),
		MultiCampusActivityFlag:    p.num("multi_campus_activity_flag"),
	}
	rec.Noise = activity.Noise{
		RowModified:         p.num("row_modified"),
		ModificationDetails: p.str("modification_details"),
	}

	if p.err != nil {
		return nil, p.err
	}
	return rec, nil
}

// rowParser accumulates the first parse error instead of threading error
// returns through every field read. Missing columns read as zero values.
type rowParser struct {
	row   []string
	index map[string]int
	err   error
}

func (p *rowParser) raw(column string) (string, bool) {
	i, ok := p.index[column]
	if !ok || i >= len(p.row) {
		return "", false
	}
	return p.row[i], true
}

func (p *rowParser) str(column string) string {
	v, _ := p.raw(column)
	return v
}

func (p *rowParser) num(column string) int {
	v, ok := p.raw(column)
	if !ok || v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil && p.err == nil {
		p.err = errors.NewValidationError("INVALID_VALUE",
			fmt.Sprintf("column %s: %q is not an integer", column, v))
	}
	return n
}

func (p *rowParser) float(column string) float64 {
	v, ok := p.raw(column)
	if !ok || v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil && p.err == nil {
		p.err = errors.NewValidationError("INVALID_VALUE",
			fmt.Sprintf("column %s: %q is not a number", column, v))
	}
	return f
}

func (p *rowParser) numPtr(column string) *int {
	v, ok := p.raw(column)
	if !ok || v == "" {
		return nil
	}
	n := p.num(column)
	return &n
}

func (p *rowParser) strPtr(column string) *string {
	v, ok := p.raw(column)
	if !ok || v == "" {
		return nil
	}
	return &v
}

func (p *rowParser) date(column string) time.Time {
	v, ok := p.raw(column)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(activity.DateLayout, v)
	if err != nil && p.err == nil {
		p.err = errors.NewValidationError("INVALID_VALUE",
			fmt.Sprintf("column %s: %q is not a %s date", column, v, activity.DateLayout))
	}
	return t
}
