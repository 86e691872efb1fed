package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/service/analysis"
)

var groupSummaryColumns = []string{
	"Behavioral_Group",
	"Department",
	"Total_Employees",
	"Total_Records",
	"Malicious_Employees",
	"Print_Frequency",
	"Burn_Frequency",
	"Travel_Frequency",
	"Avg_Pages_Per_Day",
	"Avg_Burn_Volume_MB",
	"Weekend_Work_Rate",
	"Off_Hours_Print_Rate",
	"Off_Hours_Burn_Rate",
	"Multi_Campus_Access_Rate",
	"Avg_Classification_Level",
	"Max_Classification_Level",
	"Foreign_Travel_Rate",
	"Hostile_Country_Rate",
	"Unofficial_Travel_Rate",
}

func writeGroupSummaryCSV(w io.Writer, groups []analysis.GroupStats) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(groupSummaryColumns); err != nil {
		return err
	}
	for _, g := range groups {
		row := []string{
			g.Group,
			g.Department,
			strconv.Itoa(g.TotalEmployees),
			strconv.Itoa(g.TotalRecords),
			strconv.Itoa(g.MaliciousEmployees),
			floatField(g.PrintFrequency),
			floatField(g.BurnFrequency),
			floatField(g.TravelFrequency),
			floatField(g.AvgPagesPerDay),
			floatField(g.AvgBurnVolumeMB),
			floatField(g.WeekendWorkRate),
			floatField(g.OffHoursPrintRate),
			floatField(g.OffHoursBurnRate),
			floatField(g.MultiCampusRate),
			floatField(g.AvgClassification),
			strconv.Itoa(g.MaxClassification),
			floatField(g.ForeignTravelRate),
			floatField(g.HostileCountryRate),
			floatField(g.UnofficialTravelRate),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var employeeSummaryColumns = []string{
	"employee_id",
	"department",
	"position",
	"campus",
	"behavioral_group",
	"seniority_years",
	"classification",
	"is_contractor",
	"is_malicious",
	"origin_country",
	"has_foreign_citizenship",
	"has_criminal_record",
	"has_medical_history",
	"total_work_days",
	"total_print_pages",
	"total_print_commands",
	"total_burn_requests",
	"total_burn_volume_mb",
	"total_files_burned",
	"days_abroad",
	"unique_countries_visited",
	"hostile_country_visits",
	"unofficial_trips",
	"frequent_off_hours_work",
	"weekend_work_frequency",
	"multi_campus_access",
	"off_hours_printing",
	"off_hours_burning",
	"avg_classification_burned",
	"max_classification_burned",
	"risk_travel_incidents",
	"suspicious_activity_score",
}

func writeEmployeeSummaryCSV(w io.Writer, employees []analysis.EmployeeStats) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(employeeSummaryColumns); err != nil {
		return err
	}
	for _, e := range employees {
		row := []string{
			e.EmployeeID,
			e.Department,
			e.Position,
			e.Campus,
			e.BehavioralGroup,
			strconv.Itoa(e.SeniorityYears),
			strconv.Itoa(e.Classification),
			strconv.Itoa(e.IsContractor),
			strconv.Itoa(e.IsMalicious),
			e.OriginCountry,
			strconv.Itoa(e.HasForeignCitizenship),
			strconv.Itoa(e.HasCriminalRecord),
			strconv.Itoa(e.HasMedicalHistory),
			strconv.Itoa(e.WorkDays),
			strconv.Itoa(e.TotalPrintedPages),
			strconv.Itoa(e.TotalPrintCommands),
			strconv.Itoa(e.TotalBurnRequests),
			floatField(e.TotalBurnVolumeMB),
			strconv.Itoa(e.TotalFilesBurned),
			strconv.Itoa(e.DaysAbroad),
			strconv.Itoa(e.UniqueCountries),
			strconv.Itoa(e.HostileCountryVisits),
			strconv.Itoa(e.UnofficialTrips),
			floatField(e.OffHoursWorkRate),
			floatField(e.WeekendWorkRate),
			floatField(e.MultiCampusRate),
			floatField(e.OffHoursPrintRate),
			floatField(e.OffHoursBurnRate),
			floatField(e.AvgBurnClassification),
			strconv.Itoa(e.MaxBurnClassification),
			strconv.Itoa(e.RiskTravelIncidents),
			strconv.Itoa(e.SuspicionScore),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var dailySummaryColumns = []string{
	"date",
	"active_employees",
	"malicious_records",
	"total_pages_printed",
	"total_print_commands",
	"total_burn_requests",
	"total_burn_volume_mb",
	"total_files_burned",
	"employees_abroad",
	"weekend_entries",
	"early_entries",
	"late_exits",
	"off_hours_print_commands",
	"off_hours_burn_requests",
	"risk_travel_incidents",
	"day_of_week",
	"is_weekend",
}

func writeDailySummaryCSV(w io.Writer, days []analysis.DailyStats) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(dailySummaryColumns); err != nil {
		return err
	}
	for _, d := range days {
		row := []string{
			d.Date.Format(activity.DateLayout),
			strconv.Itoa(d.ActiveEmployees),
			strconv.Itoa(d.MaliciousRecords),
			strconv.Itoa(d.TotalPagesPrinted),
			strconv.Itoa(d.TotalPrintCommands),
			strconv.Itoa(d.TotalBurnRequests),
			floatField(d.TotalBurnVolumeMB),
			strconv.Itoa(d.TotalFilesBurned),
			strconv.Itoa(d.EmployeesAbroad),
			strconv.Itoa(d.WeekendEntries),
			strconv.Itoa(d.EarlyEntries),
			strconv.Itoa(d.LateExits),
			strconv.Itoa(d.OffHoursPrintCommands),
			strconv.Itoa(d.OffHoursBurnRequests),
			strconv.Itoa(d.RiskTravelIncidents),
			d.DayOfWeek,
			strconv.FormatBool(d.IsWeekend),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
