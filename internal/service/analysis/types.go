package analysis

import "time"

// Summary bundles every aggregate view computed from one dataset.
type Summary struct {
	Overview  Overview
	Groups    []GroupStats
	Employees []EmployeeStats
	Daily     []DailyStats
}

// Overview holds the dataset-wide totals used by the analysis report.
type Overview struct {
	TotalRecords   int
	TotalEmployees int
	FirstDate      time.Time
	LastDate       time.Time
	TotalDays      int

	MaliciousEmployees    int
	MaliciousRecords      int
	MaliciousRecordRate   float64
	MaliciousEmployeeRate float64

	// Departments is sorted by population, largest first.
	Departments []DepartmentStats

	TotalPrintCommands   int
	TotalPrintedPages    int
	TotalBurnRequests    int
	TotalBurnVolumeMB    float64
	TotalFilesBurned     int
	TotalDaysAbroad      int
	HostileCountryVisits int
	RiskTravelIncidents  int

	OffHoursPrintCommands int
	OffHoursPrintRate     float64
	OffHoursBurnRequests  int
	OffHoursBurnRate      float64
	EarlyEntries          int
	LateExits             int
	WeekendEntries        int

	// MissingValues covers the nullable wire columns in contract order,
	// including zero counts.
	MissingValues []ColumnMissing

	AbroadRecords       int
	AbroadWithoutAccess int
	ColorPrints         int
	BWPrints            int

	TopClassificationBurnDays int
	MultiCampusDays           int
	UnofficialTravelDays      int
}

// DepartmentStats counts one department's population in the dataset.
type DepartmentStats struct {
	Department         string
	Employees          int
	MaliciousEmployees int
}

// ColumnMissing counts absent values for one nullable wire column.
type ColumnMissing struct {
	Column string
	Count  int
}

// GroupStats aggregates one behavioral group's activity. Frequencies and
// rates are per record, the off-hours rates per command or request.
type GroupStats struct {
	Group                string
	Department           string
	TotalEmployees       int
	TotalRecords         int
	MaliciousEmployees   int
	PrintFrequency       float64
	BurnFrequency        float64
	TravelFrequency      float64
	AvgPagesPerDay       float64
	AvgBurnVolumeMB      float64
	WeekendWorkRate      float64
	OffHoursPrintRate    float64
	OffHoursBurnRate     float64
	MultiCampusRate      float64
	AvgClassification    float64
	MaxClassification    int
	ForeignTravelRate    float64
	HostileCountryRate   float64
	UnofficialTravelRate float64
}

// EmployeeStats is one employee's rollup across the whole window.
type EmployeeStats struct {
	EmployeeID            string
	Department            string
	Position              string
	Campus                string
	BehavioralGroup       string
	SeniorityYears        int
	Classification        int
	IsContractor          int
	IsMalicious           int
	OriginCountry         string
	HasForeignCitizenship int
	HasCriminalRecord     int
	HasMedicalHistory     int

	WorkDays             int
	TotalPrintedPages    int
	TotalPrintCommands   int
	TotalBurnRequests    int
	TotalBurnVolumeMB    float64
	TotalFilesBurned     int
	DaysAbroad           int
	UniqueCountries      int
	HostileCountryVisits int
	UnofficialTrips      int

	OffHoursWorkRate      float64
	WeekendWorkRate       float64
	MultiCampusRate       float64
	OffHoursPrintRate     float64
	OffHoursBurnRate      float64
	AvgBurnClassification float64
	MaxBurnClassification int

	RiskTravelIncidents int
	SuspicionScore      int
}

// DailyStats aggregates one calendar day across all employees. IsWeekend is
// the calendar weekend, not the workweek convention the access sampler uses.
type DailyStats struct {
	Date                  time.Time
	ActiveEmployees       int
	MaliciousRecords      int
	TotalPagesPrinted     int
	TotalPrintCommands    int
	TotalBurnRequests     int
	TotalBurnVolumeMB     float64
	TotalFilesBurned      int
	EmployeesAbroad       int
	WeekendEntries        int
	EarlyEntries          int
	LateExits             int
	OffHoursPrintCommands int
	OffHoursBurnRequests  int
	RiskTravelIncidents   int
	DayOfWeek             string
	IsWeekend             bool
}
