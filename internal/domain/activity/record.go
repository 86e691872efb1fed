package activity

import (
	"fmt"
	"time"

	"github.com/threatforge/insider-synth/internal/domain/errors"
)

// DateLayout is the wire format for record dates.
const DateLayout = "2006-01-02"

// Travel is one day's travel state. TripDayNumber and CountryName are nil
// whenever the employee is not abroad.
type Travel struct {
	IsAbroad              int     `json:"is_abroad"`
	TripDayNumber         *int    `json:"trip_day_number"`
	CountryName           *string `json:"country_name"`
	IsHostileCountryTrip  int     `json:"is_hostile_country_trip"`
	HostilityCountryLevel int     `json:"hostility_country_level"`
	IsOfficialTrip        int     `json:"is_official_trip"`
}

// Print is one day's printing activity.
type Print struct {
	NumPrintCommands         int     `json:"num_print_commands"`
	TotalPrintedPages        int     `json:"total_printed_pages"`
	NumPrintCommandsOffHours int     `json:"num_print_commands_off_hours"`
	NumPrintedPagesOffHours  int     `json:"num_printed_pages_off_hours"`
	NumColorPrints           int     `json:"num_color_prints"`
	NumBWPrints              int     `json:"num_bw_prints"`
	RatioColorPrints         float64 `json:"ratio_color_prints"`
	PrintedFromOther         int     `json:"printed_from_other"`
	PrintCampuses            int     `json:"print_campuses"`
}

// Burn is one day's document destruction activity.
type Burn struct {
	NumBurnRequests          int     `json:"num_burn_requests"`
	MaxRequestClassification int     `json:"max_request_classification"`
	AvgRequestClassification float64 `json:"avg_request_classification"`
	NumBurnRequestsOffHours  int     `json:"num_burn_requests_off_hours"`
	TotalBurnVolumeMB        float64 `json:"total_burn_volume_mb"`
	TotalFilesBurned         int     `json:"total_files_burned"`
	BurnedFromOther          int     `json:"burned_from_other"`
	BurnCampuses             int     `json:"burn_campuses"`
}

// Access is one day's building access activity. Entry and exit times use
// the "HH:MM" wire format and are empty when the employee never entered.
type Access struct {
	NumEntries              int    `json:"num_entries"`
	NumExits                int    `json:"num_exits"`
	FirstEntryTime          string `json:"first_entry_time"`
	LastExitTime            string `json:"last_exit_time"`
	TotalPresenceMinutes    int    `json:"total_presence_minutes"`
	EnteredDuringNightHours int    `json:"entered_during_night_hours"`
	NumUniqueCampus         int    `json:"num_unique_campus"`
	EarlyEntryFlag          int    `json:"early_entry_flag"`
	LateExitFlag            int    `json:"late_exit_flag"`
	EntryDuringWeekend      int    `json:"entry_during_weekend"`
}

// Risk holds the derived indicators computed from the other activity blocks.
type Risk struct {
	RiskTravelIndicator        int `json:"risk_travel_indicator"`
	UnusualActivityScore       int `json:"unusual_activity_score"`
	HighVolumePrintFlag        int `json:"high_volume_print_flag"`
	HighClassificationBurnFlag int `json:"high_classification_burn_flag"`
	MultiCampusActivityFlag    int `json:"multi_campus_activity_flag"`
}

// Noise records whether the post-generation perturbation pass touched this
// row and which fields it changed.
type Noise struct {
	RowModified         int    `json:"row_modified"`
	ModificationDetails string `json:"modification_details"`
}

// DailyRecord is one employee-day of synthesized activity, the unit of the
// generated dataset. Field names follow the downstream export contract.
type DailyRecord struct {
	EmployeeID             string    `json:"employee_id"`
	Date                   time.Time `json:"date"`
	EmployeeDepartment     string    `json:"employee_department"`
	EmployeeCampus         string    `json:"employee_campus"`
	EmployeePosition       string    `json:"employee_position"`
	EmployeeSeniorityYears int       `json:"employee_seniority_years"`
	IsContractor           int       `json:"is_contractor"`
	EmployeeClassification int       `json:"employee_classification"`
	HasForeignCitizenship  int       `json:"has_foreign_citizenship"`
	HasCriminalRecord      int       `json:"has_criminal_record"`
	HasMedicalHistory      int       `json:"has_medical_history"`
	EmployeeOriginCountry  string    `json:"employee_origin_country"`
	BehavioralGroup        string    `json:"behavioral_group"`
	IsMalicious            int       `json:"is_malicious"`

	// IsEmpMalicious echoes the employee-level flag once the daily labeler
	// has rewritten IsMalicious into a per-day label.
	IsEmpMalicious int `json:"is_emp_malicious,omitempty"`

	Travel Travel `json:"travel"`
	Print  Print  `json:"print"`
	Burn   Burn   `json:"burn"`
	Access Access `json:"access"`
	Risk   Risk   `json:"risk"`
	Noise  Noise  `json:"noise"`
}

// Validate checks the cross-field consistency rules every freshly generated
// record must satisfy. Noise injection may grow page totals without
// recomputing the color split, so noised rows are not revalidated.
func (r *DailyRecord) Validate() error {
	if r.EmployeeID == "" {
		return errors.NewValidationError("EMPTY_EMPLOYEE_ID", "record has no employee id")
	}
	if r.Print.NumColorPrints+r.Print.NumBWPrints != r.Print.TotalPrintedPages {
		return errors.NewValidationError("PAGE_SPLIT_MISMATCH",
			fmt.Sprintf("color %d + bw %d != total pages %d",
				r.Print.NumColorPrints, r.Print.NumBWPrints, r.Print.TotalPrintedPages))
	}
	if r.Print.NumPrintCommandsOffHours > r.Print.NumPrintCommands {
		return errors.NewValidationError("OFF_HOURS_EXCEEDS_TOTAL",
			"off-hours print commands exceed total commands")
	}
	if r.Print.NumPrintedPagesOffHours > r.Print.TotalPrintedPages {
		return errors.NewValidationError("OFF_HOURS_EXCEEDS_TOTAL",
			"off-hours printed pages exceed total pages")
	}
	if r.Burn.NumBurnRequestsOffHours > r.Burn.NumBurnRequests {
		return errors.NewValidationError("OFF_HOURS_EXCEEDS_TOTAL",
			"off-hours burn requests exceed total requests")
	}
	if r.Print.RatioColorPrints < 0 || r.Print.RatioColorPrints > 1 {
		return errors.NewValidationError("RATIO_OUT_OF_RANGE",
			fmt.Sprintf("color ratio %g outside [0,1]", r.Print.RatioColorPrints))
	}
	if r.Burn.MaxRequestClassification < 0 || r.Burn.MaxRequestClassification > 4 {
		return errors.NewValidationError("CLASSIFICATION_OUT_OF_RANGE",
			fmt.Sprintf("max burn classification %d outside [0,4]", r.Burn.MaxRequestClassification))
	}
	if r.Burn.AvgRequestClassification < 0 || r.Burn.AvgRequestClassification > 4 {
		return errors.NewValidationError("CLASSIFICATION_OUT_OF_RANGE",
			fmt.Sprintf("avg burn classification %g outside [0,4]", r.Burn.AvgRequestClassification))
	}
	for name, count := range map[string]int{
		"num_print_commands":     r.Print.NumPrintCommands,
		"total_printed_pages":    r.Print.TotalPrintedPages,
		"num_color_prints":       r.Print.NumColorPrints,
		"num_bw_prints":          r.Print.NumBWPrints,
		"num_burn_requests":      r.Burn.NumBurnRequests,
		"total_files_burned":     r.Burn.TotalFilesBurned,
		"num_entries":            r.Access.NumEntries,
		"num_exits":              r.Access.NumExits,
		"total_presence_minutes": r.Access.TotalPresenceMinutes,
	} {
		if count < 0 {
			return errors.NewValidationError("NEGATIVE_COUNT",
				fmt.Sprintf("%s is negative: %d", name, count))
		}
	}
	if r.Burn.TotalBurnVolumeMB < 0 {
		return errors.NewValidationError("NEGATIVE_COUNT", "total_burn_volume_mb is negative")
	}
	if r.Travel.IsAbroad == 0 {
		if r.Travel.TripDayNumber != nil || r.Travel.CountryName != nil {
			return errors.NewValidationError("TRAVEL_FIELDS_SET",
				"trip fields must be null when not abroad")
		}
		if r.Travel.HostilityCountryLevel != 0 || r.Travel.IsOfficialTrip != 0 {
			return errors.NewValidationError("TRAVEL_FIELDS_SET",
				"hostility and official flags must be zero when not abroad")
		}
	}
	return nil
}

// DayIndex returns the day-of-week index with Monday as 0, matching the
// convention the weekend gating uses.
func DayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// IsWeekend reports whether the date falls on the simulated weekend
// (day index 4 and above).
func IsWeekend(date time.Time) bool {
	return DayIndex(date) >= 4
}
