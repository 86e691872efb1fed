package activity

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Dataset is the full output of one generation run plus the bookkeeping the
// export and analysis stages need.
type Dataset struct {
	RunID       uuid.UUID      `json:"run_id"`
	Seed        int64          `json:"seed"`
	GeneratedAt time.Time      `json:"generated_at"`
	StartDate   time.Time      `json:"start_date"`
	Days        int            `json:"days"`
	Records     []*DailyRecord `json:"records"`

	// Noised and Labeled track which post-processing stages have run, so
	// the exporter knows whether to emit the noise and label columns.
	Noised  bool `json:"noised"`
	Labeled bool `json:"labeled"`
}

// Sort orders records by employee id, then date, the order the export
// contract requires.
func (d *Dataset) Sort() {
	sort.SliceStable(d.Records, func(i, j int) bool {
		if d.Records[i].EmployeeID != d.Records[j].EmployeeID {
			return d.Records[i].EmployeeID < d.Records[j].EmployeeID
		}
		return d.Records[i].Date.Before(d.Records[j].Date)
	})
}

// EmployeeCount returns the number of distinct employees in the dataset.
func (d *Dataset) EmployeeCount() int {
	seen := make(map[string]struct{})
	for _, r := range d.Records {
		seen[r.EmployeeID] = struct{}{}
	}
	return len(seen)
}

// MaliciousEmployeeCount returns the number of distinct employees whose
// records carry the malicious flag. After labeling the per-day flag no
// longer identifies the cohort, so the employee-level echo is used instead.
func (d *Dataset) MaliciousEmployeeCount() int {
	seen := make(map[string]struct{})
	for _, r := range d.Records {
		flag := r.IsMalicious
		if d.Labeled {
			flag = r.IsEmpMalicious
		}
		if flag == 1 {
			seen[r.EmployeeID] = struct{}{}
		}
	}
	return len(seen)
}

// ByEmployee groups records per employee, preserving their relative order.
func (d *Dataset) ByEmployee() map[string][]*DailyRecord {
	grouped := make(map[string][]*DailyRecord)
	for _, r := range d.Records {
		grouped[r.EmployeeID] = append(grouped[r.EmployeeID], r)
	}
	return grouped
}
