package workforce

import (
	"sort"

	"github.com/threatforge/insider-synth/internal/domain/employee"
)

// Workforce is a generated population: profiles in ID order plus the set of
// employees selected as the malicious cohort.
type Workforce struct {
	Profiles  []*employee.Profile
	Malicious map[string]bool
}

// IsMalicious reports whether the employee belongs to the malicious cohort.
func (w *Workforce) IsMalicious(employeeID string) bool {
	return w.Malicious[employeeID]
}

// MaliciousIDs returns the cohort's employee IDs in sorted order.
func (w *Workforce) MaliciousIDs() []string {
	ids := make([]string, 0, len(w.Malicious))
	for id := range w.Malicious {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DepartmentCounts returns how many employees each department received.
func (w *Workforce) DepartmentCounts() map[string]int {
	counts := make(map[string]int)
	for _, p := range w.Profiles {
		counts[p.Department]++
	}
	return counts
}
