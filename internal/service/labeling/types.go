package labeling

// Thresholds are the anomaly cutoffs computed from benign activity only.
// The 95th percentile gates the primary day labels, the 75th the softer
// adjacent-day spillover. TripDays95 is taken over days abroad.
type Thresholds struct {
	Prints95   float64
	Burns95    float64
	Presence95 float64
	TripDays95 float64
	Prints75   float64
	Burns75    float64
	Presence75 float64
}

// Stats summarizes one labeling pass.
type Stats struct {
	Thresholds Thresholds

	TotalRecords           int
	MaliciousEmployees     int
	MaliciousEmployeeDays  int
	SuspiciousDays         int
	MaliciousFlaggedDays   int
	FalsePositiveDays      int
	FalsePositiveEmployees int
}

// SuspiciousRate returns the share of all records labeled suspicious.
func (s *Stats) SuspiciousRate() float64 {
	if s.TotalRecords == 0 {
		return 0
	}
	return float64(s.SuspiciousDays) / float64(s.TotalRecords)
}

// DetectionRate returns the share of the malicious cohort's days that
// ended up labeled.
func (s *Stats) DetectionRate() float64 {
	if s.MaliciousEmployeeDays == 0 {
		return 0
	}
	return float64(s.MaliciousFlaggedDays) / float64(s.MaliciousEmployeeDays)
}
