package noise

// Params holds the per-category modification rates and the delta shape.
type Params struct {
	// BurnRate, PrintRate, and EntryTimeRate are the per-row probabilities
	// of each pass touching a row, all in [0, 1].
	BurnRate      float64
	PrintRate     float64
	EntryTimeRate float64

	// Gaussian switches the perturbation deltas from uniform draws to
	// normal draws centered on comparable magnitudes.
	Gaussian bool
}

// DefaultParams returns the reference rates: 5% burn, 5% print, 10% entry time.
func DefaultParams() Params {
	return Params{
		BurnRate:      0.05,
		PrintRate:     0.05,
		EntryTimeRate: 0.10,
	}
}

// Stats counts what an injection pass touched.
type Stats struct {
	TotalRows              int
	ModifiedRows           int
	BurnModifications      int
	PrintModifications     int
	EntryTimeModifications int
}

// ModificationRate returns the fraction of rows that changed.
func (s *Stats) ModificationRate() float64 {
	if s.TotalRows == 0 {
		return 0
	}
	return float64(s.ModifiedRows) / float64(s.TotalRows)
}
