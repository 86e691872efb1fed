package values

import (
	"fmt"

	"github.com/threatforge/insider-synth/internal/domain/errors"
)

// Classification represents a data sensitivity tier. Level 0 means
// unclassified; levels 1-4 grant increasing access, 4 being top secret.
type Classification struct {
	level int
}

const (
	MinClassification = 0
	MaxClassification = 4
)

// NewClassification creates a Classification value object with validation
func NewClassification(level int) (Classification, error) {
	if level < MinClassification || level > MaxClassification {
		return Classification{}, errors.NewValidationError("INVALID_CLASSIFICATION",
			fmt.Sprintf("classification level must be between %d and %d, got %d",
				MinClassification, MaxClassification, level))
	}
	return Classification{level: level}, nil
}

// ClampClassification forces a raw level into the valid range
func ClampClassification(level int) Classification {
	if level < MinClassification {
		level = MinClassification
	}
	if level > MaxClassification {
		level = MaxClassification
	}
	return Classification{level: level}
}

// ClampClassificationValue forces a fractional level (such as a perturbed
// average) into the valid range without rounding it
func ClampClassificationValue(level float64) float64 {
	if level < MinClassification {
		return MinClassification
	}
	if level > MaxClassification {
		return MaxClassification
	}
	return level
}

// Level returns the numeric classification level
func (c Classification) Level() int {
	return c.level
}

// IsTopSecret reports whether the level is the maximum tier
func (c Classification) IsTopSecret() bool {
	return c.level == MaxClassification
}

func (c Classification) String() string {
	switch c.level {
	case 0:
		return "unclassified"
	case 1:
		return "low"
	case 2:
		return "moderate"
	case 3:
		return "high"
	case 4:
		return "top_secret"
	default:
		return "unknown"
	}
}
