package values

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/threatforge/insider-synth/internal/domain/errors"
)

// TimeOfDay is a wall-clock time with minute precision, stored as minutes
// since midnight. Its wire format is "HH:MM" in 24-hour notation.
type TimeOfDay struct {
	minutes int
}

const minutesPerDay = 24 * 60

// NewTimeOfDay builds a TimeOfDay from an hour and minute pair
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, errors.NewValidationError("INVALID_HOUR",
			fmt.Sprintf("hour must be between 0 and 23, got %d", hour))
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, errors.NewValidationError("INVALID_MINUTE",
			fmt.Sprintf("minute must be between 0 and 59, got %d", minute))
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

// TimeOfDayFromMinutes builds a TimeOfDay from minutes since midnight,
// wrapping around day boundaries
func TimeOfDayFromMinutes(minutes int) TimeOfDay {
	minutes %= minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}
	return TimeOfDay{minutes: minutes}
}

// ParseTimeOfDay parses the "HH:MM" wire format
func ParseTimeOfDay(text string) (TimeOfDay, error) {
	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, errors.NewValidationError("INVALID_TIME_FORMAT",
			fmt.Sprintf("time must be in HH:MM format, got %q", text))
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, errors.NewValidationError("INVALID_TIME_FORMAT",
			fmt.Sprintf("time must be in HH:MM format, got %q", text))
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, errors.NewValidationError("INVALID_TIME_FORMAT",
			fmt.Sprintf("time must be in HH:MM format, got %q", text))
	}
	return NewTimeOfDay(hour, minute)
}

// Hour returns the hour component (0-23)
func (t TimeOfDay) Hour() int {
	return t.minutes / 60
}

// Minute returns the minute component (0-59)
func (t TimeOfDay) Minute() int {
	return t.minutes % 60
}

// Minutes returns minutes elapsed since midnight
func (t TimeOfDay) Minutes() int {
	return t.minutes
}

// AddMinutes shifts the time by delta minutes, wrapping at day boundaries
func (t TimeOfDay) AddMinutes(delta int) TimeOfDay {
	return TimeOfDayFromMinutes(t.minutes + delta)
}

// MinutesUntil returns the minute span from t to other within one day
func (t TimeOfDay) MinutesUntil(other TimeOfDay) int {
	return other.minutes - t.minutes
}

// String renders the "HH:MM" wire format
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}
