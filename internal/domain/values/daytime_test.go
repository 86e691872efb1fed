package values

import "testing"

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		expectError bool
		hour        int
		minute      int
	}{
		{name: "morning", text: "08:30", hour: 8, minute: 30},
		{name: "midnight", text: "00:00", hour: 0, minute: 0},
		{name: "last minute", text: "23:59", hour: 23, minute: 59},
		{name: "missing colon", text: "0830", expectError: true},
		{name: "garbage", text: "not-a-time", expectError: true},
		{name: "hour out of range", text: "25:00", expectError: true},
		{name: "minute out of range", text: "10:72", expectError: true},
		{name: "empty", text: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tod, err := ParseTimeOfDay(tt.text)

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if tod.Hour() != tt.hour || tod.Minute() != tt.minute {
				t.Errorf("expected %02d:%02d, got %s", tt.hour, tt.minute, tod)
			}
		})
	}
}

func TestTimeOfDayAddMinutes(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		delta    int
		expected string
	}{
		{name: "forward", start: "08:00", delta: 10, expected: "08:10"},
		{name: "backward", start: "08:00", delta: -10, expected: "07:50"},
		{name: "wraps past midnight", start: "23:55", delta: 10, expected: "00:05"},
		{name: "wraps before midnight", start: "00:05", delta: -10, expected: "23:55"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tod, err := ParseTimeOfDay(tt.start)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := tod.AddMinutes(tt.delta).String(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestTimeOfDayMinutesUntil(t *testing.T) {
	entry, _ := NewTimeOfDay(8, 15)
	exit, _ := NewTimeOfDay(17, 45)
	if got := entry.MinutesUntil(exit); got != 570 {
		t.Errorf("expected 570 minutes, got %d", got)
	}
}

func TestClamp01(t *testing.T) {
	if Clamp01(1.4) != 1 {
		t.Error("expected clamp to 1")
	}
	if Clamp01(-0.2) != 0 {
		t.Error("expected clamp to 0")
	}
	if Clamp01(0.42) != 0.42 {
		t.Error("expected passthrough")
	}
}
