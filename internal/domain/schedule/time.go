package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// TimeToMinutes parses an "HH:MM" string into minutes since midnight.
func TimeToMinutes(hm string) (int, error) {
	parts := strings.Split(hm, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time format: %q", hm)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time format: %q", hm)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time format: %q", hm)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("time out of range: %q", hm)
	}

	return hours*60 + minutes, nil
}

// MinutesToTime is the inverse of TimeToMinutes, zero-padded.
// Defined only for inputs in [0, 1440).
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// minutesOrZero applies the engine's degrade policy for malformed time
// strings coming from remote payloads: treat as midnight instead of
// failing the whole evaluation.
func minutesOrZero(hm string) int {
	m, err := TimeToMinutes(hm)
	if err != nil {
		return 0
	}
	return m
}
