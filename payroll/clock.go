package payroll

import (
	"strconv"
	"strings"
)

// =============================================================================
// CLOCK - "HH:MM" wall-clock arithmetic
// =============================================================================

const minutesPerDay = 24 * 60

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(v string) (int, error) {
	parts := strings.Split(strings.TrimSpace(v), ":")
	if len(parts) != 2 {
		return 0, &ClockError{Value: v}
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, &ClockError{Value: v}
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, &ClockError{Value: v}
	}
	return h*60 + m, nil
}

// MinutesBetween returns the wall-clock span from start to end in minutes.
// An end before start crosses midnight, so the result is always in [0, 1439].
// Shifts longer than a day cannot be expressed.
func MinutesBetween(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	if e < s {
		e += minutesPerDay
	}
	return e - s, nil
}
