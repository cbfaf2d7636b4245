/*
errors.go - Centralized error types for the pay engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers wrap these with context and test with errors.Is().

ERROR CATEGORIES:
  1. Input errors - Malformed clock or date strings
  2. Import errors - Backup payloads that cannot be parsed at all
  3. Store errors - Missing persisted snapshot

NOTE:
  Malformed persisted data is normally degraded to defaults field by field
  (see reconcile/). ErrInvalidBackup is the only import failure and only
  happens when the payload is not a JSON object.
*/
package payroll

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidClock is returned when a wall-clock string is not "HH:MM".
	ErrInvalidClock = errors.New("invalid clock time")

	// ErrInvalidDate is returned when a shift date is not "YYYY-MM-DD".
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidBackup is returned when an imported payload is not a JSON object.
	ErrInvalidBackup = errors.New("invalid backup file")

	// ErrSnapshotNotFound is returned when no persisted snapshot exists.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ClockError reports the offending wall-clock value.
type ClockError struct {
	Value string
}

func (e *ClockError) Error() string {
	return fmt.Sprintf("invalid clock time %q: want HH:MM", e.Value)
}

func (e *ClockError) Unwrap() error {
	return ErrInvalidClock
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidClock) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidBackup)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSnapshotNotFound)
}
