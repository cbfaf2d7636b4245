/*
Package reconcile turns external payloads into valid snapshots.

PURPOSE:
  Persisted snapshots and imported backups come from older versions of the
  editor, hand-edited files, and other tools. This package coerces any of
  them into the current payroll.Snapshot shape, defaulting field by field
  instead of rejecting the payload.

ENTRY POINTS:
  Revive(raw):   Startup load of the autosaved copy. Returns nil when the
                 bytes are not a JSON object; the caller falls back to defaults.
  Restore(raw):  Explicit restore of a backup file. Returns ErrInvalidBackup
                 when the bytes are not a JSON object.

  The two differ in one default: a job without breakPolicy.enabled is
  revived with the policy ON and restored with the policy OFF.

PIPELINE:
  bytes -> parse (fail: nil / ErrInvalidBackup)
        -> currency (string, else "CAD")
        -> jobs via the shape chain (shapes.go)
        -> shifts (records.go), job reference = jobId ?? job ?? "A"
        -> stale break reset (breaks.go)
  Once parsed, the result is always a complete snapshot.

SEE ALSO:
  - shapes.go: Legacy job collection shapes
  - breaks.go: Import-time break re-derivation
  - state/: RestoreAll command uses Restore
*/
package reconcile

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/elriot/part-time-pay-calculator/payroll"
)

// Options tune the coercion for one entry point.
type Options struct {
	// PolicyEnabledByDefault is used for jobs whose breakPolicy.enabled is missing.
	PolicyEnabledByDefault bool

	// NewID generates ids for shifts that arrive without one.
	NewID func() string
}

// ReviveOptions are used for the autosaved copy.
func ReviveOptions() Options {
	return Options{PolicyEnabledByDefault: true, NewID: uuid.NewString}
}

// RestoreOptions are used for explicit backup restores.
func RestoreOptions() Options {
	return Options{PolicyEnabledByDefault: false, NewID: uuid.NewString}
}

// Revive reconciles a previously persisted snapshot. It returns nil when raw
// is not a JSON object.
func Revive(raw []byte) *payroll.Snapshot {
	obj, ok := parseObject(raw)
	if !ok {
		return nil
	}
	snap := Normalize(obj, ReviveOptions())
	return &snap
}

// Restore reconciles an imported backup payload.
func Restore(raw []byte) (payroll.Snapshot, error) {
	return RestoreWith(raw, RestoreOptions())
}

// RestoreWith is Restore with explicit options.
func RestoreWith(raw []byte, opts Options) (payroll.Snapshot, error) {
	obj, ok := parseObject(raw)
	if !ok {
		return payroll.Snapshot{}, payroll.ErrInvalidBackup
	}
	return Normalize(obj, opts), nil
}

// Normalize coerces an already decoded JSON object into a snapshot. It never
// fails.
func Normalize(obj map[string]any, opts Options) payroll.Snapshot {
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	snap := payroll.Snapshot{
		Currency: payroll.DefaultCurrency,
		Jobs:     coerceJobs(obj["jobs"], opts),
		Shifts:   coerceShifts(obj["shifts"], opts),
	}
	if c, ok := obj["currency"].(string); ok {
		snap.Currency = c
	}

	snap.Shifts = RederiveBreaks(snap.Shifts, snap.Jobs)
	return snap
}

func parseObject(raw []byte) (map[string]any, bool) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	return obj, ok
}
