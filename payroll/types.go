/*
Package payroll provides the pay computation engine.

PURPOSE:
  This package holds the domain model (jobs, shifts, break policy) and the
  pure functions that derive pay from it: wall-clock arithmetic, break policy
  evaluation, per-shift pay, and the per-job / per-week aggregation. Nothing
  in here performs I/O or keeps state between calls.

KEY CONCEPTS IN THIS FILE (types.go):
  - Job: An employer/work context with an hourly rate and a break policy
  - BreakPolicy: Automatic unpaid-break rule applied to long shifts
  - Shift: One worked interval, owned by a job via JobID
  - Snapshot: The complete domain state {currency, jobs, shifts}

DESIGN PRINCIPLES:
  1. Immutability: Snapshots are replaced, never mutated in place
  2. Precision: Money is computed with decimal.Decimal, rounded half-up
  3. Graceful degradation: A shift pointing at an unknown job earns nothing
     but never fails the calculation

JSON SHAPE:
  {
    "currency": "CAD",
    "jobs": [{"id": "A", "name": "Job A", "rate": 20,
              "breakPolicy": {"enabled": true, "thresholdHours": 5, "minBreakMin": 30}}],
    "shifts": [{"id": "...", "date": "2025-03-02", "jobId": "A",
                "start": "09:00", "end": "17:00", "unpaidBreakMin": 30}]
  }

SEE ALSO:
  - clock.go: Time arithmetic
  - policy.go: Break policy evaluation
  - pay.go: Per-shift pay
  - aggregate.go: Totals by job and by week
*/
package payroll

// =============================================================================
// JOB - Employer / work context
// =============================================================================

// JobID identifies a job inside a snapshot. Short and stable ("A", "B", ...).
type JobID string

// Job is one employer with its own wage and break policy.
type Job struct {
	ID          JobID       `json:"id"`
	Name        string      `json:"name"`
	Rate        float64     `json:"rate"`
	BreakPolicy BreakPolicy `json:"breakPolicy"`
}

// DefaultJobName is the display label used when a job has no name.
func DefaultJobName(id JobID) string {
	return "Job " + string(id)
}

// =============================================================================
// SHIFT - One worked interval
// =============================================================================

// Shift is a single worked interval. Start and End are "HH:MM"; an End that
// is numerically before Start crosses midnight.
type Shift struct {
	ID             string `json:"id"`
	Date           string `json:"date"`
	JobID          JobID  `json:"jobId"`
	Start          string `json:"start"`
	End            string `json:"end"`
	UnpaidBreakMin int    `json:"unpaidBreakMin"`
	Note           string `json:"note,omitempty"`
}

// =============================================================================
// SNAPSHOT - Complete domain state
// =============================================================================

// Snapshot is the whole editable state. Jobs order decides the default job
// for new shifts; Shifts order is user-controlled and drives rendering.
type Snapshot struct {
	Currency string  `json:"currency"`
	Jobs     []Job   `json:"jobs"`
	Shifts   []Shift `json:"shifts"`
}

// Job returns the job with the given id.
func (s Snapshot) Job(id JobID) (Job, bool) {
	for _, j := range s.Jobs {
		if j.ID == id {
			return j, true
		}
	}
	return Job{}, false
}

// Clone returns a copy whose slices do not alias s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{Currency: s.Currency}
	out.Jobs = append(make([]Job, 0, len(s.Jobs)), s.Jobs...)
	out.Shifts = append(make([]Shift, 0, len(s.Shifts)), s.Shifts...)
	return out
}
