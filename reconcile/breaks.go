package reconcile

import (
	"github.com/elriot/part-time-pay-calculator/payroll"
)

// =============================================================================
// STALE BREAK RESET
// =============================================================================
// A stored break under a job whose policy is enabled but does not cover the
// shift (too short) is left over from when it did, so it is reset to 0.
// Disabled policies, unknown jobs and unparsable clocks pass through.
// Applying the reset twice gives the same result as applying it once.

// RederiveBreak returns s with a stale break reset.
func RederiveBreak(s payroll.Shift, job payroll.Job, found bool) payroll.Shift {
	if !found || !job.BreakPolicy.Enabled {
		return s
	}
	scheduled, err := payroll.MinutesBetween(s.Start, s.End)
	if err != nil {
		return s
	}
	if !job.BreakPolicy.AppliesTo(scheduled) {
		s.UnpaidBreakMin = 0
	}
	return s
}

// RederiveBreaks applies RederiveBreak to every shift, returning a new slice.
func RederiveBreaks(shifts []payroll.Shift, jobs []payroll.Job) []payroll.Shift {
	byID := make(map[payroll.JobID]payroll.Job, len(jobs))
	for _, j := range jobs {
		if _, dup := byID[j.ID]; !dup {
			byID[j.ID] = j
		}
	}
	out := make([]payroll.Shift, len(shifts))
	for i, s := range shifts {
		job, found := byID[s.JobID]
		out[i] = RederiveBreak(s, job, found)
	}
	return out
}
