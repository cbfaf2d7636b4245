package payroll

// =============================================================================
// BUILT-IN DEFAULTS
// =============================================================================

const (
	DefaultCurrency = "CAD"

	// DefaultJobRef is the job reference used when a shift names none.
	DefaultJobRef JobID = "A"

	DefaultThresholdHours = 5
	DefaultMinBreakMin    = 30

	DefaultShiftStart = "09:00"
	DefaultShiftEnd   = "17:00"
)

// DefaultJobs returns the built-in two-job set.
func DefaultJobs() []Job {
	return []Job{
		{ID: "A", Name: DefaultJobName("A"), Rate: 20, BreakPolicy: DefaultBreakPolicy(false)},
		{ID: "B", Name: DefaultJobName("B"), Rate: 25, BreakPolicy: DefaultBreakPolicy(false)},
	}
}

// DefaultBreakPolicy returns the standard 30 minutes after 5 hours rule.
func DefaultBreakPolicy(enabled bool) BreakPolicy {
	return BreakPolicy{Enabled: enabled, ThresholdHours: DefaultThresholdHours, MinBreakMin: DefaultMinBreakMin}
}

// DefaultSnapshot returns the state used on first start and after a reset.
func DefaultSnapshot() Snapshot {
	return Snapshot{Currency: DefaultCurrency, Jobs: DefaultJobs(), Shifts: []Shift{}}
}
