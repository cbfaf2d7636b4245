package payroll

// ShiftRecord is a shift as it arrives from an import: a CSV row, an older
// backup, or an API call. It may name its job under the legacy Job field and
// may carry a per-shift Rate, which is ignored; pay always uses the job rate.
type ShiftRecord struct {
	ID             string
	Date           string
	JobID          string
	Job            string
	Start          string
	End            string
	UnpaidBreakMin int
	Rate           float64
	Note           string
}

// JobRef resolves the job reference: JobID, else the legacy Job, else "A".
func (r ShiftRecord) JobRef() JobID {
	switch {
	case r.JobID != "":
		return JobID(r.JobID)
	case r.Job != "":
		return JobID(r.Job)
	default:
		return DefaultJobRef
	}
}

// Shift converts the record into a Shift with the job reference resolved.
// The stored break is only clamped to be non-negative.
func (r ShiftRecord) Shift() Shift {
	return Shift{
		ID:             r.ID,
		Date:           r.Date,
		JobID:          r.JobRef(),
		Start:          r.Start,
		End:            r.End,
		UnpaidBreakMin: max(0, r.UnpaidBreakMin),
		Note:           r.Note,
	}
}
