package reconcile

import (
	"github.com/elriot/part-time-pay-calculator/payroll"
)

// =============================================================================
// SHIFT RECORDS
// =============================================================================

// ShiftRecord coerces one decoded JSON object into an import record. Both the
// current "jobId" and the legacy "job" names are kept; a per-shift "rate" is
// read but never used for pay.
func ShiftRecord(obj map[string]any) payroll.ShiftRecord {
	return payroll.ShiftRecord{
		ID:             asString(obj["id"], ""),
		Date:           asString(obj["date"], ""),
		JobID:          asString(obj["jobId"], ""),
		Job:            asString(obj["job"], ""),
		Start:          asString(obj["start"], payroll.DefaultShiftStart),
		End:            asString(obj["end"], payroll.DefaultShiftEnd),
		UnpaidBreakMin: Minutes(obj["unpaidBreakMin"]),
		Rate:           NonNegative(obj["rate"]),
		Note:           asString(obj["note"], ""),
	}
}

// ShiftRecords coerces a decoded JSON array. A value that is not an array
// yields no records; elements that are not objects are skipped.
func ShiftRecords(v any) []payroll.ShiftRecord {
	arr, ok := v.([]any)
	if !ok {
		return []payroll.ShiftRecord{}
	}
	out := make([]payroll.ShiftRecord, 0, len(arr))
	for _, el := range arr {
		if obj, ok := el.(map[string]any); ok {
			out = append(out, ShiftRecord(obj))
		}
	}
	return out
}

func coerceShifts(v any, opts Options) []payroll.Shift {
	records := ShiftRecords(v)
	shifts := make([]payroll.Shift, 0, len(records))
	for _, r := range records {
		s := r.Shift()
		if s.ID == "" {
			s.ID = opts.NewID()
		}
		shifts = append(shifts, s)
	}
	return shifts
}
