package payroll

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// SHIFT PAY - Worked hours and money for one shift
// =============================================================================

var sixty = decimal.NewFromInt(60)

// ShiftPay is the derived pay line for a single shift.
type ShiftPay struct {
	ShiftID string
	JobID   JobID

	// Valid is false when start/end could not be parsed. Invalid lines
	// contribute nothing to any total.
	Valid bool

	// JobFound is false for a dangling JobID. Such shifts earn 0 hours and
	// 0 pay but still count towards scheduled hours.
	JobFound bool

	ScheduledMin   int
	ScheduledHours decimal.Decimal // unrounded
	Break          BreakDecision
	PaidMin        int

	Hours decimal.Decimal // rounded to cents
	Pay   decimal.Decimal // rounded to cents
}

// Round2 rounds half-up to two decimal places. Values are exact decimals, so
// a midpoint such as 20.005 is never misread as 20.00499...
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ComputeShift derives a shift's pay against its owning job. Pass found=false
// when the shift's JobID matches no job.
func ComputeShift(s Shift, job Job, found bool) ShiftPay {
	line := ShiftPay{
		ShiftID:        s.ID,
		JobID:          s.JobID,
		JobFound:       found,
		ScheduledHours: decimal.Zero,
		Hours:          decimal.Zero,
		Pay:            decimal.Zero,
	}

	scheduled, err := MinutesBetween(s.Start, s.End)
	if err != nil {
		return line
	}
	line.Valid = true
	line.ScheduledMin = scheduled
	line.ScheduledHours = decimal.NewFromInt(int64(scheduled)).Div(sixty)

	var policy BreakPolicy
	if found {
		policy = job.BreakPolicy
	}
	line.Break = policy.Evaluate(scheduled, s.UnpaidBreakMin)
	line.PaidMin = max(0, scheduled-line.Break.EffectiveMin)

	if !found {
		return line
	}

	paid := decimal.NewFromInt(int64(line.PaidMin))
	line.Hours = Round2(paid.Div(sixty))
	// Multiply before dividing so cent midpoints stay exact.
	line.Pay = Round2(paid.Mul(decimal.NewFromFloat(job.Rate)).Div(sixty))
	return line
}
