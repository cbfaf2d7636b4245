package state

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/elriot/part-time-pay-calculator/payroll"
	"github.com/elriot/part-time-pay-calculator/reconcile"
)

// =============================================================================
// REDUCER
// =============================================================================

// Reducer applies commands to snapshots.
type Reducer struct {
	Now   func() time.Time
	NewID func() string
}

// NewReducer returns a reducer using the wall clock and random UUIDs.
func NewReducer() Reducer {
	return Reducer{Now: time.Now, NewID: uuid.NewString}
}

// Apply returns the snapshot after cmd. The input snapshot is never modified.
// The only error is payroll.ErrInvalidBackup from RestoreAll, in which case
// the input snapshot is returned unchanged.
func (r Reducer) Apply(s payroll.Snapshot, cmd Command) (payroll.Snapshot, Effect, error) {
	switch c := cmd.(type) {
	case ResetAll:
		return payroll.DefaultSnapshot(), EffectClearPersisted, nil

	case SetCurrency:
		next := s.Clone()
		next.Currency = c.Value
		return next, EffectNone, nil

	case SetJobName:
		return updateJob(s, c.JobID, func(j *payroll.Job) { j.Name = c.Name }), EffectNone, nil

	case SetJobRate:
		return updateJob(s, c.JobID, func(j *payroll.Job) { j.Rate = nonNegative(c.Rate) }), EffectNone, nil

	case SetJobBreakPolicy:
		p := payroll.BreakPolicy{
			Enabled:        c.Policy.Enabled,
			ThresholdHours: nonNegative(c.Policy.ThresholdHours),
			MinBreakMin:    max(0, c.Policy.MinBreakMin),
		}
		return updateJob(s, c.JobID, func(j *payroll.Job) { j.BreakPolicy = p }), EffectNone, nil

	case AddShift:
		next := s.Clone()
		next.Shifts = append(next.Shifts, r.newShift(s))
		return next, EffectNone, nil

	case RemoveShift:
		i := shiftIndex(s, c.ID)
		if i < 0 {
			return s, EffectNone, nil
		}
		next := s.Clone()
		next.Shifts = append(next.Shifts[:i], next.Shifts[i+1:]...)
		return next, EffectNone, nil

	case UpdateShift:
		i := shiftIndex(s, c.ID)
		if i < 0 {
			return s, EffectNone, nil
		}
		next := s.Clone()
		next.Shifts[i] = c.Patch.apply(next.Shifts[i])
		return next, EffectNone, nil

	case ReplaceAllShifts:
		next := s.Clone()
		next.Shifts = r.fromRecords(c.Records)
		return next, EffectNone, nil

	case AppendShifts:
		next := s.Clone()
		next.Shifts = append(next.Shifts, r.fromRecords(c.Records)...)
		return next, EffectNone, nil

	case ReorderShifts:
		return reorder(s, c.From, c.To), EffectNone, nil

	case SortByDateStart:
		next := s.Clone()
		sort.SliceStable(next.Shifts, func(i, j int) bool {
			a, b := next.Shifts[i], next.Shifts[j]
			if d := strings.Compare(a.Date, b.Date); d != 0 {
				return d < 0
			}
			return a.Start < b.Start
		})
		return next, EffectNone, nil

	case RestoreAll:
		restored, err := reconcile.RestoreWith(c.Payload, reconcile.Options{NewID: r.NewID})
		if err != nil {
			return s, EffectNone, err
		}
		return restored, EffectNone, nil

	default:
		return s, EffectNone, nil
	}
}

func (r Reducer) newShift(s payroll.Snapshot) payroll.Shift {
	jobID := payroll.DefaultJobRef
	if len(s.Jobs) > 0 {
		jobID = s.Jobs[0].ID
	}
	return payroll.Shift{
		ID:    r.NewID(),
		Date:  payroll.TodayISO(r.Now()),
		JobID: jobID,
		Start: payroll.DefaultShiftStart,
		End:   payroll.DefaultShiftEnd,
	}
}

func (r Reducer) fromRecords(records []payroll.ShiftRecord) []payroll.Shift {
	out := make([]payroll.Shift, 0, len(records))
	for _, rec := range records {
		sh := rec.Shift()
		if sh.ID == "" {
			sh.ID = r.NewID()
		}
		out = append(out, sh)
	}
	return out
}

func (p ShiftPatch) apply(s payroll.Shift) payroll.Shift {
	if p.Date != nil {
		s.Date = *p.Date
	}
	if p.JobID != nil {
		s.JobID = *p.JobID
	}
	if p.Start != nil {
		s.Start = *p.Start
	}
	if p.End != nil {
		s.End = *p.End
	}
	if p.UnpaidBreakMin != nil {
		s.UnpaidBreakMin = max(0, *p.UnpaidBreakMin)
	}
	if p.Note != nil {
		s.Note = *p.Note
	}
	return s
}

// reorder uses remove-then-insert: [A B C D] from 0 to 2 gives [B C A D].
// Equal or negative indices are no-ops. Out-of-range indices are a caller
// error and also leave the snapshot unchanged.
func reorder(s payroll.Snapshot, from, to int) payroll.Snapshot {
	if from == to || from < 0 || to < 0 || from >= len(s.Shifts) || to >= len(s.Shifts) {
		return s
	}
	next := s.Clone()
	moved := next.Shifts[from]
	next.Shifts = append(next.Shifts[:from], next.Shifts[from+1:]...)
	next.Shifts = append(next.Shifts[:to], append([]payroll.Shift{moved}, next.Shifts[to:]...)...)
	return next
}

func updateJob(s payroll.Snapshot, id payroll.JobID, fn func(*payroll.Job)) payroll.Snapshot {
	for i := range s.Jobs {
		if s.Jobs[i].ID == id {
			next := s.Clone()
			fn(&next.Jobs[i])
			return next
		}
	}
	return s
}

func shiftIndex(s payroll.Snapshot, id string) int {
	for i, sh := range s.Shifts {
		if sh.ID == id {
			return i
		}
	}
	return -1
}

func nonNegative(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
