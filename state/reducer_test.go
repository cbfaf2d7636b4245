package state_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elriot/part-time-pay-calculator/payroll"
	"github.com/elriot/part-time-pay-calculator/state"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func testReducer() state.Reducer {
	n := 0
	return state.Reducer{
		Now: func() time.Time { return time.Date(2024, time.March, 4, 12, 0, 0, 0, time.UTC) },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	}
}

func withShifts(ids ...string) payroll.Snapshot {
	snap := payroll.DefaultSnapshot()
	for _, id := range ids {
		snap.Shifts = append(snap.Shifts, payroll.Shift{ID: id, JobID: "A", Start: "09:00", End: "17:00"})
	}
	return snap
}

func shiftIDs(s payroll.Snapshot) []string {
	out := make([]string, len(s.Shifts))
	for i, sh := range s.Shifts {
		out[i] = sh.ID
	}
	return out
}

func apply(t *testing.T, r state.Reducer, s payroll.Snapshot, cmd state.Command) payroll.Snapshot {
	t.Helper()
	next, effect, err := r.Apply(s, cmd)
	require.NoError(t, err)
	assert.Equal(t, state.EffectNone, effect)
	return next
}

// =============================================================================
// JOB COMMANDS
// =============================================================================

func TestReducer_ResetAllClearsPersisted(t *testing.T) {
	r := testReducer()
	s := withShifts("a", "b")
	s.Currency = "USD"

	next, effect, err := r.Apply(s, state.ResetAll{})

	require.NoError(t, err)
	assert.Equal(t, state.EffectClearPersisted, effect)
	assert.Equal(t, payroll.DefaultSnapshot(), next)
}

func TestReducer_SetCurrencyVerbatim(t *testing.T) {
	next := apply(t, testReducer(), payroll.DefaultSnapshot(), state.SetCurrency{Value: " eur "})
	assert.Equal(t, " eur ", next.Currency)
}

func TestReducer_SetJobRate(t *testing.T) {
	r := testReducer()
	s := payroll.DefaultSnapshot()

	next := apply(t, r, s, state.SetJobRate{JobID: "B", Rate: 31.5})
	assert.Equal(t, 31.5, next.Jobs[1].Rate)
	assert.Equal(t, 25.0, s.Jobs[1].Rate, "input must not be modified")

	next = apply(t, r, next, state.SetJobRate{JobID: "B", Rate: -3})
	assert.Equal(t, 0.0, next.Jobs[1].Rate)
}

func TestReducer_MissingJobIsNoOp(t *testing.T) {
	s := payroll.DefaultSnapshot()
	next := apply(t, testReducer(), s, state.SetJobName{JobID: "Q", Name: "Nope"})
	assert.Equal(t, s, next)
}

func TestReducer_SetJobBreakPolicyReplacesWholePolicy(t *testing.T) {
	next := apply(t, testReducer(), payroll.DefaultSnapshot(), state.SetJobBreakPolicy{
		JobID:  "A",
		Policy: payroll.BreakPolicy{Enabled: true, ThresholdHours: 6, MinBreakMin: 45},
	})
	assert.Equal(t, payroll.BreakPolicy{Enabled: true, ThresholdHours: 6, MinBreakMin: 45}, next.Jobs[0].BreakPolicy)
	assert.False(t, next.Jobs[1].BreakPolicy.Enabled)
}

// =============================================================================
// SHIFT COMMANDS
// =============================================================================

func TestReducer_AddShiftDefaults(t *testing.T) {
	// GIVEN: A snapshot whose first job is "B"
	// WHEN: Adding a shift
	// THEN: It is today, 09:00-17:00, no break, job "B"

	s := payroll.DefaultSnapshot()
	s.Jobs = []payroll.Job{s.Jobs[1], s.Jobs[0]}

	next := apply(t, testReducer(), s, state.AddShift{})

	require.Len(t, next.Shifts, 1)
	assert.Equal(t, payroll.Shift{ID: "id-1", Date: "2024-03-04", JobID: "B", Start: "09:00", End: "17:00"}, next.Shifts[0])
}

func TestReducer_AddShiftWithoutJobsUsesA(t *testing.T) {
	next := apply(t, testReducer(), payroll.Snapshot{}, state.AddShift{})
	assert.Equal(t, payroll.JobID("A"), next.Shifts[0].JobID)
}

func TestReducer_RemoveShift(t *testing.T) {
	r := testReducer()
	s := withShifts("a", "b", "c")

	next := apply(t, r, s, state.RemoveShift{ID: "b"})
	assert.Equal(t, []string{"a", "c"}, shiftIDs(next))
	assert.Equal(t, []string{"a", "b", "c"}, shiftIDs(s))

	same := apply(t, r, next, state.RemoveShift{ID: "zzz"})
	assert.Equal(t, next, same)
}

func TestReducer_UpdateShiftMergesPatch(t *testing.T) {
	s := withShifts("a")
	s.Shifts[0].Note = "keep"
	start, brk := "10:30", -10
	job := payroll.JobID("B")

	next := apply(t, testReducer(), s, state.UpdateShift{ID: "a", Patch: state.ShiftPatch{Start: &start, JobID: &job, UnpaidBreakMin: &brk}})

	got := next.Shifts[0]
	assert.Equal(t, "10:30", got.Start)
	assert.Equal(t, "17:00", got.End)
	assert.Equal(t, payroll.JobID("B"), got.JobID)
	assert.Equal(t, 0, got.UnpaidBreakMin)
	assert.Equal(t, "keep", got.Note)
}

func TestReducer_ReplaceAllShiftsNormalizesLegacyJob(t *testing.T) {
	// GIVEN: Imported records naming their job under the legacy "job" field
	// WHEN: Replacing all shifts
	// THEN: Every shift carries jobId, missing ids are generated, rate is dropped

	records := []payroll.ShiftRecord{
		{ID: "x", Date: "2024-03-04", Job: "B", Start: "09:00", End: "12:00", Rate: 99},
		{Date: "2024-03-05", Start: "09:00", End: "12:00"},
		{ID: "y", JobID: "A", Job: "B", Start: "09:00", End: "12:00", UnpaidBreakMin: -1},
	}

	next := apply(t, testReducer(), withShifts("old"), state.ReplaceAllShifts{Records: records})

	require.Len(t, next.Shifts, 3)
	assert.Equal(t, payroll.JobID("B"), next.Shifts[0].JobID)
	assert.Equal(t, "id-1", next.Shifts[1].ID)
	assert.Equal(t, payroll.JobID("A"), next.Shifts[1].JobID)
	assert.Equal(t, payroll.JobID("A"), next.Shifts[2].JobID)
	assert.Equal(t, 0, next.Shifts[2].UnpaidBreakMin)
}

func TestReducer_AppendShifts(t *testing.T) {
	next := apply(t, testReducer(), withShifts("a"), state.AppendShifts{Records: []payroll.ShiftRecord{{ID: "b"}}})
	assert.Equal(t, []string{"a", "b"}, shiftIDs(next))
}

func TestReducer_ReorderShifts(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"forward", 0, 2, []string{"B", "C", "A", "D"}},
		{"backward", 3, 1, []string{"A", "D", "B", "C"}},
		{"to end", 0, 3, []string{"B", "C", "D", "A"}},
		{"same index", 1, 1, []string{"A", "B", "C", "D"}},
		{"negative", -1, 2, []string{"A", "B", "C", "D"}},
		{"out of range", 0, 4, []string{"A", "B", "C", "D"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := withShifts("A", "B", "C", "D")
			next := apply(t, testReducer(), s, state.ReorderShifts{From: tt.from, To: tt.to})
			assert.Equal(t, tt.want, shiftIDs(next))
			assert.Equal(t, []string{"A", "B", "C", "D"}, shiftIDs(s))
		})
	}
}

func TestReducer_SortByDateStartIsStable(t *testing.T) {
	s := payroll.DefaultSnapshot()
	s.Shifts = []payroll.Shift{
		{ID: "late", Date: "2024-03-05", Start: "13:00"},
		{ID: "tie1", Date: "2024-03-04", Start: "09:00"},
		{ID: "nodate", Date: "", Start: "10:00"},
		{ID: "tie2", Date: "2024-03-04", Start: "09:00"},
		{ID: "early", Date: "2024-03-05", Start: "08:00"},
	}

	next := apply(t, testReducer(), s, state.SortByDateStart{})

	assert.Equal(t, []string{"nodate", "tie1", "tie2", "early", "late"}, shiftIDs(next))
}

// =============================================================================
// RESTORE AND UNKNOWN
// =============================================================================

func TestReducer_RestoreAll(t *testing.T) {
	payload := []byte(`{"currency": "EUR", "jobs": {"A": 15}, "shifts": [{"job": "A", "start": "09:00", "end": "10:00"}]}`)

	next := apply(t, testReducer(), withShifts("old"), state.RestoreAll{Payload: payload})

	assert.Equal(t, "EUR", next.Currency)
	assert.Equal(t, 15.0, next.Jobs[0].Rate)
	require.Len(t, next.Shifts, 1)
	assert.Equal(t, "id-1", next.Shifts[0].ID)
	assert.Equal(t, payroll.JobID("A"), next.Shifts[0].JobID)
}

func TestReducer_RestoreAllInvalidLeavesState(t *testing.T) {
	s := withShifts("keep")

	next, effect, err := testReducer().Apply(s, state.RestoreAll{Payload: []byte(`[1, 2, 3]`)})

	assert.ErrorIs(t, err, payroll.ErrInvalidBackup)
	assert.Equal(t, state.EffectNone, effect)
	assert.Equal(t, s, next)
}

func TestReducer_UnknownCommandIsNoOp(t *testing.T) {
	s := withShifts("a")
	next := apply(t, testReducer(), s, state.Unknown{Tag: "launchRockets"})
	assert.Equal(t, s, next)
}
