package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elriot/part-time-pay-calculator/payroll"
	"github.com/elriot/part-time-pay-calculator/reconcile"
	"github.com/elriot/part-time-pay-calculator/state"
)

func TestDecodeCommand(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want state.Command
	}{
		{"reset", `{"type": "resetAll"}`, state.ResetAll{}},
		{"currency", `{"type": "setCurrency", "value": "USD"}`, state.SetCurrency{Value: "USD"}},
		{"job name", `{"type": "setJobName", "jobId": "A", "name": "Cafe"}`, state.SetJobName{JobID: "A", Name: "Cafe"}},
		{"rate string", `{"type": "setJobRate", "jobId": "B", "value": "21.5"}`, state.SetJobRate{JobID: "B", Rate: 21.5}},
		{"rate legacy job key", `{"type": "setJobRate", "job": "B", "value": -2}`, state.SetJobRate{JobID: "B", Rate: 0}},
		{"policy", `{"type": "setJobBreakPolicy", "jobId": "A", "value": {"enabled": true, "thresholdHours": 6, "minBreakMin": 20.7}}`,
			state.SetJobBreakPolicy{JobID: "A", Policy: payroll.BreakPolicy{Enabled: true, ThresholdHours: 6, MinBreakMin: 20}}},
		{"add", `{"type": "addShift"}`, state.AddShift{}},
		{"remove", `{"type": "removeShift", "id": "s1"}`, state.RemoveShift{ID: "s1"}},
		{"reorder", `{"type": "reorderShifts", "fromIndex": 0, "toIndex": 2}`, state.ReorderShifts{From: 0, To: 2}},
		{"reorder missing index", `{"type": "reorderShifts", "fromIndex": 1}`, state.ReorderShifts{From: 1, To: -1}},
		{"sort", `{"type": "sortByDateStart"}`, state.SortByDateStart{}},
		{"unknown", `{"type": "explode"}`, state.Unknown{Tag: "explode"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := state.DecodeCommand([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeCommand_UpdateShiftPatch(t *testing.T) {
	cmd, err := state.DecodeCommand([]byte(`{"type": "updateShift", "id": "s1", "patch": {"end": "18:00", "job": "B", "unpaidBreakMin": "15"}}`))
	require.NoError(t, err)

	u, ok := cmd.(state.UpdateShift)
	require.True(t, ok)
	assert.Equal(t, "s1", u.ID)
	require.NotNil(t, u.Patch.End)
	assert.Equal(t, "18:00", *u.Patch.End)
	require.NotNil(t, u.Patch.JobID)
	assert.Equal(t, payroll.JobID("B"), *u.Patch.JobID)
	require.NotNil(t, u.Patch.UnpaidBreakMin)
	assert.Equal(t, 15, *u.Patch.UnpaidBreakMin)
	assert.Nil(t, u.Patch.Start)
	assert.Nil(t, u.Patch.Date)
}

func TestDecodeCommand_ReplaceAllShifts(t *testing.T) {
	cmd, err := state.DecodeCommand([]byte(`{"type": "replaceAllShifts", "value": [{"id": "x", "job": "B"}, 5]}`))
	require.NoError(t, err)

	r, ok := cmd.(state.ReplaceAllShifts)
	require.True(t, ok)
	require.Len(t, r.Records, 1)
	assert.Equal(t, payroll.JobID("B"), r.Records[0].JobRef())
}

func TestDecodeCommand_RestoreAllCarriesPayload(t *testing.T) {
	cmd, err := state.DecodeCommand([]byte(`{"type": "restoreAll", "payload": {"currency": "EUR"}}`))
	require.NoError(t, err)

	r, ok := cmd.(state.RestoreAll)
	require.True(t, ok)
	assert.JSONEq(t, `{"currency": "EUR"}`, string(r.Payload))
}

func TestDecodeCommand_Malformed(t *testing.T) {
	for _, raw := range []string{`nope`, `[]`, `{}`, `{"type": 3}`, `{"type": ""}`} {
		_, err := state.DecodeCommand([]byte(raw))
		assert.ErrorIs(t, err, state.ErrMalformedCommand, raw)
	}
}

func TestCheckBounds(t *testing.T) {
	s := payroll.DefaultSnapshot()
	s.Shifts = []payroll.Shift{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	assert.NoError(t, state.CheckBounds(s, state.ReorderShifts{From: 0, To: 2}))
	assert.NoError(t, state.CheckBounds(s, state.ReorderShifts{From: -1, To: 1}))
	assert.NoError(t, state.CheckBounds(s, state.AddShift{}))
	assert.ErrorIs(t, state.CheckBounds(s, state.ReorderShifts{From: 0, To: 3}), state.ErrIndexOutOfRange)
	assert.ErrorIs(t, state.CheckBounds(s, state.ReorderShifts{From: 5, To: 0}), state.ErrIndexOutOfRange)
}

func TestDecodeCommand_PartialPolicyZeroesMissingFields(t *testing.T) {
	// GIVEN: A break policy command carrying only "enabled"
	// WHEN: Decoding it
	// THEN: The missing fields are 0, unlike a restored job which keeps 5h / 30min

	cmd, err := state.DecodeCommand([]byte(`{"type": "setJobBreakPolicy", "jobId": "A", "value": {"enabled": true}}`))
	require.NoError(t, err)
	assert.Equal(t, state.SetJobBreakPolicy{JobID: "A", Policy: payroll.BreakPolicy{Enabled: true}}, cmd)

	restored, err := reconcile.Restore([]byte(`{"jobs": [{"id": "A", "breakPolicy": {"enabled": true}}]}`))
	require.NoError(t, err)
	assert.Equal(t, 5.0, restored.Jobs[0].BreakPolicy.ThresholdHours)
	assert.Equal(t, 30, restored.Jobs[0].BreakPolicy.MinBreakMin)
}
