package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elriot/part-time-pay-calculator/payroll"
	"github.com/elriot/part-time-pay-calculator/payroll/store"
)

func TestMemory_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	_, err := m.Load(ctx, "k")
	assert.ErrorIs(t, err, payroll.ErrSnapshotNotFound)

	payload := []byte(`{"a":1}`)
	require.NoError(t, m.Save(ctx, "k", payload))
	payload[2] = 'X'

	got, err := m.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got), "stored copy must not alias the caller's slice")
	assert.Equal(t, 1, m.Saves())

	require.NoError(t, m.Delete(ctx, "k"))
	_, err = m.Load(ctx, "k")
	assert.ErrorIs(t, err, payroll.ErrSnapshotNotFound)
}
