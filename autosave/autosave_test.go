package autosave_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elriot/part-time-pay-calculator/autosave"
	"github.com/elriot/part-time-pay-calculator/payroll"
	"github.com/elriot/part-time-pay-calculator/payroll/store"
	"github.com/elriot/part-time-pay-calculator/reconcile"
)

const key = "ptpc_v1"

func snapshotWithCurrency(c string) payroll.Snapshot {
	s := payroll.DefaultSnapshot()
	s.Currency = c
	return s
}

func TestSaver_CoalescesBurstIntoOneWrite(t *testing.T) {
	// GIVEN: Three changes scheduled inside one quiet period
	// WHEN: The delay passes
	// THEN: Exactly one write happens, holding the last snapshot

	mem := store.NewMemory()
	saver := autosave.New(mem, key, 20*time.Millisecond, nil)

	require.NoError(t, saver.Schedule(snapshotWithCurrency("A")))
	require.NoError(t, saver.Schedule(snapshotWithCurrency("B")))
	require.NoError(t, saver.Schedule(snapshotWithCurrency("C")))

	assert.Eventually(t, func() bool { return mem.Saves() == 1 }, time.Second, 5*time.Millisecond)
	assert.False(t, saver.Pending())

	raw, err := mem.Load(context.Background(), key)
	require.NoError(t, err)
	revived := reconcile.Revive(raw)
	require.NotNil(t, revived)
	assert.Equal(t, "C", revived.Currency)

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, 1, mem.Saves())
}

func TestSaver_FlushWritesImmediately(t *testing.T) {
	mem := store.NewMemory()
	saver := autosave.New(mem, key, time.Hour, nil)

	require.NoError(t, saver.Schedule(snapshotWithCurrency("EUR")))
	assert.True(t, saver.Pending())
	assert.Equal(t, 0, mem.Saves())

	require.NoError(t, saver.Flush(context.Background()))
	assert.Equal(t, 1, mem.Saves())
	assert.False(t, saver.Pending())

	// Nothing pending: no write.
	require.NoError(t, saver.Flush(context.Background()))
	assert.Equal(t, 1, mem.Saves())
}

func TestSaver_ClearCancelsPendingAndDeletes(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.Save(ctx, key, []byte(`{}`)))
	saver := autosave.New(mem, key, 10*time.Millisecond, nil)

	require.NoError(t, saver.Schedule(snapshotWithCurrency("X")))
	require.NoError(t, saver.Clear(ctx))

	time.Sleep(40 * time.Millisecond)
	_, err := mem.Load(ctx, key)
	assert.ErrorIs(t, err, payroll.ErrSnapshotNotFound)
	assert.Equal(t, 1, mem.Saves())
}

type failingStore struct{ *store.Memory }

func (failingStore) Save(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestSaver_FlushReportsStoreError(t *testing.T) {
	saver := autosave.New(failingStore{store.NewMemory()}, key, time.Hour, nil)
	require.NoError(t, saver.Schedule(payroll.DefaultSnapshot()))

	err := saver.Flush(context.Background())
	assert.EqualError(t, err, "disk full")
	assert.False(t, saver.Pending(), "a failed write is dropped, not retried")
}

// gatedStore blocks every Save until release is closed.
type gatedStore struct {
	*store.Memory
	entered chan struct{}
	release chan struct{}
}

func newGatedStore() *gatedStore {
	return &gatedStore{Memory: store.NewMemory(), entered: make(chan struct{}, 8), release: make(chan struct{})}
}

func (g *gatedStore) Save(ctx context.Context, key string, payload []byte) error {
	g.entered <- struct{}{}
	<-g.release
	return g.Memory.Save(ctx, key, payload)
}

func waitEntered(t *testing.T, g *gatedStore) {
	t.Helper()
	select {
	case <-g.entered:
	case <-time.After(time.Second):
		t.Fatal("save was never started")
	}
}

func TestSaver_ClearWinsOverInFlightWrite(t *testing.T) {
	// GIVEN: A timer-driven write blocked inside the store
	// WHEN: Clear runs before that write completes
	// THEN: The stored copy stays deleted once everything settles

	ctx := context.Background()
	gated := newGatedStore()
	saver := autosave.New(gated, key, time.Millisecond, nil)

	require.NoError(t, saver.Schedule(snapshotWithCurrency("OLD")))
	waitEntered(t, gated)

	cleared := make(chan error, 1)
	go func() { cleared <- saver.Clear(ctx) }()
	time.Sleep(20 * time.Millisecond) // let Clear reach the store

	close(gated.release)
	require.NoError(t, <-cleared)

	_, err := gated.Load(ctx, key)
	assert.ErrorIs(t, err, payroll.ErrSnapshotNotFound, "cleared copy must not come back")
}

func TestSaver_OlderWriteNeverLandsLast(t *testing.T) {
	// GIVEN: A timer-driven write of A blocked inside the store
	// WHEN: B is scheduled and flushed before A's write completes
	// THEN: The store ends up holding B

	ctx := context.Background()
	gated := newGatedStore()
	saver := autosave.New(gated, key, time.Millisecond, nil)

	require.NoError(t, saver.Schedule(snapshotWithCurrency("A")))
	waitEntered(t, gated)

	require.NoError(t, saver.Schedule(snapshotWithCurrency("B")))
	flushed := make(chan error, 1)
	go func() { flushed <- saver.Flush(ctx) }()
	time.Sleep(20 * time.Millisecond)

	close(gated.release)
	require.NoError(t, <-flushed)

	raw, err := gated.Load(ctx, key)
	require.NoError(t, err)
	revived := reconcile.Revive(raw)
	require.NotNil(t, revived)
	assert.Equal(t, "B", revived.Currency)
}

func TestSaver_FlushAfterClearWritesNothing(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	saver := autosave.New(mem, key, time.Hour, nil)

	require.NoError(t, saver.Schedule(snapshotWithCurrency("X")))
	require.NoError(t, saver.Clear(ctx))
	require.NoError(t, saver.Flush(ctx))

	assert.Equal(t, 0, mem.Saves())
}
