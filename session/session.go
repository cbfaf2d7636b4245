// Package session ties the reducer, the current snapshot and autosave together
// for one editing session. Commands are applied one at a time.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/elriot/part-time-pay-calculator/autosave"
	"github.com/elriot/part-time-pay-calculator/payroll"
	"github.com/elriot/part-time-pay-calculator/reconcile"
	"github.com/elriot/part-time-pay-calculator/state"
)

// Session is the single writer for a snapshot.
type Session struct {
	reducer state.Reducer
	saver   *autosave.Saver
	logger  *slog.Logger

	mu      sync.RWMutex
	current payroll.Snapshot
}

// Open revives the persisted copy under key, falling back to the built-in
// defaults when there is none or it cannot be parsed.
func Open(ctx context.Context, store payroll.SnapshotStore, saver *autosave.Saver, reducer state.Reducer, key string, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{reducer: reducer, saver: saver, logger: logger, current: payroll.DefaultSnapshot()}

	raw, err := store.Load(ctx, key)
	switch {
	case errors.Is(err, payroll.ErrSnapshotNotFound):
		logger.Info("no saved snapshot, starting from defaults", "key", key)
	case err != nil:
		return nil, err
	default:
		if revived := reconcile.Revive(raw); revived != nil {
			s.current = *revived
			logger.Info("revived snapshot", "key", key, "jobs", len(revived.Jobs), "shifts", len(revived.Shifts))
		} else {
			logger.Warn("saved snapshot unreadable, starting from defaults", "key", key)
		}
	}
	return s, nil
}

// New starts a session from an explicit snapshot without reading a store.
func New(initial payroll.Snapshot, saver *autosave.Saver, reducer state.Reducer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{reducer: reducer, saver: saver, logger: logger, current: initial}
}

// Dispatch applies cmd, schedules an autosave and performs any effect.
// Structural commands are bounds-checked against the snapshot they apply to;
// an out-of-range reorder returns state.ErrIndexOutOfRange and changes nothing.
func (s *Session) Dispatch(ctx context.Context, cmd state.Command) (payroll.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := state.CheckBounds(s.current, cmd); err != nil {
		return s.current.Clone(), err
	}
	next, effect, err := s.reducer.Apply(s.current, cmd)
	if err != nil {
		return s.current, err
	}
	s.current = next

	if s.saver == nil {
		return next, nil
	}
	if effect == state.EffectClearPersisted {
		if err := s.saver.Clear(ctx); err != nil {
			s.logger.Warn("clearing saved snapshot failed", "error", err)
		}
		return next, nil
	}
	if err := s.saver.Schedule(next); err != nil {
		s.logger.Warn("scheduling autosave failed", "command", cmd.Type(), "error", err)
	}
	return next, nil
}

// Snapshot returns the current snapshot.
func (s *Session) Snapshot() payroll.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Aggregates derives totals from the current snapshot.
func (s *Session) Aggregates() payroll.Aggregates {
	return payroll.ComputeAggregates(s.Snapshot())
}

// Close flushes any pending autosave.
func (s *Session) Close(ctx context.Context) error {
	if s.saver == nil {
		return nil
	}
	return s.saver.Flush(ctx)
}
