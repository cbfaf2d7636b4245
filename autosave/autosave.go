/*
Package autosave writes the current snapshot to a store after a quiet period.

PURPOSE:
  Every command produces a new snapshot. Writing each one would hammer the
  store during typing, so writes are coalesced: each Schedule restarts the
  timer and only the latest payload is written once the delay passes.

CONTRACT:
  - Fire-and-forget: Schedule never blocks on the store and never retries.
    A failed write is logged and dropped; the next change writes again.
  - Flush writes the pending payload now (shutdown, explicit save).
  - Clear cancels any pending write and deletes the stored copy (resetAll).
  - Store calls are serialized. A write that was taken before a later
    Schedule or Clear is dropped, so a cleared copy is never resurrected
    and an older payload never lands after a newer one.

SEE ALSO:
  - session/: Calls Schedule after every command
  - payroll/store.go: SnapshotStore interface
*/
package autosave

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/elriot/part-time-pay-calculator/payroll"
)

// DefaultDelay is the coalescing window used by the browser editor.
const DefaultDelay = 300 * time.Millisecond

const writeTimeout = 5 * time.Second

// Saver debounces snapshot writes to a SnapshotStore.
type Saver struct {
	store  payroll.SnapshotStore
	key    string
	delay  time.Duration
	logger *slog.Logger

	// writeMu is held around every store call.
	writeMu sync.Mutex

	mu      sync.Mutex
	timer   *time.Timer
	pending []byte
	gen     uint64 // bumped by Schedule and Clear
}

// New creates a saver writing under key. A non-positive delay uses DefaultDelay.
func New(store payroll.SnapshotStore, key string, delay time.Duration, logger *slog.Logger) *Saver {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Saver{store: store, key: key, delay: delay, logger: logger}
}

// Schedule serializes the snapshot and (re)starts the coalescing timer.
func (s *Saver) Schedule(snap payroll.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.pending = payload
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
	return nil
}

func (s *Saver) fire() {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := s.Flush(ctx); err != nil {
		s.logger.Warn("autosave failed", "key", s.key, "error", err)
	}
}

// Flush writes the pending payload, if any, immediately.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	payload, gen := s.pending, s.gen
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	if payload == nil {
		return nil
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.superseded(gen) {
		s.logger.Debug("autosave superseded", "key", s.key)
		return nil
	}
	if err := s.store.Save(ctx, s.key, payload); err != nil {
		return err
	}
	s.logger.Debug("autosaved snapshot", "key", s.key, "bytes", len(payload))
	return nil
}

func (s *Saver) superseded(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen != gen
}

// Clear drops any pending write and deletes the stored copy.
func (s *Saver) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.store.Delete(ctx, s.key)
}

// Pending reports whether a write is waiting for the timer.
func (s *Saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}
