/*
store.go - Persistence interface for the current snapshot

PURPOSE:
  Defines what the autosave collaborator needs from a backing store. Only
  the latest serialized snapshot per key is kept; there is no history.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite file (or ":memory:")
  - payroll/store/memory.go: In-memory for testing

SEE ALSO:
  - autosave/: Debounced writer
  - reconcile/: Turns the stored bytes back into a Snapshot
*/
package payroll

import "context"

// SnapshotStore persists serialized snapshots by key.
type SnapshotStore interface {
	// Save replaces the payload stored under key.
	Save(ctx context.Context, key string, payload []byte) error

	// Load returns the payload stored under key, or ErrSnapshotNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Delete removes the payload under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
