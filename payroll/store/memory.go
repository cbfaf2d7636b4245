// Package store provides SnapshotStore implementations.
package store

import (
	"context"
	"sync"

	"github.com/elriot/part-time-pay-calculator/payroll"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	payloads map[string][]byte
	saves    int
}

var _ payroll.SnapshotStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{payloads: make(map[string][]byte)}
}

// Save copies payload so later caller mutations do not leak in.
func (m *Memory) Save(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payloads[key] = append([]byte(nil), payload...)
	m.saves++
	return nil
}

func (m *Memory) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.payloads[key]
	if !ok {
		return nil, payroll.ErrSnapshotNotFound
	}
	return append([]byte(nil), p...), nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.payloads, key)
	return nil
}

// Saves returns how many writes reached the store.
func (m *Memory) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
