// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used when no database path is configured, and in tests.
//
// Characteristics:
//   - Keeps at most `limit` decisions in a ring; the oldest are overwritten.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
)

const defaultMemoryLimit = 1000

// memory is a ring-buffer Store implementation.
type memory struct {
	mu   sync.RWMutex // guards ring, next, full
	ring []Decision
	next int  // slot for the next Record
	full bool // ring has wrapped at least once
}

// NewMemoryStore constructs an in-memory Store holding up to limit decisions.
// A limit <= 0 uses the default of 1000.
func NewMemoryStore(limit int) Store {
	if limit <= 0 {
		limit = defaultMemoryLimit
	}
	return &memory{ring: make([]Decision, limit)}
}

// Record stores d, evicting the oldest decision when full.
func (m *memory) Record(ctx context.Context, d Decision) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ring[m.next] = d
	m.next++
	if m.next == len(m.ring) {
		m.next = 0
		m.full = true
	}
	return nil
}

// Recent walks the ring backwards from the newest entry.
func (m *memory) Recent(ctx context.Context, limit int) ([]Decision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	size := m.next
	if m.full {
		size = len(m.ring)
	}
	if limit <= 0 || limit > size {
		limit = size
	}
	out := make([]Decision, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (m.next - 1 - i + len(m.ring)) % len(m.ring)
		out = append(out, m.ring[idx])
	}
	return out, nil
}
