package runtime

import (
	"sync"

	"lan-collab/domain"
)

// History is the bounded chat ring. Oldest entries are evicted first once
// capacity is reached. Unicast messages never enter the ring.
type History struct {
	mu       sync.Mutex
	entries  []domain.ChatEntry
	capacity int
}

func NewHistory(capacity int) *History {
	return &History{capacity: capacity}
}

// Append stores an entry, evicting the oldest one when the ring is full.
// Append is the single writer with respect to the rest of the system, so
// every reader observes the same final order.
func (h *History) Append(entry domain.ChatEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, entry)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[len(h.entries)-h.capacity:]
	}
}

// Snapshot returns the entries in insertion order.
func (h *History) Snapshot() []domain.ChatEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]domain.ChatEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
