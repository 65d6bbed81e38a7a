package search

import (
	"sync"
	"sync/atomic"
)

// SharedBound holds the smallest window-valid candidate found so far across
// all workers. Zero means unset (candidates are always >= 1). Updates go
// through the mutex so only the smaller of two racing writes persists;
// Peek is a plain atomic load and may return a stale value, which workers
// tolerate (a missed update only costs a few extra tests).
type SharedBound struct {
	mu sync.Mutex
	v  atomic.Int64
}

// Peek returns the current bound without taking the lock.
func (b *SharedBound) Peek() (int64, bool) {
	v := b.v.Load()
	return v, v != 0
}

// Offer records candidate if the bound is unset or strictly larger.
// It reports whether the bound was updated.
func (b *SharedBound) Offer(candidate int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	cur := b.v.Load()
	if cur != 0 && cur <= candidate {
		return false
	}
	b.v.Store(candidate)
	return true
}

// Value returns the authoritative bound under the lock.
func (b *SharedBound) Value() (int64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v := b.v.Load()
	return v, v != 0
}
