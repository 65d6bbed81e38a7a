// Package window holds a fixed-capacity primality table over a contiguous
// range of the integer line, plus the direct sequence test that runs
// against it.
package window

import (
	"fmt"

	"github.com/EmmanuelLazard/IBM-ponder-this-2024-03/internal/primes"
)

// AllocationError reports a window table that cannot be sized as requested.
// It is fatal: the run aborts rather than retrying with a smaller window.
type AllocationError struct {
	Requested int64 // entries asked for
	Limit     int64 // configured ceiling
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("cannot allocate window table: %d entries requested, limit is %d", e.Requested, e.Limit)
}

// Window is a read-only primality table over [Offset, Offset+Length).
// Length exceeds Capacity by the slack needed to cover sequence terms that
// start inside the window but land beyond it. Once built it is safe for
// concurrent reads.
type Window struct {
	Offset   int64
	Capacity int64
	Length   int64

	table []bool
}

// Build sieves [offset, offset+capacity+slack) and marks every prime in the
// table. maxEntries caps the table size; 0 means unlimited.
func Build(it *primes.Iterator, offset, capacity, slack, maxEntries int64) (*Window, error) {
	length := capacity + slack
	if maxEntries > 0 && length > maxEntries {
		return nil, &AllocationError{Requested: length, Limit: maxEntries}
	}
	w := &Window{
		Offset:   offset,
		Capacity: capacity,
		Length:   length,
		table:    make([]bool, length),
	}
	it.SeekTo(offset, offset+length)
	for {
		p, err := it.Next()
		if err != nil {
			return nil, fmt.Errorf("building window at offset %d: %w", offset, err)
		}
		idx := p - offset
		if idx >= length {
			break
		}
		w.table[idx] = true
	}
	return w, nil
}

// IsPrime reports whether v is prime. v must lie in [Offset, Offset+Length).
func (w *Window) IsPrime(v int64) bool {
	return w.table[v-w.Offset]
}

// SequenceFree reports whether the length-n sequence starting at a0
// (a[i] = a[i-1] + i) contains no prime. a0 must lie in
// [Offset, Offset+Capacity); the slack guarantees every term stays inside
// the table.
func (w *Window) SequenceFree(a0, n int64) bool {
	idx := a0 - w.Offset
	for i := int64(0); i < n; i++ {
		idx += i
		if w.table[idx] {
			return false
		}
	}
	return true
}
