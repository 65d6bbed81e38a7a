// Package primes produces primes in ascending order within arbitrary
// ranges of the int64 line, behind a seekable, forward-only iterator.
// Sieving is segmented so memory stays bounded no matter how far the
// caller walks.
package primes

import (
	"errors"
	"math"
)

var (
	// ErrSourceExhausted is returned when the iterator is asked for primes
	// beyond the highest value the source can sieve.
	ErrSourceExhausted = errors.New("prime source exhausted")
)

const (
	// MaxValue is the highest value the source will sieve. The base sieve
	// must reach sqrt(MaxValue), so the ceiling is a practical bound on
	// memory, not an int64 one. Next fails past it instead of growing.
	MaxValue = int64(1) << 52

	defaultSegmentSize = int64(1) << 20
	minBaseLimit       = int64(1) << 16
)

// Iterator walks primes in ascending order. It is not safe for concurrent
// use; each worker or phase owns its own instance.
type Iterator struct {
	base      []int64 // sieving primes, ascending
	baseLimit int64   // base covers [2, baseLimit]

	segLo, segHi int64
	composite    []bool // composite[i] refers to segLo+i

	cursor int64 // next value to consider
}

// NewIterator returns an iterator positioned at 2.
func NewIterator() *Iterator {
	return &Iterator{cursor: 2}
}

// SeekTo positions the iterator so subsequent Next calls return primes
// >= low in ascending order. high is a stop hint only; the iterator keeps
// producing primes past it on demand.
func (it *Iterator) SeekTo(low, high int64) {
	if low < 2 {
		low = 2
	}
	it.cursor = low
	if low < it.segLo || low >= it.segHi {
		// Drop the current segment; the next read sieves a fresh one.
		it.segLo, it.segHi = 0, 0
	}
}

// Next returns the next prime at or above the current position.
func (it *Iterator) Next() (int64, error) {
	for {
		if it.cursor >= MaxValue {
			return 0, ErrSourceExhausted
		}
		if it.cursor < it.segLo || it.cursor >= it.segHi {
			if err := it.sieveSegment(it.cursor); err != nil {
				return 0, err
			}
		}
		for it.cursor < it.segHi {
			v := it.cursor
			it.cursor++
			if !it.composite[v-it.segLo] {
				return v, nil
			}
		}
		// Segment drained, sieve the next one.
	}
}

// sieveSegment marks composites over [lo, lo+segment) using the cached
// base primes, growing the base as needed.
func (it *Iterator) sieveSegment(lo int64) error {
	if lo < 2 {
		lo = 2
	}
	hi := lo + defaultSegmentSize
	if hi > MaxValue {
		hi = MaxValue
	}
	if hi <= lo {
		return ErrSourceExhausted
	}
	it.ensureBase(isqrt(hi - 1))

	size := hi - lo
	if int64(cap(it.composite)) >= size {
		it.composite = it.composite[:size]
		for i := range it.composite {
			it.composite[i] = false
		}
	} else {
		it.composite = make([]bool, size)
	}

	for _, p := range it.base {
		if p*p >= hi {
			break
		}
		first := p * p
		if first < lo {
			first = ((lo + p - 1) / p) * p
		}
		for m := first; m < hi; m += p {
			it.composite[m-lo] = true
		}
	}
	it.segLo, it.segHi = lo, hi
	return nil
}

// ensureBase extends the cached sieving primes to cover [2, limit].
func (it *Iterator) ensureBase(limit int64) {
	if limit <= it.baseLimit {
		return
	}
	if limit < minBaseLimit {
		limit = minBaseLimit
	}
	if limit < 2*it.baseLimit {
		limit = 2 * it.baseLimit
	}
	sieve := make([]bool, limit+1)
	primes := make([]int64, 0, limit/8)
	for v := int64(2); v <= limit; v++ {
		if sieve[v] {
			continue
		}
		primes = append(primes, v)
		for m := v * v; m <= limit; m += v {
			sieve[m] = true
		}
	}
	it.base = primes
	it.baseLimit = limit
}

func isqrt(v int64) int64 {
	if v < 0 {
		return 0
	}
	r := int64(math.Sqrt(float64(v)))
	for r*r > v {
		r--
	}
	for (r+1)*(r+1) <= v {
		r++
	}
	return r
}
