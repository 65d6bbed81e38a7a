package search

import (
	"github.com/sirupsen/logrus"
)

// primeStream is the slice of the prime iterator the search loops consume.
// *primes.Iterator satisfies it; tests substitute recording streams.
type primeStream interface {
	SeekTo(low, high int64)
	Next() (int64, error)
}

// maxDisplacement is the distance between a sequence start and its last
// term: sum(1..n-1) = n(n-1)/2.
func maxDisplacement(n int64) int64 {
	return n * (n - 1) / 2
}

// triangular returns T(i) = i(i+1)/2, the displacement of term i.
func triangular(i int64) int64 {
	return i * (i + 1) / 2
}

// beyondReach reports whether prime p can no longer disqualify the current
// smallest survivor: once p > survivor + offset + n(n-1)/2, no backward
// step of the sequence reaches from p down to the survivor, so the
// survivor is the minimal valid start for the whole integer line.
// The comparison must be strict: a prime exactly at the last term's
// position still kills the survivor.
func beyondReach(p, survivor, offset, n int64) bool {
	return p > survivor+offset+maxDisplacement(n)
}

// BackwardEliminator crosses out candidates by walking backwards from each
// prime: p disqualifies p-T(0), p-T(1), ... p-T(n-1). It consumes primes
// one at a time instead of pre-marking a window.
type BackwardEliminator struct {
	stream   primeStream
	log      *logrus.Logger
	counters *Counters
}

func NewBackwardEliminator(stream primeStream, log *logrus.Logger, counters *Counters) *BackwardEliminator {
	return &BackwardEliminator{stream: stream, log: log, counters: counters}
}

// Run eliminates over the liveness range [offset+startIndex, offset+capacity)
// and returns the smallest surviving index, or ok=false when the whole
// window is eliminated and the caller must slide.
//
// The prime loop stops at the first fetched prime beyond reach of the
// current survivor; that prime is never applied. Each applied prime is
// walked through all n backward steps, skipping indices at or above the
// window and breaking once the index goes negative.
func (b *BackwardEliminator) Run(offset, startIndex, capacity, n int64) (survivor int64, ok bool, err error) {
	alive := make([]bool, capacity)
	for i := startIndex; i < capacity; i++ {
		alive[i] = true
	}
	smallest := startIndex
	reach := maxDisplacement(n)

	b.stream.SeekTo(offset+startIndex, offset+capacity+2*reach)
	for {
		p, err := b.stream.Next()
		if err != nil {
			return 0, false, err
		}
		if beyondReach(p, smallest, offset, n) {
			return smallest, true, nil
		}
		b.counters.Primes.Add(1)
		if b.counters.Primes.Load()&0xFFFFF == 0 {
			b.log.Debugf("eliminating with prime %d, smallest survivor %d", p, offset+smallest)
		}

		idx := p - offset
		for i := int64(0); i < n; i++ {
			idx -= i
			if idx < 0 {
				break
			}
			if idx >= capacity {
				continue
			}
			alive[idx] = false
		}

		if !alive[smallest] {
			for smallest < capacity && !alive[smallest] {
				smallest++
			}
			if smallest == capacity {
				return 0, false, nil
			}
		}
	}
}
