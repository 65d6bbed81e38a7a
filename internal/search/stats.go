package search

import "sync/atomic"

// Counters accumulate run-wide progress figures. All fields are updated
// with atomics so workers never contend on them.
type Counters struct {
	Windows    atomic.Int64
	Candidates atomic.Int64
	Primes     atomic.Int64
}

// Snapshot is a point-in-time copy of the counters, shaped for reports.
type Snapshot struct {
	Windows    int64 `json:"windows_scanned"`
	Candidates int64 `json:"candidates_tested"`
	Primes     int64 `json:"primes_consumed"`
}

func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Windows:    c.Windows.Load(),
		Candidates: c.Candidates.Load(),
		Primes:     c.Primes.Load(),
	}
}
