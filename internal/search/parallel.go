package search

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/EmmanuelLazard/IBM-ponder-this-2024-03/internal/primes"
	"github.com/EmmanuelLazard/IBM-ponder-this-2024-03/internal/window"
)

// noCandidate marks a worker stride that produced nothing in its window.
const noCandidate = int64(-1)

// Coordinator partitions each window's candidates across a fixed pool of
// workers. Worker k owns the stride offset+k, offset+k+t, ... so within a
// stride candidates are tested in increasing order and the first hit is the
// worker's local minimum. The global minimum is settled through SharedBound:
// peeked without the lock for early exit, updated under it.
type Coordinator struct {
	opts     Options
	log      *logrus.Logger
	counters *Counters
}

func NewCoordinator(opts Options, log *logrus.Logger, counters *Counters) *Coordinator {
	return &Coordinator{opts: opts, log: log, counters: counters}
}

func (c *Coordinator) Run() (int64, error) {
	capacity := c.opts.WindowSize
	slack := maxDisplacement(c.opts.N)
	stride := int64(c.opts.Threads)
	bound := &SharedBound{}

	it := primes.NewIterator()
	offset := c.opts.Start
	for {
		w, err := window.Build(it, offset, capacity, slack, c.opts.MaxTableEntries)
		if err != nil {
			return 0, err
		}
		c.counters.Windows.Add(1)

		g := new(errgroup.Group)
		locals := make([]int64, c.opts.Threads)
		for k := 0; k < c.opts.Threads; k++ {
			k := k
			g.Go(func() error {
				locals[k] = c.runStride(w, bound, offset+int64(k), stride)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return 0, err
		}
		for k, local := range locals {
			if local != noCandidate {
				c.log.Debugf("worker %d found %d in window [%d, %d)", k, local, offset, offset+capacity)
			}
		}

		if v, ok := bound.Value(); ok {
			return v, nil
		}
		c.log.Debugf("window [%d, %d) exhausted by all workers, sliding", offset, offset+capacity)
		offset += capacity
	}
}

// runStride tests the worker's candidates against the shared window.
// The stale-tolerant bound peek lets a worker abandon the window as soon as
// a smaller valid candidate exists anywhere; missing a fresh update only
// means a few wasted tests, never a wrong answer.
func (c *Coordinator) runStride(w *window.Window, bound *SharedBound, first, stride int64) int64 {
	for a0 := first; a0 < w.Offset+w.Capacity; a0 += stride {
		if v, ok := bound.Peek(); ok && v < a0 {
			return noCandidate
		}
		c.counters.Candidates.Add(1)
		if w.SequenceFree(a0, c.opts.N) {
			bound.Offer(a0)
			return a0
		}
	}
	return noCandidate
}
