package search

import (
	"github.com/sirupsen/logrus"

	"github.com/EmmanuelLazard/IBM-ponder-this-2024-03/internal/primes"
	"github.com/EmmanuelLazard/IBM-ponder-this-2024-03/internal/window"
)

// Slider drives one elimination strategy across successive windows of the
// integer line until a valid start is confirmed. A window that comes up
// empty is an ordinary outcome: the slider advances the offset and keeps
// going. A survivor always exists for finite n, so the loop has no failure
// state short of a fatal allocation or source error.
type Slider struct {
	opts     Options
	log      *logrus.Logger
	counters *Counters
}

func NewSlider(opts Options, log *logrus.Logger, counters *Counters) *Slider {
	return &Slider{opts: opts, log: log, counters: counters}
}

func (s *Slider) Run() (int64, error) {
	switch s.opts.Strategy {
	case StrategyBackward:
		return s.runBackward()
	default:
		return s.runDirect()
	}
}

func (s *Slider) runBackward() (int64, error) {
	it := primes.NewIterator()
	elim := NewBackwardEliminator(it, s.log, s.counters)
	capacity := s.opts.WindowSize
	if s.opts.MaxTableEntries > 0 && capacity > s.opts.MaxTableEntries {
		return 0, &window.AllocationError{Requested: capacity, Limit: s.opts.MaxTableEntries}
	}

	offset := s.opts.Start
	for {
		s.counters.Windows.Add(1)
		idx, ok, err := elim.Run(offset, 0, capacity, s.opts.N)
		if err != nil {
			return 0, err
		}
		if ok {
			return offset + idx, nil
		}
		s.log.Debugf("window [%d, %d) fully eliminated, sliding", offset, offset+capacity)
		offset += capacity
	}
}

func (s *Slider) runDirect() (int64, error) {
	it := primes.NewIterator()
	capacity := s.opts.WindowSize
	slack := maxDisplacement(s.opts.N)

	offset := s.opts.Start
	for {
		w, err := window.Build(it, offset, capacity, slack, s.opts.MaxTableEntries)
		if err != nil {
			return 0, err
		}
		s.counters.Windows.Add(1)
		for a0 := offset; a0 < offset+capacity; a0++ {
			s.counters.Candidates.Add(1)
			if w.SequenceFree(a0, s.opts.N) {
				return a0, nil
			}
		}
		s.log.Debugf("window [%d, %d) exhausted, sliding", offset, offset+capacity)
		offset += capacity
	}
}
