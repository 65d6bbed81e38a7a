// Package search implements the windowed elimination engine: two
// correctness-equivalent strategies for ruling out sequence starts, a
// sliding-window driver, a parallel coordinator with a shared tightening
// bound, and an independent verifier.
package search

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/EmmanuelLazard/IBM-ponder-this-2024-03/internal/primes"
)

type Strategy string

const (
	// StrategyBackward consumes primes one at a time and crosses out every
	// start they would collide with.
	StrategyBackward Strategy = "backward"
	// StrategyDirect pre-marks a primality window and tests each start's
	// full sequence against it.
	StrategyDirect Strategy = "direct"
)

// MaxThreads bounds the worker pool.
const MaxThreads = 64

const defaultWindowSize = int64(10_000_000)

// Options parameterize a run. Zero values fall back to defaults in New.
type Options struct {
	N               int64
	Strategy        Strategy
	Start           int64 // lower search bound, clamped to >= 1
	WindowSize      int64
	Threads         int
	MaxTableEntries int64 // table allocation ceiling, 0 = unlimited
}

// Result is a verified answer plus run accounting.
type Result struct {
	Answer   int64
	Counters Snapshot
	Elapsed  time.Duration
}

// Engine runs one search to completion.
type Engine struct {
	opts     Options
	log      *logrus.Logger
	counters Counters
}

// New validates opts and builds an engine. log may be nil, in which case
// output is discarded (handy for tests).
func New(opts Options, log *logrus.Logger) (*Engine, error) {
	if opts.N < 1 {
		return nil, fmt.Errorf("sequence length must be >= 1, got %d", opts.N)
	}
	if opts.Strategy == "" {
		opts.Strategy = StrategyBackward
	}
	if opts.Strategy != StrategyBackward && opts.Strategy != StrategyDirect {
		return nil, fmt.Errorf("unknown strategy %q", opts.Strategy)
	}
	if opts.Threads == 0 {
		opts.Threads = 1
	}
	if opts.Threads < 1 || opts.Threads > MaxThreads {
		return nil, fmt.Errorf("thread count must be between 1 and %d, got %d", MaxThreads, opts.Threads)
	}
	if opts.Threads > 1 && opts.Strategy == StrategyBackward {
		return nil, fmt.Errorf("the backward strategy is single-threaded; use --strategy direct with multiple threads")
	}
	if opts.WindowSize <= 0 {
		opts.WindowSize = defaultWindowSize
	}
	if opts.Start < 1 {
		opts.Start = 1
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Engine{opts: opts, log: log}, nil
}

// Run searches for the minimal valid start and verifies it against a fresh
// prime iterator before returning.
func (e *Engine) Run() (*Result, error) {
	started := time.Now()
	e.log.Debugf("searching for n=%d, strategy=%s, threads=%d, window=%d, start=%d",
		e.opts.N, e.opts.Strategy, e.opts.Threads, e.opts.WindowSize, e.opts.Start)

	var (
		answer int64
		err    error
	)
	if e.opts.Threads > 1 {
		answer, err = NewCoordinator(e.opts, e.log, &e.counters).Run()
	} else {
		answer, err = NewSlider(e.opts, e.log, &e.counters).Run()
	}
	if err != nil {
		return nil, err
	}
	e.log.Infof("candidate start value %d found, verifying", answer)

	if err := Verify(primes.NewIterator(), answer, e.opts.N); err != nil {
		return nil, err
	}
	return &Result{
		Answer:   answer,
		Counters: e.counters.Snapshot(),
		Elapsed:  time.Since(started),
	}, nil
}
