package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmmanuelLazard/IBM-ponder-this-2024-03/internal/window"
)

var knownValues = []struct {
	n    int64
	want int64
}{
	{1, 1},
	{2, 8},
	{3, 9},
	{4, 9},
	{5, 15},
	{6, 15},
	{7, 15},
	{8, 24},
}

func runEngine(t *testing.T, opts Options) int64 {
	t.Helper()
	eng, err := New(opts, nil)
	require.NoError(t, err)
	res, err := eng.Run()
	require.NoError(t, err)
	return res.Answer
}

func TestKnownValuesBackward(t *testing.T) {
	for _, tc := range knownValues {
		got := runEngine(t, Options{N: tc.n, Strategy: StrategyBackward, WindowSize: 1000})
		assert.Equal(t, tc.want, got, "n=%d", tc.n)
	}
}

func TestKnownValuesDirect(t *testing.T) {
	for _, tc := range knownValues {
		got := runEngine(t, Options{N: tc.n, Strategy: StrategyDirect, WindowSize: 1000})
		assert.Equal(t, tc.want, got, "n=%d", tc.n)
	}
}

func TestKnownValuesParallel(t *testing.T) {
	for _, threads := range []int{1, 2, 4} {
		for _, tc := range knownValues {
			got := runEngine(t, Options{
				N:          tc.n,
				Strategy:   StrategyDirect,
				Threads:    threads,
				WindowSize: 1000,
			})
			assert.Equal(t, tc.want, got, "n=%d threads=%d", tc.n, threads)
		}
	}
}

func TestStrategiesAgreeAcrossWindowSlides(t *testing.T) {
	// A tiny window forces multiple slides; both strategies and the
	// parallel coordinator must still land on the same minimum.
	for n := int64(1); n <= 8; n++ {
		backward := runEngine(t, Options{N: n, Strategy: StrategyBackward, WindowSize: 4})
		direct := runEngine(t, Options{N: n, Strategy: StrategyDirect, WindowSize: 4})
		parallel := runEngine(t, Options{N: n, Strategy: StrategyDirect, Threads: 3, WindowSize: 4})
		assert.Equal(t, backward, direct, "n=%d", n)
		assert.Equal(t, backward, parallel, "n=%d", n)
	}
}

func TestStartBound(t *testing.T) {
	// Starting past the true minimum must return the next valid start:
	// for n=2, 9 works (9 and 10 are both composite).
	got := runEngine(t, Options{N: 2, Strategy: StrategyBackward, Start: 9, WindowSize: 100})
	assert.Equal(t, int64(9), got)

	got = runEngine(t, Options{N: 2, Strategy: StrategyDirect, Start: 9, WindowSize: 100})
	assert.Equal(t, int64(9), got)

	// A start below 1 is clamped.
	got = runEngine(t, Options{N: 1, Strategy: StrategyBackward, Start: -5, WindowSize: 100})
	assert.Equal(t, int64(1), got)
}

func TestOptionValidation(t *testing.T) {
	_, err := New(Options{N: 0}, nil)
	assert.Error(t, err)

	_, err = New(Options{N: 3, Strategy: "sideways"}, nil)
	assert.Error(t, err)

	_, err = New(Options{N: 3, Threads: MaxThreads + 1, Strategy: StrategyDirect}, nil)
	assert.Error(t, err)

	_, err = New(Options{N: 3, Threads: 2, Strategy: StrategyBackward}, nil)
	assert.Error(t, err)
}

func TestAllocationErrorPropagates(t *testing.T) {
	for _, strategy := range []Strategy{StrategyBackward, StrategyDirect} {
		eng, err := New(Options{
			N:               3,
			Strategy:        strategy,
			WindowSize:      1000,
			MaxTableEntries: 100,
		}, nil)
		require.NoError(t, err)
		_, err = eng.Run()
		var aerr *window.AllocationError
		assert.ErrorAs(t, err, &aerr, "strategy=%s", strategy)
	}
}

func TestCountersPopulated(t *testing.T) {
	eng, err := New(Options{N: 5, Strategy: StrategyDirect, WindowSize: 10}, nil)
	require.NoError(t, err)
	res, err := eng.Run()
	require.NoError(t, err)
	assert.Equal(t, int64(15), res.Answer)
	assert.Greater(t, res.Counters.Windows, int64(1), "window size 10 must slide at least once")
	assert.GreaterOrEqual(t, res.Counters.Candidates, int64(15))
}

func BenchmarkBackward(b *testing.B) {
	for i := 0; i < b.N; i++ {
		eng, _ := New(Options{N: 12, Strategy: StrategyBackward, WindowSize: 100_000}, nil)
		if _, err := eng.Run(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDirect(b *testing.B) {
	for i := 0; i < b.N; i++ {
		eng, _ := New(Options{N: 12, Strategy: StrategyDirect, WindowSize: 100_000}, nil)
		if _, err := eng.Run(); err != nil {
			b.Fatal(err)
		}
	}
}
