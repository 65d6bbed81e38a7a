package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmmanuelLazard/IBM-ponder-this-2024-03/internal/search"
)

func TestWriteRoundTrip(t *testing.T) {
	res := &search.Result{
		Answer: 15,
		Counters: search.Snapshot{
			Windows:    2,
			Candidates: 15,
			Primes:     9,
		},
		Elapsed: 1500 * time.Millisecond,
	}
	rep := New(5, "direct", 2, 1, 1000, res)
	assert.NotEmpty(t, rep.RunID)
	assert.True(t, rep.Verified)

	dir := t.TempDir()
	path, err := Write(dir, "primeseq", rep)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "primeseq_report.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, rep.RunID, got.RunID)
	assert.Equal(t, int64(15), got.Answer)
	assert.Equal(t, int64(5), got.N)
	assert.Equal(t, "direct", got.Strategy)
	assert.Equal(t, int64(2), got.Counters.Windows)
	assert.InDelta(t, 1.5, got.ElapsedSeconds, 1e-9)
}

func TestWriteDefaultsDirAndPrefix(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	rep := New(3, "backward", 1, 1, 100, &search.Result{Answer: 9})
	path, err := Write("", "", rep)
	require.NoError(t, err)
	assert.Equal(t, "primeseq_report.json", path)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
