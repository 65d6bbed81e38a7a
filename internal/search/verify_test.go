package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmmanuelLazard/IBM-ponder-this-2024-03/internal/primes"
)

func TestVerifyValidStarts(t *testing.T) {
	tests := []struct{ a0, n int64 }{
		{1, 1},
		{8, 2},
		{9, 3},
		{9, 4},
		{15, 5},
		{24, 8},
	}
	for _, tc := range tests {
		err := Verify(primes.NewIterator(), tc.a0, tc.n)
		assert.NoError(t, err, "a0=%d n=%d", tc.a0, tc.n)
	}
}

func TestVerifyCorruptedCandidates(t *testing.T) {
	tests := []struct {
		a0, n         int64
		wantTerm      int64
		wantIteration int64
	}{
		{7, 1, 7, 1},   // the start itself is prime
		{8, 3, 11, 3},  // 8, 9, 11
		{4, 2, 5, 2},   // 4, 5
		{15, 8, 43, 8}, // fails only at the last term
	}
	for _, tc := range tests {
		err := Verify(primes.NewIterator(), tc.a0, tc.n)
		var verr *VerificationError
		require.ErrorAs(t, err, &verr, "a0=%d n=%d", tc.a0, tc.n)
		assert.Equal(t, tc.wantTerm, verr.Term, "a0=%d n=%d", tc.a0, tc.n)
		assert.Equal(t, tc.wantIteration, verr.Iteration, "a0=%d n=%d", tc.a0, tc.n)
	}
}
