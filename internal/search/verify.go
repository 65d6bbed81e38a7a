package search

import "fmt"

// VerificationError reports a sequence term that turned out to be prime.
// It means the search path and ground truth disagree, which is a bug, and
// is surfaced as such rather than silently corrected.
type VerificationError struct {
	Term      int64 // the offending term's value
	Iteration int64 // 1-based position in the sequence
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("verification failed: term %d is prime at iteration %d", e.Term, e.Iteration)
}

// Verify independently re-walks the length-n sequence starting at a0 and
// merge-scans it against a fresh prime stream, without any window table.
// Returns nil if no term is prime.
func Verify(stream primeStream, a0, n int64) error {
	stream.SeekTo(a0, a0+maxDisplacement(n)+1)
	p, err := stream.Next()
	if err != nil {
		return err
	}
	term := a0
	for i := int64(0); i < n; i++ {
		term += i
		for p < term {
			if p, err = stream.Next(); err != nil {
				return err
			}
		}
		if p == term {
			return &VerificationError{Term: term, Iteration: i + 1}
		}
	}
	return nil
}
