// Package alignment provides pairwise sequence alignment algorithms.
//
// This package implements Needleman-Wunsch (global) and Smith-Waterman
// (local) alignment with a linear gap penalty. The local aligner reports
// every co-optimal alignment, one per matrix cell holding the maximum score.
package alignment

import "fmt"

// Scoring represents the scoring parameters for one alignment run.
//
// Values may have any sign; the usual setup is a positive Match with
// negative Gap and Mismatch, but nothing enforces it.
type Scoring struct {
	Gap      int
	Match    int
	Mismatch int
}

// NewScoring creates scoring parameters in the input-file order
// (gap, match, mismatch).
func NewScoring(gap, match, mismatch int) Scoring {
	return Scoring{
		Gap:      gap,
		Match:    match,
		Mismatch: mismatch,
	}
}

// DefaultDNA returns the default DNA scoring parameters.
func DefaultDNA() Scoring {
	return Scoring{
		Gap:      -2,
		Match:    2,
		Mismatch: -1,
	}
}

// Unit returns the +1/-1/-1 scheme used in most textbook examples.
func Unit() Scoring {
	return Scoring{
		Gap:      -1,
		Match:    1,
		Mismatch: -1,
	}
}

// Score returns the score for aligning two symbols against each other.
func (s Scoring) Score(a, b rune) int {
	if a == b {
		return s.Match
	}
	return s.Mismatch
}

// String returns a string representation of the scoring parameters.
func (s Scoring) String() string {
	return fmt.Sprintf("Scoring { gap: %d, match: %d, mismatch: %d }",
		s.Gap, s.Match, s.Mismatch)
}
