package alignment

import (
	"github.com/aria-lang/seqalign-go/internal/sequence"
)

// GlobalScoreOnly calculates the global alignment score without traceback.
//
// Uses O(n) space instead of O(m*n) by only keeping two rows.
func GlobalScoreOnly(seq1, seq2 *sequence.Record, scoring Scoring) int {
	s1, s2 := seq1.Symbols(), seq2.Symbols()
	m, n := len(s1), len(s2)

	prevRow := make([]int, n+1)
	currRow := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prevRow[j] = j * scoring.Gap
	}

	for i := 1; i <= m; i++ {
		currRow[0] = i * scoring.Gap

		for j := 1; j <= n; j++ {
			diag := prevRow[j-1] + scoring.Score(s1[i-1], s2[j-1])
			up := prevRow[j] + scoring.Gap
			left := currRow[j-1] + scoring.Gap

			currRow[j] = max(diag, max(up, left))
		}

		prevRow, currRow = currRow, prevRow
	}

	return prevRow[n]
}

// LocalScoreOnly calculates the best local alignment score without traceback.
func LocalScoreOnly(seq1, seq2 *sequence.Record, scoring Scoring) int {
	s1, s2 := seq1.Symbols(), seq2.Symbols()
	m, n := len(s1), len(s2)

	prevRow := make([]int, n+1)
	currRow := make([]int, n+1)

	maxScore := 0

	for i := 1; i <= m; i++ {
		currRow[0] = 0

		for j := 1; j <= n; j++ {
			diag := prevRow[j-1] + scoring.Score(s1[i-1], s2[j-1])
			up := prevRow[j] + scoring.Gap
			left := currRow[j-1] + scoring.Gap

			best := max(0, max(diag, max(up, left)))
			currRow[j] = best

			if best > maxScore {
				maxScore = best
			}
		}

		prevRow, currRow = currRow, prevRow
	}

	return maxScore
}

// max returns the maximum of two integers.
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
