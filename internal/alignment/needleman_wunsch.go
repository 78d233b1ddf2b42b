package alignment

import (
	"github.com/aria-lang/seqalign-go/internal/sequence"
)

// NeedlemanWunsch performs global alignment using the Needleman-Wunsch algorithm.
//
// Aligns the entire length of both sequences and returns exactly one
// alignment. Either sequence may be empty, in which case the other is
// aligned entirely against gaps.
func NeedlemanWunsch(seq1, seq2 *sequence.Record, scoring Scoring) *Alignment {
	s1, s2 := seq1.Symbols(), seq2.Symbols()
	m, n := len(s1), len(s2)

	H := BuildGlobalMatrix(s1, s2, scoring)
	r1, r2, ops := tracebackGlobal(s1, s2, H)

	return newAlignment(r1, r2, ops, H.At(m, n).Score, 0, m, 0, n, Global)
}

// BuildGlobalMatrix fills the similarity matrix for global alignment.
//
// Row 0 and column 0 accumulate gap penalties; every interior cell takes the
// best of its diagonal, upper and left neighbours.
func BuildGlobalMatrix(s1, s2 []rune, scoring Scoring) *Matrix {
	m, n := len(s1), len(s2)
	H := newMatrix(m+1, n+1)

	// First row and column initialized with gap penalties
	for i := 1; i <= m; i++ {
		H.set(i, 0, Cell{Score: i * scoring.Gap, Dir: Up})
	}
	for j := 1; j <= n; j++ {
		H.set(0, j, Cell{Score: j * scoring.Gap, Dir: Left})
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			diag := H.At(i-1, j-1).Score + scoring.Score(s1[i-1], s2[j-1])
			up := H.At(i-1, j).Score + scoring.Gap
			left := H.At(i, j-1).Score + scoring.Gap

			H.set(i, j, pick(i, j, diag, up, left, false))
		}
	}

	return H
}

// tracebackGlobal walks backpointers from the bottom-right corner to the origin.
func tracebackGlobal(s1, s2 []rune, H *Matrix) ([]rune, []rune, []Op) {
	i, j := len(s1), len(s2)
	t := newTrace(i + j)

	for i > 0 || j > 0 {
		i, j = t.step(s1, s2, i, j, H.At(i, j).Dir)
	}

	return t.finish()
}
