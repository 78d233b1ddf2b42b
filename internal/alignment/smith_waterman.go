package alignment

import (
	"github.com/aria-lang/seqalign-go/internal/sequence"
)

// SmithWaterman performs local alignment using the Smith-Waterman algorithm.
//
// One alignment is returned per matrix cell holding the matrix-wide maximum,
// in the order those cells were reached by a row-major scan. All results
// share the maximum score. Tracebacks that converge on the same path are
// not merged, so identical alignments can appear more than once.
func SmithWaterman(seq1, seq2 *sequence.Record, scoring Scoring) []*Alignment {
	s1, s2 := seq1.Symbols(), seq2.Symbols()

	H, best := BuildLocalMatrix(s1, s2, scoring)
	return localAlignments(s1, s2, H, best)
}

// SmithWatermanLimit is SmithWaterman with a bound on the number of
// co-optimal results. When more than limit cells tie for the maximum, no
// traceback is run and a *TooManyAlignmentsError is returned. A limit of
// zero or less disables the check.
func SmithWatermanLimit(seq1, seq2 *sequence.Record, scoring Scoring, limit int) ([]*Alignment, error) {
	s1, s2 := seq1.Symbols(), seq2.Symbols()

	H, best := BuildLocalMatrix(s1, s2, scoring)
	if limit > 0 && len(best) > limit {
		return nil, &TooManyAlignmentsError{Count: len(best), Limit: limit}
	}
	return localAlignments(s1, s2, H, best), nil
}

func localAlignments(s1, s2 []rune, H *Matrix, best MaxSet) []*Alignment {
	results := make([]*Alignment, 0, len(best))
	for _, c := range best {
		r1, r2, ops, start1, start2 := tracebackLocal(s1, s2, H, c.Row, c.Col)
		results = append(results, newAlignment(r1, r2, ops, best.Score(),
			start1, c.Row, start2, c.Col, Local))
	}
	return results
}

// BuildLocalMatrix fills the zero-floored score matrix for local alignment
// and collects every cell tied for the maximum score.
//
// When either sequence is empty there are no interior cells and the set
// holds only the origin, so callers always get at least one coordinate.
func BuildLocalMatrix(s1, s2 []rune, scoring Scoring) (*Matrix, MaxSet) {
	m, n := len(s1), len(s2)
	H := newMatrix(m+1, n+1)

	var best MaxSet
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			diag := H.At(i-1, j-1).Score + scoring.Score(s1[i-1], s2[j-1])
			up := H.At(i-1, j).Score + scoring.Gap
			left := H.At(i, j-1).Score + scoring.Gap

			c := pick(i, j, diag, up, left, true)
			H.set(i, j, c)
			best.Offer(c.Score, i, j)
		}
	}

	if len(best) == 0 {
		best.Offer(0, 0, 0)
	}

	return H, best
}

// tracebackLocal walks backpointers from (startI, startJ) until it reaches a
// cell scoring zero, and returns where it stopped.
func tracebackLocal(s1, s2 []rune, H *Matrix, startI, startJ int) ([]rune, []rune, []Op, int, int) {
	i, j := startI, startJ
	t := newTrace(0)

	for H.At(i, j).Score != 0 {
		i, j = t.step(s1, s2, i, j, H.At(i, j).Dir)
	}

	r1, r2, ops := t.finish()
	return r1, r2, ops, i, j
}
