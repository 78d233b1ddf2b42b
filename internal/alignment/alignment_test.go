package alignment

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/aria-lang/seqalign-go/internal/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(bases string) *sequence.Record {
	return sequence.New("", "", bases)
}

// rescore recomputes an alignment's score column by column.
func rescore(a *Alignment, s Scoring) int {
	r1, r2 := []rune(a.AlignedSeq1), []rune(a.AlignedSeq2)
	total := 0
	for i, op := range a.Ops() {
		if op == OpInsert || op == OpDelete {
			total += s.Gap
			continue
		}
		total += s.Score(r1[i], r2[i])
	}
	return total
}

// ungap drops the gap columns of each row, leaving the aligned residues.
func ungap(a *Alignment) (string, string) {
	r1, r2 := []rune(a.AlignedSeq1), []rune(a.AlignedSeq2)
	var out1, out2 []rune
	for i, op := range a.Ops() {
		if op != OpInsert {
			out1 = append(out1, r1[i])
		}
		if op != OpDelete {
			out2 = append(out2, r2[i])
		}
	}
	return string(out1), string(out2)
}

func randomBases(r *rand.Rand, n int) string {
	const alphabet = "ACGT"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(b)
}

func TestScoring(t *testing.T) {
	t.Run("NewScoring order", func(t *testing.T) {
		s := NewScoring(-2, 3, -3)
		assert.Equal(t, -2, s.Gap)
		assert.Equal(t, 3, s.Match)
		assert.Equal(t, -3, s.Mismatch)
	})

	t.Run("DefaultDNA", func(t *testing.T) {
		s := DefaultDNA()
		assert.Equal(t, 2, s.Match)
		assert.Equal(t, -1, s.Mismatch)
		assert.Equal(t, -2, s.Gap)
	})

	t.Run("Score", func(t *testing.T) {
		s := Unit()
		assert.Equal(t, 1, s.Score('A', 'A'))
		assert.Equal(t, -1, s.Score('A', 'T'))
	})

	t.Run("any sign accepted", func(t *testing.T) {
		s := NewScoring(3, -1, 5)
		assert.Equal(t, 5, s.Score('A', 'C'))
	})
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		want    Mode
		wantErr bool
	}{
		{"global", Global, false},
		{"local", Local, false},
		{"Global", 0, true},
		{"semi-global", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMode(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				var unsupported *UnsupportedAlgorithmError
				assert.ErrorAs(t, err, &unsupported)
				assert.Equal(t, tt.name, unsupported.Name)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.name, got.String())
		})
	}
}

func TestPickTieBreak(t *testing.T) {
	tests := []struct {
		name            string
		diag, up, left  int
		floored         bool
		wantScore       int
		wantDir         Direction
	}{
		{"all equal prefers diagonal", 3, 3, 3, false, 3, Diagonal},
		{"up over left", 1, 3, 3, false, 3, Up},
		{"left alone", 1, 2, 3, false, 3, Left},
		{"global keeps negatives", -4, -2, -3, false, -2, Up},
		{"local floor", -1, -2, -3, true, 0, None},
		{"diagonal zero beats reset", 0, -1, -1, true, 0, Diagonal},
		{"up zero beats reset", -1, 0, 0, true, 0, Up},
		{"left zero beats reset", -1, -1, 0, true, 0, Left},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := pick(1, 1, tt.diag, tt.up, tt.left, tt.floored)
			assert.Equal(t, tt.wantScore, c.Score)
			assert.Equal(t, tt.wantDir, c.Dir)
		})
	}
}

func TestStepWithoutDirectionPanics(t *testing.T) {
	assert.PanicsWithError(t,
		"alignment invariant violated at cell (1, 1): traceback reached a cell without direction",
		func() {
			newTrace(0).step([]rune("A"), []rune("A"), 1, 1, None)
		})
}

func TestMaxSetOffer(t *testing.T) {
	var ms MaxSet
	assert.Equal(t, 0, ms.Score())

	ms.Offer(2, 1, 1)
	ms.Offer(1, 1, 2)
	assert.Equal(t, MaxSet{{2, 1, 1}}, ms)

	ms.Offer(2, 2, 3)
	assert.Equal(t, MaxSet{{2, 1, 1}, {2, 2, 3}}, ms)

	ms.Offer(5, 3, 1)
	assert.Equal(t, MaxSet{{5, 3, 1}}, ms, "strictly greater score replaces the set")

	ms.Offer(5, 4, 4)
	ms.Offer(4, 4, 5)
	assert.Equal(t, MaxSet{{5, 3, 1}, {5, 4, 4}}, ms)
	assert.Equal(t, 5, ms.Score())
}

func TestNeedlemanWunsch(t *testing.T) {
	tests := []struct {
		name      string
		seq1      string
		seq2      string
		scoring   Scoring
		wantScore int
		want1     string
		want2     string
	}{
		{
			name:      "textbook GATTACA",
			seq1:      "GATTACA",
			seq2:      "GCATGCU",
			scoring:   Unit(),
			wantScore: 0,
			want1:     "G-ATTACA",
			want2:     "GCA-TGCU",
		},
		{
			name:      "reversed textbook pair",
			seq1:      "GCATGCU",
			seq2:      "GATTACA",
			scoring:   Unit(),
			wantScore: 0,
			want1:     "GCA-TGCU",
			want2:     "G-ATTACA",
		},
		{
			name:      "single deletion",
			seq1:      "ACGT",
			seq2:      "AGT",
			scoring:   NewScoring(-1, 2, -1),
			wantScore: 5,
			want1:     "ACGT",
			want2:     "A-GT",
		},
		{
			name:      "single insertion",
			seq1:      "AGT",
			seq2:      "ACGT",
			scoring:   NewScoring(-1, 2, -1),
			wantScore: 5,
			want1:     "A-GT",
			want2:     "ACGT",
		},
		{
			name:      "against empty",
			seq1:      "AAA",
			seq2:      "",
			scoring:   NewScoring(-2, 1, -1),
			wantScore: -6,
			want1:     "AAA",
			want2:     "---",
		},
		{
			name:      "empty against",
			seq1:      "",
			seq2:      "CG",
			scoring:   NewScoring(-2, 1, -1),
			wantScore: -4,
			want1:     "--",
			want2:     "CG",
		},
		{
			name:      "both empty",
			seq1:      "",
			seq2:      "",
			scoring:   Unit(),
			wantScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NeedlemanWunsch(rec(tt.seq1), rec(tt.seq2), tt.scoring)

			assert.Equal(t, tt.wantScore, a.Score)
			assert.Equal(t, tt.want1, a.AlignedSeq1)
			assert.Equal(t, tt.want2, a.AlignedSeq2)
			assert.Equal(t, Global, a.Mode)
			assert.Equal(t, tt.wantScore, rescore(a, tt.scoring))
		})
	}
}

func TestNeedlemanWunschTextbookMatrix(t *testing.T) {
	s1, s2 := []rune("GATTACA"), []rune("GCATGCU")
	H := BuildGlobalMatrix(s1, s2, Unit())

	require.Equal(t, 8, H.Rows())
	require.Equal(t, 8, H.Cols())

	for j := 0; j < H.Cols(); j++ {
		assert.Equal(t, -j, H.At(0, j).Score)
	}
	for i := 0; i < H.Rows(); i++ {
		assert.Equal(t, -i, H.At(i, 0).Score)
	}
	assert.Equal(t, Cell{Score: 0, Dir: None}, H.At(0, 0))
	assert.Equal(t, Cell{Score: 1, Dir: Diagonal}, H.At(1, 1))
	assert.Equal(t, 0, H.At(7, 7).Score)
}

func TestNeedlemanWunschSelfAlignment(t *testing.T) {
	scoring := NewScoring(-2, 3, -1)
	for _, bases := range []string{"A", "GATTACA", "ACGTACGTTTGA", "MKVLAAG"} {
		t.Run(bases, func(t *testing.T) {
			a := NeedlemanWunsch(rec(bases), rec(bases), scoring)
			assert.Equal(t, bases, a.AlignedSeq1)
			assert.Equal(t, bases, a.AlignedSeq2)
			assert.Equal(t, scoring.Match*len(bases), a.Score)
			assert.Equal(t, 1.0, a.Identity)
		})
	}
}

func TestNeedlemanWunschSymmetricScore(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	scoring := NewScoring(-2, 3, -1)
	for k := 0; k < 25; k++ {
		a, b := rec(randomBases(r, r.Intn(15))), rec(randomBases(r, r.Intn(15)))
		ab := NeedlemanWunsch(a, b, scoring)
		ba := NeedlemanWunsch(b, a, scoring)
		assert.Equal(t, ab.Score, ba.Score, "%s vs %s", a.Bases, b.Bases)
	}
}

func TestSmithWatermanTextbook(t *testing.T) {
	scoring := NewScoring(-2, 3, -3)
	results := SmithWaterman(rec("ACACACTA"), rec("AGCACACA"), scoring)

	require.Len(t, results, 1)
	a := results[0]
	assert.Equal(t, 17, a.Score)
	assert.Equal(t, "A-CACACTA", a.AlignedSeq1)
	assert.Equal(t, "AGCACAC-A", a.AlignedSeq2)
	assert.Equal(t, 0, a.Start1)
	assert.Equal(t, 8, a.End1)
	assert.Equal(t, 0, a.Start2)
	assert.Equal(t, 8, a.End2)
	assert.Equal(t, Local, a.Mode)
	assert.Equal(t, "1M1I5M1D1M", a.ToCIGAR())
}

func TestSmithWatermanTieSet(t *testing.T) {
	tests := []struct {
		name       string
		seq1       string
		seq2       string
		scoring    Scoring
		wantScore  int
		wantStarts []int
		want1      string
		want2      string
	}{
		{
			name:       "repeat in first sequence",
			seq1:       "ACGTTACG",
			seq2:       "ACG",
			scoring:    NewScoring(-2, 2, -1),
			wantScore:  6,
			wantStarts: []int{0, 5},
			want1:      "ACG",
			want2:      "ACG",
		},
		{
			name:       "separated by mismatch",
			seq1:       "ABCXABC",
			seq2:       "ABC",
			scoring:    Unit(),
			wantScore:  3,
			wantStarts: []int{0, 4},
			want1:      "ABC",
			want2:      "ABC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s1, s2 := []rune(tt.seq1), []rune(tt.seq2)
			H, best := BuildLocalMatrix(s1, s2, tt.scoring)
			require.Len(t, best, len(tt.wantStarts))

			results := SmithWaterman(rec(tt.seq1), rec(tt.seq2), tt.scoring)
			require.Len(t, results, len(best))

			for k, a := range results {
				assert.Equal(t, tt.wantScore, a.Score)
				assert.Equal(t, tt.want1, a.AlignedSeq1)
				assert.Equal(t, tt.want2, a.AlignedSeq2)
				assert.Equal(t, tt.wantStarts[k], a.Start1)
				assert.Equal(t, best[k].Row, a.End1)
				assert.Equal(t, best[k].Col, a.End2)
				assert.Equal(t, 0, H.At(a.Start1, a.Start2).Score, "traceback stops on a zero cell")
			}
		})
	}
}

func TestSmithWatermanKeepsDuplicates(t *testing.T) {
	results := SmithWaterman(rec("AGTA"), rec("AGTAAGTA"), Unit())
	require.Len(t, results, 2)
	assert.Equal(t, results[0].AlignedSeq1, results[1].AlignedSeq1)
	assert.Equal(t, results[0].AlignedSeq2, results[1].AlignedSeq2)
	assert.Equal(t, 0, results[0].Start2)
	assert.Equal(t, 4, results[1].Start2)
}

func TestSmithWatermanZeroScores(t *testing.T) {
	t.Run("no shared symbol", func(t *testing.T) {
		results := SmithWaterman(rec("AAAA"), rec("TTTT"), Unit())
		require.Len(t, results, 16, "every interior cell ties at zero")
		for _, a := range results {
			assert.Equal(t, 0, a.Score)
			assert.Empty(t, a.AlignedSeq1)
			assert.Empty(t, a.AlignedSeq2)
		}
	})

	t.Run("non-positive match", func(t *testing.T) {
		results := SmithWaterman(rec("ACGT"), rec("ACGT"), NewScoring(-1, 0, -1))
		require.NotEmpty(t, results)
		for _, a := range results {
			assert.Equal(t, 0, a.Score)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		results := SmithWaterman(rec(""), rec("ACGT"), Unit())
		require.Len(t, results, 1)
		assert.Equal(t, 0, results[0].Score)
		assert.Empty(t, results[0].AlignedSeq1)
		assert.Equal(t, 0, results[0].End1)
	})
}

func TestAlignmentProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	schemes := []Scoring{Unit(), DefaultDNA(), NewScoring(-2, 3, -3), NewScoring(-1, 0, -1)}

	for k := 0; k < 40; k++ {
		a := rec(randomBases(r, r.Intn(20)))
		b := rec(randomBases(r, r.Intn(20)))
		scoring := schemes[k%len(schemes)]

		global := NeedlemanWunsch(a, b, scoring)
		assert.Equal(t, global.Length(), len([]rune(global.AlignedSeq2)))
		g1, g2 := ungap(global)
		assert.Equal(t, a.Bases, g1)
		assert.Equal(t, b.Bases, g2)
		assert.Equal(t, global.Score, rescore(global, scoring))
		assert.Equal(t, GlobalScoreOnly(a, b, scoring), global.Score)

		locals := SmithWaterman(a, b, scoring)
		require.NotEmpty(t, locals)
		for _, l := range locals {
			assert.Equal(t, l.Length(), len([]rune(l.AlignedSeq2)))
			assert.GreaterOrEqual(t, l.Score, 0)
			sub1, err := a.Subsequence(l.Start1, l.End1)
			require.NoError(t, err)
			sub2, err := b.Subsequence(l.Start2, l.End2)
			require.NoError(t, err)
			l1, l2 := ungap(l)
			assert.Equal(t, sub1.Bases, l1)
			assert.Equal(t, sub2.Bases, l2)
			assert.Equal(t, l.Score, rescore(l, scoring))
			assert.Equal(t, LocalScoreOnly(a, b, scoring), l.Score)
		}
	}
}

func TestModeAligner(t *testing.T) {
	global, err := Global.Aligner(0)(rec("GATTACA"), rec("GCATGCU"), Unit())
	require.NoError(t, err)
	require.Len(t, global, 1)
	assert.Equal(t, "G-ATTACA", global[0].AlignedSeq1)

	local, err := Local.Aligner(0)(rec("ACGTTACG"), rec("ACG"), NewScoring(-2, 2, -1))
	require.NoError(t, err)
	assert.Len(t, local, 2)

	_, err = Local.Aligner(1)(rec("ACGTTACG"), rec("ACG"), NewScoring(-2, 2, -1))
	var tooMany *TooManyAlignmentsError
	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, 2, tooMany.Count)
}

func TestSmithWatermanLimit(t *testing.T) {
	a, b := rec(strings.Repeat("A", 30)), rec(strings.Repeat("T", 30))

	_, err := SmithWatermanLimit(a, b, Unit(), 899)
	var tooMany *TooManyAlignmentsError
	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, 900, tooMany.Count)
	assert.Equal(t, 899, tooMany.Limit)
	assert.EqualError(t, err, "900 co-optimal local alignments exceed the limit of 899")

	results, err := SmithWatermanLimit(a, b, Unit(), 900)
	require.NoError(t, err)
	assert.Equal(t, SmithWaterman(a, b, Unit()), results)

	results, err = SmithWatermanLimit(a, b, Unit(), 0)
	require.NoError(t, err)
	assert.Len(t, results, 900)
}

func TestGapSymbolInInput(t *testing.T) {
	t.Run("identical", func(t *testing.T) {
		for _, a := range []*Alignment{
			NeedlemanWunsch(rec("A-C"), rec("A-C"), Unit()),
			SmithWaterman(rec("A-C"), rec("A-C"), Unit())[0],
		} {
			assert.Equal(t, 3, a.Score)
			assert.Equal(t, 3, a.MatchCount())
			assert.Equal(t, 0, a.TotalGaps())
			assert.Equal(t, 1.0, a.Identity)
			assert.Equal(t, "3M", a.ToCIGAR())
			assert.Equal(t, "|||", a.MatchLine())
			assert.Equal(t, 3, a.End1)
			assert.Equal(t, 3, a.End2)
		}
	})

	t.Run("symbol against gap", func(t *testing.T) {
		a := NeedlemanWunsch(rec("A-C"), rec("AC"), Unit())
		assert.Equal(t, 1, a.Score)
		assert.Equal(t, "A-C", a.AlignedSeq1)
		assert.Equal(t, "A-C", a.AlignedSeq2)
		assert.Equal(t, []Op{OpMatch, OpDelete, OpMatch}, a.Ops())
		assert.Equal(t, "1M1D1M", a.ToCIGAR())
		assert.Equal(t, 2, a.MatchCount())
		assert.Equal(t, 0, a.GapsSeq1())
		assert.Equal(t, 1, a.GapsSeq2())
		assert.Equal(t, "| |", a.MatchLine())
		assert.Equal(t, 1, rescore(a, Unit()))
	})
}

func TestMatrixFormat(t *testing.T) {
	s1, s2 := []rune("AC"), []rune("A")
	H := BuildGlobalMatrix(s1, s2, Unit())
	out := H.Format(s1, s2)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "A")
	assert.Equal(t, "   ×  0  ← -1", lines[1])
	assert.Equal(t, "A  ↑ -1  ↖  1", lines[2])
	assert.Equal(t, "C  ↑ -2  ↑  0", lines[3])
}

func TestAlignmentIdentity(t *testing.T) {
	tests := []struct {
		name     string
		aligned1 string
		aligned2 string
		want     float64
	}{
		{"perfect match", "ATGC", "ATGC", 1.0},
		{"50% match", "ATGC", "ATTT", 0.5},
		{"no match", "AAAA", "TTTT", 0.0},
		{"with gaps", "AT-GC", "ATGGC", 0.8},
		{"empty", "", "", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAlignment(tt.aligned1, tt.aligned2, 0, Local)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, a.Identity, 0.0001)
		})
	}
}

func TestNewAlignmentLengthMismatch(t *testing.T) {
	_, err := NewAlignment("ATGC", "ATG", 0, Global)
	require.Error(t, err)
}

func TestAlignmentCIGAR(t *testing.T) {
	tests := []struct {
		name     string
		aligned1 string
		aligned2 string
		want     string
	}{
		{"all match", "ATGC", "ATGC", "4M"},
		{"with mismatch", "ATGC", "ATGA", "3M1X"},
		{"with gap seq1", "AT-GC", "ATGGC", "2M1I2M"},
		{"with gap seq2", "ATGGC", "AT-GC", "2M1D2M"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAlignment(tt.aligned1, tt.aligned2, 0, Local)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.ToCIGAR())
		})
	}
}

func TestGapOpenings(t *testing.T) {
	tests := []struct {
		name     string
		aligned1 string
		aligned2 string
		want     int
	}{
		{"no gaps", "ATGC", "ATGC", 0},
		{"one gap", "AT-GC", "ATGGC", 1},
		{"two gaps same seq", "AT--GC", "ATGGGC", 1},
		{"two gaps diff seq", "AT-GC-", "ATGG-C", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAlignment(tt.aligned1, tt.aligned2, 0, Local)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.GapOpenings())
		})
	}
}

func TestAlignmentCounts(t *testing.T) {
	a, err := NewAlignment("G-ATTACA", "GCA-TGCU", 0, Global)
	require.NoError(t, err)

	assert.Equal(t, 8, a.Length())
	assert.Equal(t, 4, a.MatchCount())
	assert.Equal(t, 2, a.MismatchCount())
	assert.Equal(t, 1, a.GapsSeq1())
	assert.Equal(t, 1, a.GapsSeq2())
	assert.Equal(t, 2, a.TotalGaps())
	assert.Equal(t, "| | |.|.", a.MatchLine())
	assert.Equal(t, 7, a.End1)
	assert.Equal(t, 7, a.End2)
}

func TestFormat(t *testing.T) {
	a, err := NewAlignment("AT-GC", "ATGGC", 3, Global)
	require.NoError(t, err)

	out := a.Format()
	assert.Contains(t, out, "Seq1: AT-GC\n      || ||\nSeq2: ATGGC")
	assert.Contains(t, out, "Score: 3")
	assert.Contains(t, out, "CIGAR: 2M1I2M")
}

func benchmarkPair() (*sequence.Record, *sequence.Record) {
	var s1, s2 strings.Builder
	for i := 0; i < 250; i++ {
		s1.WriteString("ACGT")
		s2.WriteString("AGCT")
	}
	return rec(s1.String()), rec(s2.String())
}

func BenchmarkSmithWaterman(b *testing.B) {
	seq1, seq2 := benchmarkPair()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = SmithWaterman(seq1, seq2, DefaultDNA())
	}
}

func BenchmarkNeedlemanWunsch(b *testing.B) {
	seq1, seq2 := benchmarkPair()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = NeedlemanWunsch(seq1, seq2, DefaultDNA())
	}
}

func BenchmarkLocalScoreOnly(b *testing.B) {
	seq1, seq2 := benchmarkPair()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = LocalScoreOnly(seq1, seq2, DefaultDNA())
	}
}
