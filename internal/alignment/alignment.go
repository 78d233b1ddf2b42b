package alignment

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// GapSymbol is written opposite a symbol aligned against nothing.
//
// Input sequences may contain GapSymbol as an ordinary symbol: alignments
// produced by the aligners classify their columns from the traceback, not
// from the aligned strings. Only alignments built from strings with
// NewAlignment or NewAlignmentWithPositions read GapSymbol as a gap.
const GapSymbol = '-'

// Op classifies one alignment column. The values are the CIGAR letters.
type Op byte

const (
	// OpMatch aligns two equal symbols
	OpMatch Op = 'M'
	// OpMismatch aligns two different symbols
	OpMismatch Op = 'X'
	// OpInsert places a symbol of sequence 2 against a gap
	OpInsert Op = 'I'
	// OpDelete places a symbol of sequence 1 against a gap
	OpDelete Op = 'D'
)

// Alignment represents one optimal alignment between two sequences.
//
// Start and End fields are 0-based, half-open symbol offsets of the aligned
// region in each input; a global alignment always spans both inputs.
type Alignment struct {
	AlignedSeq1 string
	AlignedSeq2 string
	Score       int
	Start1      int
	End1        int
	Start2      int
	End2        int
	Mode        Mode
	Identity    float64

	ops []Op
}

// NewAlignment creates a new alignment result covering both aligned strings.
func NewAlignment(aligned1, aligned2 string, score int, mode Mode) (*Alignment, error) {
	return NewAlignmentWithPositions(aligned1, aligned2, score,
		0, countSymbols(aligned1), 0, countSymbols(aligned2), mode)
}

// NewAlignmentWithPositions creates an alignment with position information.
// Columns holding GapSymbol are read as gaps.
func NewAlignmentWithPositions(aligned1, aligned2 string, score int,
	start1, end1, start2, end2 int, mode Mode) (*Alignment, error) {
	r1, r2 := []rune(aligned1), []rune(aligned2)
	if len(r1) != len(r2) {
		return nil, fmt.Errorf("aligned sequences must have equal length")
	}

	ops := make([]Op, len(r1))
	for i := range r1 {
		switch {
		case r1[i] == GapSymbol:
			ops[i] = OpInsert
		case r2[i] == GapSymbol:
			ops[i] = OpDelete
		case r1[i] == r2[i]:
			ops[i] = OpMatch
		default:
			ops[i] = OpMismatch
		}
	}

	return newAlignment(r1, r2, ops, score, start1, end1, start2, end2, mode), nil
}

// newAlignment builds an alignment whose column classes are already known.
func newAlignment(r1, r2 []rune, ops []Op, score int,
	start1, end1, start2, end2 int, mode Mode) *Alignment {
	if len(r1) != len(ops) || len(r2) != len(ops) {
		panic(&InvariantError{Row: end1, Col: end2, Reason: "aligned rows and columns differ in length"})
	}

	a := &Alignment{
		AlignedSeq1: string(r1),
		AlignedSeq2: string(r2),
		Score:       score,
		Start1:      start1,
		End1:        end1,
		Start2:      start2,
		End2:        end2,
		Mode:        mode,
		ops:         ops,
	}
	a.Identity = a.calculateIdentity()
	return a
}

// countSymbols returns the number of non-gap symbols in an aligned string.
func countSymbols(aligned string) int {
	return utf8.RuneCountInString(aligned) - strings.Count(aligned, string(GapSymbol))
}

// Ops returns a copy of the column classes.
func (a *Alignment) Ops() []Op {
	return append([]Op(nil), a.ops...)
}

func (a *Alignment) count(op Op) int {
	n := 0
	for _, o := range a.ops {
		if o == op {
			n++
		}
	}
	return n
}

// calculateIdentity calculates the sequence identity.
func (a *Alignment) calculateIdentity() float64 {
	length := a.Length()
	if length == 0 {
		return 0.0
	}
	return float64(a.MatchCount()) / float64(length)
}

// Length returns the number of alignment columns.
func (a *Alignment) Length() int {
	return len(a.ops)
}

// MatchCount returns the number of matches.
func (a *Alignment) MatchCount() int {
	return a.count(OpMatch)
}

// MismatchCount returns the number of mismatches.
func (a *Alignment) MismatchCount() int {
	return a.count(OpMismatch)
}

// GapsSeq1 returns the number of gaps in sequence 1.
func (a *Alignment) GapsSeq1() int {
	return a.count(OpInsert)
}

// GapsSeq2 returns the number of gaps in sequence 2.
func (a *Alignment) GapsSeq2() int {
	return a.count(OpDelete)
}

// TotalGaps returns the total number of gaps.
func (a *Alignment) TotalGaps() int {
	return a.GapsSeq1() + a.GapsSeq2()
}

// GapOpenings counts the number of gap runs across both rows.
func (a *Alignment) GapOpenings() int {
	openings := 0
	prev := Op(0)
	for _, op := range a.ops {
		if (op == OpInsert || op == OpDelete) && op != prev {
			openings++
		}
		prev = op
	}
	return openings
}

// ToCIGAR generates a CIGAR string representation.
func (a *Alignment) ToCIGAR() string {
	var cigar strings.Builder
	currentOp := Op(0)
	count := 0

	for _, op := range a.ops {
		if op == currentOp {
			count++
			continue
		}
		if count > 0 {
			cigar.WriteString(fmt.Sprintf("%d%c", count, currentOp))
		}
		currentOp = op
		count = 1
	}

	if count > 0 {
		cigar.WriteString(fmt.Sprintf("%d%c", count, currentOp))
	}

	return cigar.String()
}

// MatchLine returns the middle row of the three-line view: '|' for a match,
// '.' for a mismatch and ' ' opposite a gap.
func (a *Alignment) MatchLine() string {
	var line strings.Builder
	for _, op := range a.ops {
		switch op {
		case OpMatch:
			line.WriteByte('|')
		case OpMismatch:
			line.WriteByte('.')
		default:
			line.WriteByte(' ')
		}
	}
	return line.String()
}

// Format returns a formatted string representation of the alignment.
func (a *Alignment) Format() string {
	return fmt.Sprintf("Seq1: %s\n      %s\nSeq2: %s\nScore: %d\nIdentity: %.1f%%\nCIGAR: %s",
		a.AlignedSeq1, a.MatchLine(), a.AlignedSeq2,
		a.Score, a.Identity*100, a.ToCIGAR())
}

func (a *Alignment) String() string {
	return fmt.Sprintf("Alignment { score: %d, identity: %.1f%%, length: %d }",
		a.Score, a.Identity*100, a.Length())
}
