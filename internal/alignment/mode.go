package alignment

import "github.com/aria-lang/seqalign-go/internal/sequence"

// Mode selects the alignment algorithm.
type Mode int

const (
	// Global represents Needleman-Wunsch global alignment
	Global Mode = iota
	// Local represents Smith-Waterman local alignment
	Local
)

func (m Mode) String() string {
	switch m {
	case Global:
		return "global"
	case Local:
		return "local"
	default:
		return "unknown"
	}
}

// ParseMode maps the literal selector "global" or "local" to a Mode.
// Anything else, including different casing, is an UnsupportedAlgorithmError.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "global":
		return Global, nil
	case "local":
		return Local, nil
	default:
		return 0, &UnsupportedAlgorithmError{Name: name}
	}
}

// Aligner aligns one sequence pair and returns its optimal alignment(s).
type Aligner func(a, b *sequence.Record, scoring Scoring) ([]*Alignment, error)

// Aligner returns the alignment function for the mode. Global alignments
// are wrapped in a single-element slice so both modes share one signature.
// maxAlignments bounds the number of co-optimal local results as in
// SmithWatermanLimit; zero disables the bound.
func (m Mode) Aligner(maxAlignments int) Aligner {
	if m == Local {
		return func(a, b *sequence.Record, scoring Scoring) ([]*Alignment, error) {
			return SmithWatermanLimit(a, b, scoring, maxAlignments)
		}
	}
	return func(a, b *sequence.Record, scoring Scoring) ([]*Alignment, error) {
		return []*Alignment{NeedlemanWunsch(a, b, scoring)}, nil
	}
}
