// Package seqalign provides a high-level API for pairwise sequence alignment.
//
// This package exposes the global (Needleman-Wunsch) and local
// (Smith-Waterman) aligners together with the input loader and the
// all-pairs runner.
//
// Example usage:
//
//	in, err := seqalign.LoadInput("sequences.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := seqalign.AlignAll(ctx, "local", in, runtime.NumCPU())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, res := range results {
//	    fmt.Println(res.Alignments[0].Format())
//	}
package seqalign

import (
	"context"
	"fmt"

	"github.com/aria-lang/seqalign-go/internal/alignment"
	"github.com/aria-lang/seqalign-go/internal/input"
	"github.com/aria-lang/seqalign-go/internal/pairwise"
	"github.com/aria-lang/seqalign-go/internal/sequence"
	"github.com/aria-lang/seqalign-go/internal/stats"
)

// Re-export types for convenience
type (
	Record                    = sequence.Record
	Alignment                 = alignment.Alignment
	Scoring                   = alignment.Scoring
	Mode                      = alignment.Mode
	Input                     = input.Input
	Pair                      = pairwise.Pair
	Result                    = pairwise.Result
	RecordSetStats            = stats.RecordSetStats
	ResultStats               = stats.ResultStats
	UnsupportedAlgorithmError = alignment.UnsupportedAlgorithmError
	MalformedInputError       = input.MalformedInputError
)

// Constants
const (
	Global = alignment.Global
	Local  = alignment.Local
)

// NewRecord creates a named sequence record.
func NewRecord(id, description, bases string) *Record {
	return sequence.New(id, description, bases)
}

// NewScoring creates scoring parameters in input-file order.
func NewScoring(gap, match, mismatch int) Scoring {
	return alignment.NewScoring(gap, match, mismatch)
}

// DefaultScoring returns the default DNA scoring parameters.
func DefaultScoring() Scoring {
	return alignment.DefaultDNA()
}

// ParseMode maps "global" or "local" to a Mode.
func ParseMode(name string) (Mode, error) {
	return alignment.ParseMode(name)
}

// AlignGlobal performs global alignment between two records.
func AlignGlobal(a, b *Record, scoring Scoring) *Alignment {
	return alignment.NeedlemanWunsch(a, b, scoring)
}

// AlignLocal returns every co-optimal local alignment between two records.
func AlignLocal(a, b *Record, scoring Scoring) []*Alignment {
	return alignment.SmithWaterman(a, b, scoring)
}

// Score returns the optimal score for the mode without building alignments.
func Score(mode Mode, a, b *Record, scoring Scoring) int {
	if mode == Local {
		return alignment.LocalScoreOnly(a, b, scoring)
	}
	return alignment.GlobalScoreOnly(a, b, scoring)
}

// LoadInput reads scores and records from an input file.
func LoadInput(filename string) (*Input, error) {
	return input.Load(filename)
}

// AlignAll aligns every unordered pair of the input's records using the
// algorithm named by mode ("global" or "local").
func AlignAll(ctx context.Context, mode string, in *Input, workers int) ([]Result, error) {
	m, err := alignment.ParseMode(mode)
	if err != nil {
		return nil, err
	}

	runner := pairwise.NewRunner(pairwise.Config{
		Mode:    m,
		Scoring: in.Scoring,
		Workers: workers,
	})
	return runner.Run(ctx, in.Records)
}

// Summarize calculates record-set and result statistics.
func Summarize(in *Input, results []Result) (*RecordSetStats, *ResultStats, error) {
	recStats, err := stats.FromRecords(in.Records)
	if err != nil {
		return nil, nil, err
	}
	if len(results) == 0 {
		return recStats, nil, nil
	}
	resStats, err := stats.FromResults(results)
	if err != nil {
		return nil, nil, err
	}
	return recStats, resStats, nil
}

// Version returns the seqalign version.
func Version() string {
	return "1.0.0"
}

// Info returns information about seqalign.
func Info() string {
	return fmt.Sprintf(`seqalign v%s - Pairwise Sequence Alignment

Features:
  - Needleman-Wunsch global alignment
  - Smith-Waterman local alignment with every co-optimal result
  - Linear-space score-only variants
  - All-pairs runs over a worker pool
  - Text and JSON Lines output, score matrix dumps
`, Version())
}
