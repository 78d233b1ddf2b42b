package report

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/aria-lang/seqalign-go/internal/alignment"
	"github.com/aria-lang/seqalign-go/internal/pairwise"
	"github.com/aria-lang/seqalign-go/internal/sequence"
)

// RecordJSON identifies one side of a pair.
type RecordJSON struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// AlignmentJSON is the wire form of one alignment.
type AlignmentJSON struct {
	AlignedSeq1 string  `json:"aligned_seq1"`
	AlignedSeq2 string  `json:"aligned_seq2"`
	Score       int     `json:"score"`
	Start1      int     `json:"start1"`
	End1        int     `json:"end1"`
	Start2      int     `json:"start2"`
	End2        int     `json:"end2"`
	Identity    float64 `json:"identity"`
	CIGAR       string  `json:"cigar"`
	Matches     int     `json:"matches"`
	Mismatches  int     `json:"mismatches"`
	Gaps        int     `json:"gaps"`
}

// PairJSON is the wire form of one pair's results.
type PairJSON struct {
	I          int             `json:"i"`
	J          int             `json:"j"`
	A          RecordJSON      `json:"a"`
	B          RecordJSON      `json:"b"`
	Mode       string          `json:"mode"`
	Score      int             `json:"score"`
	Alignments []AlignmentJSON `json:"alignments"`
}

// ToAlignmentJSON converts an alignment to its wire form.
func ToAlignmentJSON(a *alignment.Alignment) AlignmentJSON {
	return AlignmentJSON{
		AlignedSeq1: a.AlignedSeq1,
		AlignedSeq2: a.AlignedSeq2,
		Score:       a.Score,
		Start1:      a.Start1,
		End1:        a.End1,
		Start2:      a.Start2,
		End2:        a.End2,
		Identity:    a.Identity,
		CIGAR:       a.ToCIGAR(),
		Matches:     a.MatchCount(),
		Mismatches:  a.MismatchCount(),
		Gaps:        a.TotalGaps(),
	}
}

// ToPairJSON converts a pairwise result to its wire form.
func ToPairJSON(res pairwise.Result) PairJSON {
	p := PairJSON{
		I:          res.I,
		J:          res.J,
		A:          toRecordJSON(res.A),
		B:          toRecordJSON(res.B),
		Alignments: make([]AlignmentJSON, 0, len(res.Alignments)),
	}
	for _, a := range res.Alignments {
		p.Alignments = append(p.Alignments, ToAlignmentJSON(a))
	}
	if len(res.Alignments) > 0 {
		p.Mode = res.Alignments[0].Mode.String()
		p.Score = res.Alignments[0].Score
	}
	return p
}

func toRecordJSON(r *sequence.Record) RecordJSON {
	return RecordJSON{ID: r.ID, Description: r.Description}
}

// JSONLWriter streams each pair as one JSON line.
type JSONLWriter struct {
	out *bufio.Writer
	enc *json.Encoder
}

// NewJSONLWriter creates a JSON Lines writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	out := newBuffered(w)
	return &JSONLWriter{out: out, enc: json.NewEncoder(out)}
}

// Write encodes one pair.
func (jw *JSONLWriter) Write(res pairwise.Result) error {
	return jw.enc.Encode(ToPairJSON(res))
}

// Flush flushes buffered output.
func (jw *JSONLWriter) Flush() error {
	return jw.out.Flush()
}
