package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/aria-lang/seqalign-go/internal/alignment"
	"github.com/aria-lang/seqalign-go/internal/pairwise"
	"github.com/aria-lang/seqalign-go/internal/sequence"
)

// TextWriter renders each pair as a header followed by its alignments:
//
//	# seq1 vs seq2 (global)
//	score   0
//	seq1    G-ATTACA
//	        | | |.|.
//	seq2    GCA-TGCU
//	cigar   1M1I1M1D1M1X1M1X
type TextWriter struct {
	out  *bufio.Writer
	opts Options
}

// NewTextWriter creates a text writer.
func NewTextWriter(w io.Writer, opts Options) *TextWriter {
	return &TextWriter{out: newBuffered(w), opts: opts}
}

// Write renders one pair.
func (tw *TextWriter) Write(res pairwise.Result) error {
	mode := tw.opts.Mode
	if len(res.Alignments) > 0 {
		mode = res.Alignments[0].Mode
	}

	fmt.Fprintf(tw.out, "# %s vs %s (%s)\n", describe(res.A), describe(res.B), mode)

	labelA, labelB := res.A.Label(), res.B.Label()
	width := len(labelA)
	if len(labelB) > width {
		width = len(labelB)
	}
	if width < len("score") {
		width = len("score")
	}

	for k, a := range res.Alignments {
		if len(res.Alignments) > 1 {
			fmt.Fprintf(tw.out, "## alignment %d of %d\n", k+1, len(res.Alignments))
		}
		fmt.Fprintf(tw.out, "%-*s   %d\n", width, "score", a.Score)
		fmt.Fprintf(tw.out, "%-*s   %s\n", width, labelA, a.AlignedSeq1)
		fmt.Fprintf(tw.out, "%-*s   %s\n", width, "", a.MatchLine())
		fmt.Fprintf(tw.out, "%-*s   %s\n", width, labelB, a.AlignedSeq2)
		if mode == alignment.Local {
			fmt.Fprintf(tw.out, "%-*s   [%d, %d) x [%d, %d)\n", width, "region", a.Start1, a.End1, a.Start2, a.End2)
		}
		fmt.Fprintf(tw.out, "%-*s   %s\n", width, "cigar", a.ToCIGAR())
	}

	if tw.opts.Matrix {
		s1, s2 := res.A.Symbols(), res.B.Symbols()
		var H *alignment.Matrix
		if mode == alignment.Local {
			H, _ = alignment.BuildLocalMatrix(s1, s2, tw.opts.Scoring)
		} else {
			H = alignment.BuildGlobalMatrix(s1, s2, tw.opts.Scoring)
		}
		fmt.Fprintln(tw.out, "## matrix")
		fmt.Fprint(tw.out, H.Format(s1, s2))
	}

	_, err := fmt.Fprintln(tw.out)
	return err
}

// Flush flushes buffered output.
func (tw *TextWriter) Flush() error {
	return tw.out.Flush()
}

func describe(r *sequence.Record) string {
	if r.Description == "" {
		return r.Label()
	}
	return fmt.Sprintf("%s (%s)", r.Label(), r.Description)
}
