// Package report writes pairwise alignment results.
//
// Two formats are available: a human-readable text layout and JSON Lines
// with one object per sequence pair. The JSON shapes are shared with the
// HTTP API.
package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"syscall"

	"github.com/aria-lang/seqalign-go/internal/alignment"
	"github.com/aria-lang/seqalign-go/internal/pairwise"
)

// Writer consumes pairwise results one at a time.
type Writer interface {
	Write(res pairwise.Result) error
	Flush() error
}

// Options configure the writers built by New.
type Options struct {
	// Matrix also dumps the score matrix of every pair (text format only).
	Matrix  bool
	Mode    alignment.Mode
	Scoring alignment.Scoring
}

// Formats lists the accepted -format values.
var Formats = []string{"text", "jsonl"}

// New returns the writer registered for format.
func New(format string, w io.Writer, opts Options) (Writer, error) {
	switch format {
	case "text":
		return NewTextWriter(w, opts), nil
	case "jsonl":
		return NewJSONLWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (valid: %v)", format, Formats)
	}
}

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Useful when downstream consumers (like `head`) close early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

func newBuffered(w io.Writer) *bufio.Writer {
	if bw, ok := w.(*bufio.Writer); ok {
		return bw
	}
	return bufio.NewWriter(w)
}
