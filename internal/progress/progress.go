// Package progress draws a terminal progress bar for all-pairs runs.
package progress

import (
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Bar counts completed pairs. A nil *Bar, or one created with a zero total,
// accepts every call and draws nothing.
type Bar struct {
	pbs *mpb.Progress
	bar *mpb.Bar
}

// New starts a bar of total steps on out.
func New(out io.Writer, total int, label string) *Bar {
	if total <= 0 {
		return &Bar{}
	}

	pbs := mpb.New(mpb.WithWidth(40), mpb.WithOutput(out))
	bar := pbs.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(label, decor.WC{W: len(label) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
			decor.AverageETA(decor.ET_STYLE_GO),
			decor.OnComplete(decor.Name(""), ". done"),
		),
	)

	return &Bar{pbs: pbs, bar: bar}
}

// Increment records one finished step.
func (b *Bar) Increment() {
	if b == nil || b.bar == nil {
		return
	}
	b.bar.Increment()
}

// Current returns the number of finished steps.
func (b *Bar) Current() int64 {
	if b == nil || b.bar == nil {
		return 0
	}
	return b.bar.Current()
}

// Wait stops the bar, aborting it if the run ended early, and waits for the
// final frame to be drawn.
func (b *Bar) Wait() {
	if b == nil || b.pbs == nil {
		return
	}
	if !b.bar.Completed() {
		b.bar.Abort(false)
	}
	b.pbs.Wait()
}
