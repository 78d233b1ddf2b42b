// Package pairwise runs an aligner over every unordered pair of records.
//
// Pairs are independent, so they are spread over a fixed pool of worker
// goroutines. Results are still delivered in pair order: (0,1), (0,2), ...,
// (1,2), ... regardless of which worker finishes first.
package pairwise

import (
	"context"
	"fmt"
	"sync"

	"github.com/aria-lang/seqalign-go/internal/alignment"
	"github.com/aria-lang/seqalign-go/internal/sequence"
)

// Pair identifies two records by index, with I < J.
type Pair struct {
	I, J int
}

// Pairs enumerates every unordered pair of n records in (i, j) order.
func Pairs(n int) []Pair {
	if n < 2 {
		return nil
	}
	pairs := make([]Pair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, Pair{I: i, J: j})
		}
	}
	return pairs
}

// Result holds the alignments produced for one pair.
type Result struct {
	Pair
	A          *sequence.Record
	B          *sequence.Record
	Alignments []*alignment.Alignment
}

// Config controls a pairwise run.
type Config struct {
	Mode    alignment.Mode
	Scoring alignment.Scoring
	Workers int // number of worker goroutines (>=1)

	// MaxAlignments bounds the co-optimal local alignments of one pair; a
	// pair over the bound fails the run. Zero disables the bound.
	MaxAlignments int

	// Progress, if set, is called once per pair as results are delivered.
	Progress func()
}

// Runner aligns all pairs of a record set.
type Runner struct {
	cfg   Config
	align alignment.Aligner
}

// NewRunner creates a runner for the configured mode.
func NewRunner(cfg Config) *Runner {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Runner{
		cfg:   cfg,
		align: cfg.Mode.Aligner(cfg.MaxAlignments),
	}
}

// Run aligns every pair and returns the results in pair order.
func (r *Runner) Run(ctx context.Context, records []*sequence.Record) ([]Result, error) {
	results := make([]Result, 0, len(records)*(len(records)-1)/2+1)
	err := r.Stream(ctx, records, func(res Result) error {
		results = append(results, res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Stream aligns every pair and calls visit with each result in pair order.
// It stops at the first error from the aligner or from visit, or when ctx
// is cancelled.
func (r *Runner) Stream(ctx context.Context, records []*sequence.Record, visit func(Result) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pairs := Pairs(len(records))
	if len(pairs) == 0 {
		return nil
	}

	workers := r.cfg.Workers
	if workers > len(pairs) {
		workers = len(pairs)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type job struct {
		idx  int
		pair Pair
	}
	type done struct {
		idx int
		res Result
		err error
	}
	jobs := make(chan job, workers*2)
	results := make(chan done, workers*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				a, b := records[j.pair.I], records[j.pair.J]
				alns, err := r.align(a, b, r.cfg.Scoring)
				res := Result{
					Pair:       j.pair,
					A:          a,
					B:          b,
					Alignments: alns,
				}
				select {
				case results <- done{idx: j.idx, res: res, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Feed work
	go func() {
		defer close(jobs)
		for i, p := range pairs {
			select {
			case jobs <- job{idx: i, pair: p}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Reorder and deliver
	var (
		verr    error
		next    int
		pending = make(map[int]Result, workers*2)
	)
	for d := range results {
		if verr != nil {
			continue
		}
		if d.err != nil {
			verr = fmt.Errorf("pair (%d, %d): %w", d.res.I, d.res.J, d.err)
			cancel()
			continue
		}
		pending[d.idx] = d.res
		for {
			res, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++

			if r.cfg.Progress != nil {
				r.cfg.Progress()
			}
			if err := visit(res); err != nil {
				verr = err
				cancel()
				break
			}
		}
	}

	if verr != nil {
		return verr
	}
	if next < len(pairs) {
		return ctx.Err()
	}
	return nil
}
