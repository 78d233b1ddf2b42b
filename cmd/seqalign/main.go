// Command seqalign aligns every pair of sequences in an input file.
//
// Usage:
//
//	seqalign [options] <global|local> <input_file>
//	seqalign version
//
// The input file holds the gap, match and mismatch scores on the first three
// lines, followed by one identifier / description / sequence triple per
// record. With -fasta the file is FASTA instead and the scores come from
// -gap, -match and -mismatch.
//
// Options:
//
//	-format      output format: text or jsonl (default: text)
//	-workers     number of worker goroutines (default: number of CPUs)
//	-progress    show a progress bar on stderr
//	-summary     print record and score statistics on stderr
//	-matrix      dump the score matrix of every pair (text format)
//	-cpuprofile  write a CPU profile to this directory
//	-memprofile  write a memory profile to this directory
//	-v           log timing and matrix sizes on stderr
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/profile"

	"github.com/aria-lang/seqalign-go/internal/alignment"
	"github.com/aria-lang/seqalign-go/internal/input"
	"github.com/aria-lang/seqalign-go/internal/pairwise"
	"github.com/aria-lang/seqalign-go/internal/progress"
	"github.com/aria-lang/seqalign-go/internal/report"
	"github.com/aria-lang/seqalign-go/internal/stats"
	"github.com/aria-lang/seqalign-go/pkg/seqalign"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	format     string
	workers    int
	progress   bool
	summary    bool
	matrix     bool
	fasta      bool
	gap        int
	match      int
	mismatch   int
	cpuProfile string
	memProfile string
	verbose    bool
}

func newFlagSet(stderr io.Writer, opts *options) *flag.FlagSet {
	def := alignment.DefaultDNA()

	fs := flag.NewFlagSet("seqalign", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.format, "format", "text", "output format: "+strings.Join(report.Formats, " or "))
	fs.IntVar(&opts.workers, "workers", runtime.NumCPU(), "number of worker goroutines")
	fs.BoolVar(&opts.progress, "progress", false, "show a progress bar on stderr")
	fs.BoolVar(&opts.summary, "summary", false, "print record and score statistics on stderr")
	fs.BoolVar(&opts.matrix, "matrix", false, "dump the score matrix of every pair (text format)")
	fs.BoolVar(&opts.fasta, "fasta", false, "read FASTA input; scores come from -gap, -match and -mismatch")
	fs.IntVar(&opts.gap, "gap", def.Gap, "gap score (with -fasta)")
	fs.IntVar(&opts.match, "match", def.Match, "match score (with -fasta)")
	fs.IntVar(&opts.mismatch, "mismatch", def.Mismatch, "mismatch score (with -fasta)")
	fs.StringVar(&opts.cpuProfile, "cpuprofile", "", "write a CPU profile to this directory")
	fs.StringVar(&opts.memProfile, "memprofile", "", "write a memory profile to this directory")
	fs.BoolVar(&opts.verbose, "v", false, "log timing and matrix sizes on stderr")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `seqalign - pairwise sequence alignment

Usage:
  seqalign [options] <global|local> <input_file>
  seqalign version

Algorithms:
  global    Needleman-Wunsch
  local     Smith-Waterman, every co-optimal alignment

Options:
`)
		fs.PrintDefaults()
	}
	return fs
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := newFlagSet(stderr, &opts)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if fs.NArg() == 1 && fs.Arg(0) == "version" {
		fmt.Fprintln(stdout, seqalign.Info())
		return 0
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 1
	}

	mode, err := alignment.ParseMode(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, "Invalid algorithm!")
		return 0
	}

	logger := log.New(io.Discard, "", 0)
	if opts.verbose {
		logger = log.New(stderr, "seqalign: ", log.LstdFlags)
	}

	// go tool pprof -http=:8080 cpu.pprof
	if opts.cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(opts.cpuProfile), profile.Quiet).Stop()
	} else if opts.memProfile != "" {
		defer profile.Start(profile.MemProfile, profile.ProfilePath(opts.memProfile), profile.Quiet).Stop()
	}

	in, err := load(fs.Arg(1), &opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	npairs := len(pairwise.Pairs(len(in.Records)))
	set, err := stats.FromRecords(in.Records)
	if err == nil {
		logger.Printf("%d records (%s symbols), %d pairs, %s matrix cells, %s mode, scoring %s",
			set.Count, humanize.Comma(int64(set.TotalSymbols)), set.Pairs,
			humanize.Comma(int64(set.MatrixCells)), mode, in.Scoring)
	}

	out := bufio.NewWriter(stdout)
	w, err := report.New(opts.format, out, report.Options{
		Matrix:  opts.matrix,
		Mode:    mode,
		Scoring: in.Scoring,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	var bar *progress.Bar
	if opts.progress {
		bar = progress.New(stderr, npairs, mode.String())
	}

	runner := pairwise.NewRunner(pairwise.Config{
		Mode:     mode,
		Scoring:  in.Scoring,
		Workers:  opts.workers,
		Progress: bar.Increment,
	})

	var results []pairwise.Result
	start := time.Now()
	err = runner.Stream(ctx, in.Records, func(res pairwise.Result) error {
		if opts.summary {
			results = append(results, res)
		}
		return w.Write(res)
	})
	bar.Wait()
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		if report.IsBrokenPipe(err) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	logger.Printf("aligned %d pairs in %s", npairs, time.Since(start))

	if opts.summary {
		printSummary(stderr, set, results)
	}
	return 0
}

func load(path string, opts *options) (*input.Input, error) {
	if !opts.fasta {
		return input.Load(path)
	}
	records, err := input.LoadFASTA(path)
	if err != nil {
		return nil, err
	}
	return &input.Input{
		Scoring: alignment.NewScoring(opts.gap, opts.match, opts.mismatch),
		Records: records,
	}, nil
}

func printSummary(w io.Writer, set *stats.RecordSetStats, results []pairwise.Result) {
	if set == nil {
		fmt.Fprintln(w, "no records")
		return
	}
	fmt.Fprintln(w, set)
	if len(results) == 0 {
		return
	}

	res, err := stats.FromResults(results)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(w, res)

	if hist, err := stats.NewScoreHistogram(results, 10); err == nil {
		fmt.Fprintln(w, hist)
	}
}
