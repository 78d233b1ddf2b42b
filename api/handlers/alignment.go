package handlers

import (
	"errors"
	"net/http"
	"runtime"

	"github.com/aria-lang/seqalign-go/internal/alignment"
	"github.com/aria-lang/seqalign-go/internal/input"
	"github.com/aria-lang/seqalign-go/internal/pairwise"
	"github.com/aria-lang/seqalign-go/internal/report"
	"github.com/aria-lang/seqalign-go/internal/sequence"
	"github.com/aria-lang/seqalign-go/internal/stats"
)

// ScoringRequest carries explicit scoring parameters.
type ScoringRequest struct {
	Gap      int `json:"gap"`
	Match    int `json:"match"`
	Mismatch int `json:"mismatch"`
}

func (s *ScoringRequest) scoring() alignment.Scoring {
	if s == nil {
		return alignment.DefaultDNA()
	}
	return alignment.NewScoring(s.Gap, s.Match, s.Mismatch)
}

// AlignmentRequest represents a two-sequence alignment request.
// Scoring defaults to the DNA parameters when omitted.
type AlignmentRequest struct {
	Sequence1 string          `json:"sequence1"`
	Sequence2 string          `json:"sequence2"`
	Mode      string          `json:"mode,omitempty"`
	Scoring   *ScoringRequest `json:"scoring,omitempty"`
}

func (req *AlignmentRequest) records() (*sequence.Record, *sequence.Record) {
	return sequence.New("sequence1", "", req.Sequence1), sequence.New("sequence2", "", req.Sequence2)
}

// LocalAlignmentResponse lists every co-optimal local alignment.
type LocalAlignmentResponse struct {
	Score      int                    `json:"score"`
	Count      int                    `json:"count"`
	Alignments []report.AlignmentJSON `json:"alignments"`
}

// ScoreResponse represents the response for alignment score.
type ScoreResponse struct {
	Mode  string `json:"mode"`
	Score int    `json:"score"`
}

// RecordRequest is one named sequence of a pairs request.
type RecordRequest struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Sequence    string `json:"sequence"`
}

// PairsRequest aligns every pair of a record set. Either Input (the
// line-oriented input file format, scores included) or Records is given.
type PairsRequest struct {
	Mode    string          `json:"mode"`
	Input   string          `json:"input,omitempty"`
	Scoring *ScoringRequest `json:"scoring,omitempty"`
	Records []RecordRequest `json:"records,omitempty"`
}

// PairsResponse holds the results of a pairs request in pair order.
type PairsResponse struct {
	Mode  string            `json:"mode"`
	Pairs []report.PairJSON `json:"pairs"`
}

// Limits bounds the work and response size of one request. A zero field
// disables that check.
type Limits struct {
	// MaxCells bounds the summed matrix size of one request.
	MaxCells int
	// MaxAlignments bounds the alignments returned by one request. Local
	// alignment reports every co-optimal result, so a repetitive pair can
	// produce a number of alignments close to its cell count.
	MaxAlignments int
}

// Alignment serves the alignment endpoints.
type Alignment struct {
	Limits
}

// NewAlignment creates alignment handlers with the given limits.
func NewAlignment(limits Limits) *Alignment {
	return &Alignment{Limits: limits}
}

func (h *Alignment) checkCells(cells int) error {
	if h.MaxCells > 0 && cells > h.MaxCells {
		return &TooLargeError{Cells: cells, Limit: h.MaxCells}
	}
	return nil
}

func (h *Alignment) decodePair(w http.ResponseWriter, r *http.Request) (*AlignmentRequest, bool) {
	var req AlignmentRequest
	if !decode(w, r, &req) {
		return nil, false
	}
	a, b := req.records()
	if err := h.checkCells((a.Len() + 1) * (b.Len() + 1)); err != nil {
		writeFailure(w, err)
		return nil, false
	}
	return &req, true
}

// Global handles global alignment requests.
func (h *Alignment) Global(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodePair(w, r)
	if !ok {
		return
	}

	a, b := req.records()
	aln := alignment.NeedlemanWunsch(a, b, req.Scoring.scoring())
	writeJSON(w, http.StatusOK, report.ToAlignmentJSON(aln))
}

// Local handles local alignment requests.
func (h *Alignment) Local(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodePair(w, r)
	if !ok {
		return
	}

	a, b := req.records()
	alns, err := alignment.SmithWatermanLimit(a, b, req.Scoring.scoring(), h.MaxAlignments)
	if err != nil {
		writeFailure(w, err)
		return
	}

	resp := LocalAlignmentResponse{
		Score:      alns[0].Score,
		Count:      len(alns),
		Alignments: make([]report.AlignmentJSON, 0, len(alns)),
	}
	for _, aln := range alns {
		resp.Alignments = append(resp.Alignments, report.ToAlignmentJSON(aln))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Score handles score-only requests. Mode defaults to global.
func (h *Alignment) Score(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodePair(w, r)
	if !ok {
		return
	}

	mode, err := parseMode(req.Mode)
	if err != nil {
		writeFailure(w, err)
		return
	}

	a, b := req.records()
	scoring := req.Scoring.scoring()
	var score int
	if mode == alignment.Local {
		score = alignment.LocalScoreOnly(a, b, scoring)
	} else {
		score = alignment.GlobalScoreOnly(a, b, scoring)
	}
	writeJSON(w, http.StatusOK, ScoreResponse{Mode: mode.String(), Score: score})
}

// Pairs handles all-pairs requests.
func (h *Alignment) Pairs(w http.ResponseWriter, r *http.Request) {
	var req PairsRequest
	if !decode(w, r, &req) {
		return
	}

	mode, err := parseMode(req.Mode)
	if err != nil {
		writeFailure(w, err)
		return
	}

	in, err := req.input()
	if err != nil {
		writeFailure(w, err)
		return
	}

	if len(in.Records) > 0 {
		set, err := stats.FromRecords(in.Records)
		if err != nil {
			writeFailure(w, err)
			return
		}
		if err := h.checkCells(set.MatrixCells); err != nil {
			writeFailure(w, err)
			return
		}
	}

	runner := pairwise.NewRunner(pairwise.Config{
		Mode:          mode,
		Scoring:       in.Scoring,
		Workers:       runtime.NumCPU(),
		MaxAlignments: h.MaxAlignments,
	})

	resp := PairsResponse{Mode: mode.String(), Pairs: []report.PairJSON{}}
	total := 0
	err = runner.Stream(r.Context(), in.Records, func(res pairwise.Result) error {
		total += len(res.Alignments)
		if mode == alignment.Local && h.MaxAlignments > 0 && total > h.MaxAlignments {
			return &alignment.TooManyAlignmentsError{Count: total, Limit: h.MaxAlignments}
		}
		resp.Pairs = append(resp.Pairs, report.ToPairJSON(res))
		return nil
	})
	var tooMany *alignment.TooManyAlignmentsError
	switch {
	case errors.As(err, &tooMany):
		writeFailure(w, err)
		return
	case err != nil:
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (req *PairsRequest) input() (*input.Input, error) {
	if req.Input != "" {
		return input.ParseString(req.Input)
	}
	in := &input.Input{Scoring: req.Scoring.scoring()}
	for _, rec := range req.Records {
		in.Records = append(in.Records, sequence.New(rec.ID, rec.Description, rec.Sequence))
	}
	return in, nil
}

func parseMode(name string) (alignment.Mode, error) {
	if name == "" {
		return alignment.Global, nil
	}
	return alignment.ParseMode(name)
}
