package handlers

import (
	"net/http"

	"github.com/aria-lang/seqalign-go/internal/alignment"
	"github.com/aria-lang/seqalign-go/internal/input"
	"github.com/aria-lang/seqalign-go/internal/sequence"
	"github.com/aria-lang/seqalign-go/internal/stats"
)

// ParseRequest carries an input document. Format is "input" (default) or
// "fasta".
type ParseRequest struct {
	Format string `json:"format,omitempty"`
	Data   string `json:"data"`
}

// RecordResponse describes one parsed record.
type RecordResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Sequence    string `json:"sequence"`
	Length      int    `json:"length"`
}

// SetStatsResponse mirrors stats.RecordSetStats.
type SetStatsResponse struct {
	Count        int     `json:"count"`
	TotalSymbols int     `json:"total_symbols"`
	MinLength    int     `json:"min_length"`
	MaxLength    int     `json:"max_length"`
	MeanLength   float64 `json:"mean_length"`
	MedianLength int     `json:"median_length"`
	N50          int     `json:"n50"`
	Pairs        int     `json:"pairs"`
	MatrixCells  int     `json:"matrix_cells"`
}

// ParseResponse represents a parsed input document.
type ParseResponse struct {
	Scoring *ScoringRequest   `json:"scoring,omitempty"`
	Records []RecordResponse  `json:"records"`
	Stats   *SetStatsResponse `json:"stats,omitempty"`
}

// ParseInputHandler validates an input document and summarizes its records.
func ParseInputHandler(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !decode(w, r, &req) {
		return
	}

	var (
		scoring *alignment.Scoring
		records []*sequence.Record
	)
	switch req.Format {
	case "", "input":
		in, err := input.ParseString(req.Data)
		if err != nil {
			writeFailure(w, err)
			return
		}
		scoring, records = &in.Scoring, in.Records
	case "fasta":
		recs, err := input.ParseFASTAString(req.Data)
		if err != nil {
			writeFailure(w, err)
			return
		}
		records = recs
	default:
		writeError(w, http.StatusBadRequest, "format must be input or fasta")
		return
	}

	resp := ParseResponse{Records: make([]RecordResponse, 0, len(records))}
	if scoring != nil {
		resp.Scoring = &ScoringRequest{Gap: scoring.Gap, Match: scoring.Match, Mismatch: scoring.Mismatch}
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, RecordResponse{
			ID:          rec.ID,
			Description: rec.Description,
			Sequence:    rec.Bases,
			Length:      rec.Len(),
		})
	}
	if len(records) > 0 {
		s, err := stats.FromRecords(records)
		if err != nil {
			writeFailure(w, err)
			return
		}
		resp.Stats = &SetStatsResponse{
			Count:        s.Count,
			TotalSymbols: s.TotalSymbols,
			MinLength:    s.MinLength,
			MaxLength:    s.MaxLength,
			MeanLength:   s.MeanLength,
			MedianLength: s.MedianLength,
			N50:          s.N50,
			Pairs:        s.Pairs,
			MatrixCells:  s.MatrixCells,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
