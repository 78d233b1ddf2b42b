// Package stats provides statistical summaries for a record set and for
// the alignments produced from it.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aria-lang/seqalign-go/internal/pairwise"
	"github.com/aria-lang/seqalign-go/internal/sequence"
)

// RecordSetStats represents aggregated length statistics for a record set.
type RecordSetStats struct {
	Count        int
	TotalSymbols int
	MinLength    int
	MaxLength    int
	MeanLength   float64
	MedianLength int
	N50          int
	Pairs        int
	MatrixCells  int
}

// FromRecords calculates statistics for a collection of records.
//
// MatrixCells is the total number of cells every all-pairs run over the
// set has to fill, (len(a)+1)*(len(b)+1) summed over the pairs.
func FromRecords(records []*sequence.Record) (*RecordSetStats, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("record list cannot be empty")
	}

	count := len(records)
	lengths := make([]int, count)
	totalSymbols := 0

	for i, rec := range records {
		lengths[i] = rec.Len()
		totalSymbols += lengths[i]
	}

	sorted := make([]int, count)
	copy(sorted, lengths)
	sort.Ints(sorted)

	mid := count / 2
	var medianLen int
	if count%2 == 0 {
		medianLen = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		medianLen = sorted[mid]
	}

	// N50: length where 50% of symbols are in records at least that long
	halfTotal := totalSymbols / 2
	runningSum := 0
	n50 := sorted[count-1]
	for k := count - 1; k >= 0; k-- {
		runningSum += sorted[k]
		if runningSum >= halfTotal {
			n50 = sorted[k]
			break
		}
	}

	cells := 0
	for _, p := range pairwise.Pairs(count) {
		cells += (lengths[p.I] + 1) * (lengths[p.J] + 1)
	}

	return &RecordSetStats{
		Count:        count,
		TotalSymbols: totalSymbols,
		MinLength:    sorted[0],
		MaxLength:    sorted[count-1],
		MeanLength:   float64(totalSymbols) / float64(count),
		MedianLength: medianLen,
		N50:          n50,
		Pairs:        count * (count - 1) / 2,
		MatrixCells:  cells,
	}, nil
}

func (s *RecordSetStats) String() string {
	return fmt.Sprintf(`RecordSetStats {
  count: %d
  total symbols: %d
  length range: %d - %d
  mean length: %.1f
  median length: %d
  N50: %d
  pairs: %d
  matrix cells: %d
}`, s.Count, s.TotalSymbols, s.MinLength, s.MaxLength,
		s.MeanLength, s.MedianLength, s.N50, s.Pairs, s.MatrixCells)
}

// ResultStats summarizes the alignments of a pairwise run.
type ResultStats struct {
	Pairs        int
	Alignments   int
	MinScore     int
	MaxScore     int
	MeanScore    float64
	MeanIdentity float64
	MaxTies      int
	Best         pairwise.Pair
}

// FromResults calculates statistics over pairwise results. Scores are
// taken once per pair; identity is averaged over every alignment.
func FromResults(results []pairwise.Result) (*ResultStats, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("result list cannot be empty")
	}

	s := &ResultStats{Pairs: len(results)}

	scoreSum := 0
	identitySum := 0.0
	for k, res := range results {
		if len(res.Alignments) == 0 {
			return nil, fmt.Errorf("pair (%d, %d) has no alignments", res.I, res.J)
		}

		score := res.Alignments[0].Score
		if k == 0 || score < s.MinScore {
			s.MinScore = score
		}
		if k == 0 || score > s.MaxScore {
			s.MaxScore = score
			s.Best = res.Pair
		}
		scoreSum += score

		if len(res.Alignments) > s.MaxTies {
			s.MaxTies = len(res.Alignments)
		}
		for _, a := range res.Alignments {
			identitySum += a.Identity
			s.Alignments++
		}
	}

	s.MeanScore = float64(scoreSum) / float64(s.Pairs)
	s.MeanIdentity = identitySum / float64(s.Alignments)

	return s, nil
}

func (s *ResultStats) String() string {
	return fmt.Sprintf(`ResultStats {
  pairs: %d
  alignments: %d
  score range: %d - %d
  mean score: %.2f
  mean identity: %.1f%%
  most co-optimal alignments: %d
  best pair: (%d, %d)
}`, s.Pairs, s.Alignments, s.MinScore, s.MaxScore, s.MeanScore,
		s.MeanIdentity*100, s.MaxTies, s.Best.I, s.Best.J)
}

// ScoreHistogram represents a histogram of pair scores.
type ScoreHistogram struct {
	Bins     []int
	MinScore int
	MaxScore int
	BinWidth int
	NumBins  int
}

// NewScoreHistogram creates a score histogram from pairwise results.
func NewScoreHistogram(results []pairwise.Result, numBins int) (*ScoreHistogram, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("result list cannot be empty")
	}
	if numBins <= 0 {
		return nil, fmt.Errorf("numBins must be positive")
	}

	scores := make([]int, 0, len(results))
	for _, res := range results {
		if len(res.Alignments) > 0 {
			scores = append(scores, res.Alignments[0].Score)
		}
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("results carry no alignments")
	}

	minScore, maxScore := scores[0], scores[0]
	for _, sc := range scores {
		if sc < minScore {
			minScore = sc
		}
		if sc > maxScore {
			maxScore = sc
		}
	}

	binWidth := (maxScore - minScore) / numBins
	if binWidth < 1 {
		binWidth = 1
	}

	bins := make([]int, numBins)
	for _, sc := range scores {
		binIndex := (sc - minScore) / binWidth
		if binIndex >= numBins {
			binIndex = numBins - 1
		}
		bins[binIndex]++
	}

	return &ScoreHistogram{
		Bins:     bins,
		MinScore: minScore,
		MaxScore: maxScore,
		BinWidth: binWidth,
		NumBins:  numBins,
	}, nil
}

func (h *ScoreHistogram) String() string {
	var sb strings.Builder
	sb.WriteString("Score Histogram:\n")
	for i := 0; i < h.NumBins; i++ {
		start := h.MinScore + i*h.BinWidth
		end := start + h.BinWidth
		count := h.Bins[i]

		sb.WriteString(fmt.Sprintf("%5d-%5d: %s (%d)\n", start, end, strings.Repeat("#", count), count))
	}
	return sb.String()
}
