// Package input loads scoring parameters and sequence records.
//
// The native format is line oriented:
//
//	gap
//	match
//	mismatch
//	identifier
//	description
//	sequence
//	...
//
// followed by any number of further (identifier, description, sequence)
// groups. FASTA files are also accepted, with scores supplied separately.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aria-lang/seqalign-go/internal/alignment"
	"github.com/aria-lang/seqalign-go/internal/sequence"
)

// maxLineSize bounds a single input line; sequences are stored on one line.
const maxLineSize = 64 << 20

// Input is a fully validated run description.
type Input struct {
	Scoring alignment.Scoring
	Records []*sequence.Record
}

// Load reads an input file from disk.
func Load(filename string) (*Input, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse parses the line-oriented input format from a reader.
//
// Surrounding whitespace is trimmed from every line and trailing blank
// lines are ignored. Blank lines elsewhere are significant: a blank
// description or sequence line is a valid empty value.
func Parse(r io.Reader) (*Input, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	if len(lines) < 3 {
		return nil, &MalformedInputError{
			Line:   len(lines) + 1,
			Reason: "expected gap, match and mismatch scores on the first three lines",
		}
	}

	var scores [3]int
	names := [3]string{"gap", "match", "mismatch"}
	for i := range scores {
		v, err := strconv.Atoi(lines[i])
		if err != nil {
			return nil, &MalformedInputError{
				Line:   i + 1,
				Reason: fmt.Sprintf("%s score %q is not an integer", names[i], lines[i]),
			}
		}
		scores[i] = v
	}

	body := lines[3:]
	if rem := len(body) % 3; rem != 0 {
		return nil, &MalformedInputError{
			Line:   len(lines) - rem + 1,
			Reason: "incomplete sequence record: expected identifier, description and sequence lines",
		}
	}

	records := make([]*sequence.Record, 0, len(body)/3)
	for i := 0; i < len(body); i += 3 {
		if body[i] == "" {
			return nil, &MalformedInputError{Line: 3 + i + 1, Reason: "empty sequence identifier"}
		}
		records = append(records, sequence.New(body[i], body[i+1], body[i+2]))
	}

	return &Input{
		Scoring: alignment.NewScoring(scores[0], scores[1], scores[2]),
		Records: records,
	}, nil
}

// ParseString parses the input format from a string.
func ParseString(data string) (*Input, error) {
	return Parse(strings.NewReader(data))
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lines := make([]string, 0, 16)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return lines, nil
}

// LoadFASTA reads sequence records from a FASTA file.
func LoadFASTA(filename string) ([]*sequence.Record, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return ParseFASTA(file)
}

// ParseFASTA parses FASTA format from a reader. Sequence lines are joined;
// a header with no sequence lines yields an empty record.
func ParseFASTA(r io.Reader) ([]*sequence.Record, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	records := make([]*sequence.Record, 0)

	var (
		inRecord     bool
		id, desc     string
		currentBases strings.Builder
	)

	flush := func() {
		if inRecord {
			records = append(records, sequence.New(id, desc, currentBases.String()))
			currentBases.Reset()
		}
	}

	for n, line := range lines {
		if len(line) == 0 {
			continue
		}

		if line[0] == '>' {
			flush()

			parts := strings.SplitN(line[1:], " ", 2)
			inRecord, id, desc = true, parts[0], ""
			if len(parts) > 1 {
				desc = strings.TrimSpace(parts[1])
			}
			continue
		}

		if !inRecord {
			return nil, &MalformedInputError{Line: n + 1, Reason: "sequence data before first '>' header"}
		}
		currentBases.WriteString(line)
	}

	flush()

	return records, nil
}

// ParseFASTAString parses FASTA format from a string.
func ParseFASTAString(data string) ([]*sequence.Record, error) {
	return ParseFASTA(strings.NewReader(data))
}
