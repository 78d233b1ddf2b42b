package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/seqalign-go/internal/report"
)

const sample = `-1
1
-1
seq1
first
GATTACA
seq2
second
GCATGCU
`

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func runCmd(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestInvalidAlgorithm(t *testing.T) {
	for _, name := range []string{"semi", "Global", "LOCAL", ""} {
		t.Run(name, func(t *testing.T) {
			code, stdout, stderr := runCmd(name, "does-not-exist.txt")
			assert.Equal(t, 0, code)
			assert.Empty(t, stdout)
			assert.Equal(t, "Invalid algorithm!\n", stderr)
		})
	}
}

func TestUsage(t *testing.T) {
	code, _, stderr := runCmd("global")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Usage:")

	code, _, _ = runCmd("-h")
	assert.Equal(t, 0, code)

	code, stdout, _ := runCmd("version")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "seqalign v")
}

func TestGlobalText(t *testing.T) {
	path := writeFile(t, "input.txt", sample)

	code, stdout, stderr := runCmd("global", path)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "# seq1 (first) vs seq2 (second) (global)")
	assert.Contains(t, stdout, "G-ATTACA")
	assert.Contains(t, stdout, "GCA-TGCU")
}

func TestLocalJSONL(t *testing.T) {
	path := writeFile(t, "input.txt", `-2
3
-3
a

ACACACTA
b

AGCACACA
c

ACACACTA
`)

	code, stdout, stderr := runCmd("-format", "jsonl", "-workers", "2", "local", path)
	require.Equal(t, 0, code, stderr)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)

	var first report.PairJSON
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "a", first.A.ID)
	assert.Equal(t, "b", first.B.ID)
	assert.Equal(t, "local", first.Mode)
	assert.Equal(t, 17, first.Score)
}

func TestFASTAInput(t *testing.T) {
	path := writeFile(t, "input.fa", ">seq1 first\nGATTACA\n>seq2 second\nGCATGCU\n")

	code, stdout, stderr := runCmd("-fasta", "-gap", "-1", "-match", "1", "-mismatch", "-1", "global", path)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "G-ATTACA")
}

func TestSummaryAndMatrix(t *testing.T) {
	path := writeFile(t, "input.txt", sample)

	code, stdout, stderr := runCmd("-summary", "-matrix", "-v", "global", path)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "## matrix")
	assert.Contains(t, stderr, "RecordSetStats")
	assert.Contains(t, stderr, "ResultStats")
	assert.Contains(t, stderr, "aligned 1 pairs")
}

func TestErrors(t *testing.T) {
	code, _, stderr := runCmd("global", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error:")

	path := writeFile(t, "bad.txt", "-1\n1\n")
	code, _, stderr = runCmd("local", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "line 3")

	path = writeFile(t, "input.txt", sample)
	code, _, stderr = runCmd("-format", "xml", "global", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown output format")
}

func TestCancelled(t *testing.T) {
	path := writeFile(t, "input.txt", sample)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	code := run(ctx, []string{"global", path}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "context canceled")
}
