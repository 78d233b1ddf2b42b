package alignment

import (
	"fmt"
	"strings"
)

// Direction is the backpointer recorded for a matrix cell.
type Direction uint8

const (
	// None marks the origin, or a local cell that starts a fresh alignment
	None Direction = iota
	// Diagonal represents a match or mismatch
	Diagonal
	// Up represents a gap in sequence 2
	Up
	// Left represents a gap in sequence 1
	Left
)

func (d Direction) String() string {
	switch d {
	case Diagonal:
		return "↖"
	case Up:
		return "↑"
	case Left:
		return "←"
	case None:
		return "×"
	}
	return "?"
}

// Cell is one entry of the dynamic-programming matrix.
type Cell struct {
	Score int
	Dir   Direction
}

// Matrix is a (len(a)+1) x (len(b)+1) grid of cells stored row-major in a
// single slice.
type Matrix struct {
	rows  int
	cols  int
	cells []Cell
}

func newMatrix(rows, cols int) *Matrix {
	return &Matrix{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
}

// Rows returns the number of rows, len(a)+1.
func (m *Matrix) Rows() int {
	return m.rows
}

// Cols returns the number of columns, len(b)+1.
func (m *Matrix) Cols() int {
	return m.cols
}

// At returns the cell at row i, column j.
func (m *Matrix) At(i, j int) Cell {
	return m.cells[m.idx(i, j)]
}

func (m *Matrix) set(i, j int, c Cell) {
	m.cells[m.idx(i, j)] = c
}

func (m *Matrix) idx(i, j int) int {
	return i*m.cols + j
}

// Format renders the matrix with the symbols of a down the left edge and
// those of b across the top. Each cell is shown as its backpointer and score.
func (m *Matrix) Format(a, b []rune) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%c  %s%-3s", ' ', " ", " "))
	for j := 0; j < len(b); j++ {
		sb.WriteString(fmt.Sprintf("  %s%3c", " ", b[j]))
	}
	sb.WriteByte('\n')

	for i := 0; i < m.rows; i++ {
		if i == 0 || i > len(a) {
			sb.WriteByte(' ')
		} else {
			sb.WriteRune(a[i-1])
		}
		for j := 0; j < m.cols; j++ {
			c := m.At(i, j)
			sb.WriteString(fmt.Sprintf("  %s%3d", c.Dir, c.Score))
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Coord is a matrix coordinate together with the score found there.
type Coord struct {
	Score int
	Row   int
	Col   int
}

// MaxSet holds every coordinate tied for the best score seen so far.
type MaxSet []Coord

// Offer considers a freshly computed cell. A strictly greater score replaces
// the whole set; an equal score is appended; a smaller one is ignored.
func (ms *MaxSet) Offer(score, row, col int) {
	c := Coord{Score: score, Row: row, Col: col}
	switch {
	case len(*ms) == 0 || score > (*ms)[0].Score:
		*ms = append((*ms)[:0], c)
	case score == (*ms)[0].Score:
		*ms = append(*ms, c)
	}
}

// Score returns the shared score of the set, or 0 when it is empty.
func (ms MaxSet) Score() int {
	if len(ms) == 0 {
		return 0
	}
	return ms[0].Score
}

// pick resolves the recurrence for one cell. Ties go to Diagonal, then Up,
// then Left, then (local only) the zero floor.
func pick(i, j, diag, up, left int, floored bool) Cell {
	best := diag
	if up > best {
		best = up
	}
	if left > best {
		best = left
	}
	if floored && best < 0 {
		best = 0
	}

	switch {
	case best == diag:
		return Cell{Score: best, Dir: Diagonal}
	case best == up:
		return Cell{Score: best, Dir: Up}
	case best == left:
		return Cell{Score: best, Dir: Left}
	case floored && best == 0:
		return Cell{Score: 0, Dir: None}
	}
	panic(&InvariantError{Row: i, Col: j, Reason: "maximum matches no candidate"})
}

// trace accumulates an alignment in reverse while walking backpointers.
type trace struct {
	row1, row2 []rune
	ops        []Op
}

func newTrace(capacity int) *trace {
	return &trace{
		row1: make([]rune, 0, capacity),
		row2: make([]rune, 0, capacity),
		ops:  make([]Op, 0, capacity),
	}
}

// step consumes one column of the alignment walking back from (i, j) and
// returns the predecessor coordinate.
func (t *trace) step(a, b []rune, i, j int, dir Direction) (int, int) {
	switch dir {
	case Diagonal:
		op := OpMismatch
		if a[i-1] == b[j-1] {
			op = OpMatch
		}
		t.push(a[i-1], b[j-1], op)
		return i - 1, j - 1
	case Up:
		t.push(a[i-1], GapSymbol, OpDelete)
		return i - 1, j
	case Left:
		t.push(GapSymbol, b[j-1], OpInsert)
		return i, j - 1
	}
	panic(&InvariantError{Row: i, Col: j, Reason: "traceback reached a cell without direction"})
}

func (t *trace) push(c1, c2 rune, op Op) {
	t.row1 = append(t.row1, c1)
	t.row2 = append(t.row2, c2)
	t.ops = append(t.ops, op)
}

// finish reverses the columns into reading order.
func (t *trace) finish() ([]rune, []rune, []Op) {
	for i, j := 0, len(t.ops)-1; i < j; i, j = i+1, j-1 {
		t.row1[i], t.row1[j] = t.row1[j], t.row1[i]
		t.row2[i], t.row2[j] = t.row2[j], t.row2[i]
		t.ops[i], t.ops[j] = t.ops[j], t.ops[i]
	}
	return t.row1, t.row2, t.ops
}
