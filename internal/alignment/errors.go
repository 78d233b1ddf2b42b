package alignment

import "fmt"

// UnsupportedAlgorithmError is returned when a mode selector names neither
// "global" nor "local".
type UnsupportedAlgorithmError struct {
	Name string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("invalid algorithm %q: valid options are global and local", e.Name)
}

// InvariantError reports a matrix cell whose backpointer cannot be
// classified. The recurrences never produce one for finite integer scores,
// so it is raised with panic and never returned.
type InvariantError struct {
	Row    int
	Col    int
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("alignment invariant violated at cell (%d, %d): %s", e.Row, e.Col, e.Reason)
}

// TooManyAlignmentsError is returned by SmithWatermanLimit when more cells
// tie for the maximum score than the caller accepts.
type TooManyAlignmentsError struct {
	Count int
	Limit int
}

func (e *TooManyAlignmentsError) Error() string {
	return fmt.Sprintf("%d co-optimal local alignments exceed the limit of %d", e.Count, e.Limit)
}
