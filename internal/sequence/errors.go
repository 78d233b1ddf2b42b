package sequence

import "fmt"

// RangeError is returned when a symbol range falls outside a record.
type RangeError struct {
	Start  int
	End    int
	Length int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("range [%d, %d) outside sequence of length %d", e.Start, e.End, e.Length)
}
