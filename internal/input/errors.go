package input

import "fmt"

// InputError is the base error type for input loading.
type InputError interface {
	error
	IsInputError()
}

// MalformedInputError is returned when the input text does not follow the
// expected layout.
type MalformedInputError struct {
	Line   int
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return e.Reason
}

func (e *MalformedInputError) IsInputError() {}
