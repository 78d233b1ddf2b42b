// Package handlers provides HTTP handlers for the seqalign API.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/aria-lang/seqalign-go/internal/alignment"
	"github.com/aria-lang/seqalign-go/internal/input"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Line  int    `json:"line,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeFailure maps domain errors to status codes.
func writeFailure(w http.ResponseWriter, err error) {
	var unsupported *alignment.UnsupportedAlgorithmError
	var malformed *input.MalformedInputError
	var tooLarge *TooLargeError
	var tooMany *alignment.TooManyAlignmentsError

	switch {
	case errors.As(err, &unsupported):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &malformed):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Line: malformed.Line})
	case errors.As(err, &tooLarge), errors.As(err, &tooMany):
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// TooLargeError reports a request whose score matrices exceed the limit.
type TooLargeError struct {
	Cells int
	Limit int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("request needs %s matrix cells, limit is %s",
		humanize.Comma(int64(e.Cells)), humanize.Comma(int64(e.Limit)))
}
