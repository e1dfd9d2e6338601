package svrf

import (
	"errors"
	"fmt"
)

// ParseError is a fatal front-end error. Only malformed numeric
// literals in an otherwise recognized statement produce one; every
// other irregularity becomes a Diagnostic and the statement is skipped.
type ParseError struct {
	Line    int
	Context string
	Message string
}

func (e *ParseError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("parse error at line %d: %s: %s", e.Line, e.Context, e.Message)
	}
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Message)
}

// AsParseError unwraps err looking for a ParseError.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// Diagnostic records a statement the translator noticed and skipped,
// with the 1-based line it started on. Translation continues past a
// diagnostic; strict callers may choose to treat any as failure.
type Diagnostic struct {
	Line    int    `json:"line"`
	Context string `json:"context"`
	Reason  string `json:"reason"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: skipped %s: %s", d.Line, d.Context, d.Reason)
}
