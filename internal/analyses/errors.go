package analyses

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoAnalysis = errors.New("no analysis available")
	ErrModelCall  = errors.New("model call failed")

	errNoJSON    = errors.New("no JSON object found in response")
	errBadSpans  = errors.New("brace-delimited spans found but none parsed as JSON")
	errNotObject = errors.New("response parsed as JSON but is not an object")
)

// ParseError reports model output with no recoverable structure. It carries
// the raw text so operators can see what the model actually said; an empty
// result would be indistinguishable from "no issues found".
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable model response: %v (raw: %s)", e.Err, truncateRaw(e.Raw))
}

func (e *ParseError) Unwrap() error { return e.Err }

// ShapeError reports parseable output that is missing required fields.
type ShapeError struct {
	Raw     string
	Missing []string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("model response missing fields [%s] (raw: %s)",
		strings.Join(e.Missing, ", "), truncateRaw(e.Raw))
}

func truncateRaw(raw string) string {
	const limit = 500
	if len(raw) > limit {
		return raw[:limit] + "..."
	}
	return raw
}
