package scraper

import (
	"errors"
	"fmt"
)

// Extraction errors.
var (
	ErrMissingNode      = errors.New("required node not found")
	ErrMissingField     = errors.New("required field not found")
	ErrBadTimeFormat    = errors.New("invalid time format")
	ErrTimeOrder        = errors.New("event ends before it begins")
	ErrUnknownEventType = errors.New("unrecognized event type label")
	ErrNoDateContext    = errors.New("no month or day context for event")
)

// StructuralError is fatal: the document is missing one of its top-level
// wrappers and no output can be produced from it.
type StructuralError struct {
	Missing string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("document has no <%s> element", e.Missing)
}

// ExtractionError is recoverable: a single event or day could not be parsed.
// Field names the part being extracted, Raw carries the text it failed on.
type ExtractionError struct {
	Field string
	Raw   string
	Err   error
}

func (e *ExtractionError) Error() string {
	if e.Raw != "" {
		return fmt.Sprintf("extracting %s from %q: %v", e.Field, e.Raw, e.Err)
	}
	return fmt.Sprintf("extracting %s: %v", e.Field, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
