package ingestion

import (
	"errors"
	"fmt"
)

var errNoText = errors.New("document contains no extractable text")

// ExtractionError reports a résumé file that could not be turned into text.
// Callers treat it as "skip this candidate", never as a run failure.
type ExtractionError struct {
	Path  string
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract text from %q: %v", e.Path, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
