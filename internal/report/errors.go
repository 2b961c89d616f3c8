package report

import "fmt"

// RenderError reports a failure to produce the PDF artifact.
type RenderError struct {
	Path  string
	Cause error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render pdf report %q: %v", e.Path, e.Cause)
}

func (e *RenderError) Unwrap() error { return e.Cause }
