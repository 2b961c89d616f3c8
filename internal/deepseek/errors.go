package deepseek

import "fmt"

// TransportError reports a failed exchange with the chat completions API:
// request errors, timeouts, or a non-OK HTTP status.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("chat completion request failed: %v", e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// MalformedResponseError reports a completion that could not be turned into
// a usable result. Raw holds the offending model output.
type MalformedResponseError struct {
	Raw   string
	Cause error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed completion: %v", e.Cause)
}

func (e *MalformedResponseError) Unwrap() error { return e.Cause }
