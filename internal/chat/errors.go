package chat

import "fmt"

// ErrInvalidMessages is the fixed, non-sensitive reason reported for every
// request body that fails the shape check.
const ErrInvalidMessages = "Missing or invalid messages array."

// ValidationError marks malformed client input. It is raised before any
// provider call and maps to an HTTP 400 response.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalidMessages() error {
	return &ValidationError{Reason: ErrInvalidMessages}
}

// UpstreamError marks a provider failure, before or during streaming. It is
// never retried at this layer and maps to an HTTP 500 response when no output
// has been sent yet.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("provider request failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
