package registry

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that a single-resource fetch hit a missing resource.
// Empty search and list results are not errors; callers of List check for an
// empty Results slice instead.
var ErrNotFound = errors.New("resource not found")

// TransportError wraps a connection or send failure reported by the
// Transport. It is surfaced to the caller as-is; this layer never retries.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RegistryError reports a non-2xx response from a backend registry. The raw
// response body is kept for diagnostics; it is never parsed here.
type RegistryError struct {
	Code   int
	Method string
	URL    string
	Body   string
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("registry: %s %s returned %d", e.Method, e.URL, e.Code)
}

// Unwrap maps 404 responses onto ErrNotFound so callers can use errors.Is
// without inspecting status codes.
func (e *RegistryError) Unwrap() error {
	if e.Code == 404 {
		return ErrNotFound
	}
	return nil
}
