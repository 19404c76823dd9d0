package sdk

import (
	"errors"
	"fmt"
)

// Common SDK errors that callers can check with errors.Is for specific handling.
var (
	// ErrInvalidConfig indicates the client configuration is invalid or incomplete.
	ErrInvalidConfig = errors.New("invalid client configuration")

	// ErrNetwork indicates the request never produced an HTTP response
	// (DNS failure, refused connection, timeout).
	ErrNetwork = errors.New("network error: no response from server")

	// ErrAuth indicates the request was rejected with 401 or 403.
	ErrAuth = errors.New("unauthorized: invalid or insufficient credentials")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict indicates a uniqueness constraint was violated
	// (duplicate username or document number).
	ErrConflict = errors.New("conflict with existing resource")

	// ErrValidation indicates the payload failed validation, either
	// locally before the request or server-side with 400.
	ErrValidation = errors.New("validation failed")

	// ErrMissingScope indicates an operation that requires a company
	// scope was attempted on an unscoped client.
	ErrMissingScope = errors.New("company scope required for this operation")
)

// APIError is returned for non-2xx responses that do not map to one of
// the sentinel errors above. It carries the server-supplied message so
// the UI can render it verbatim.
type APIError struct {
	// Status is the HTTP status code of the response.
	Status int

	// Message is the server-supplied error message, if any.
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.Status)
}
