package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes that carry no extra data
var (
	// ErrUnsupportedVersion is returned when the controller defers a computation
	// (execution id instead of an inline result).
	ErrUnsupportedVersion = errors.New("controller returned a deferred execution")

	// ErrInvalidTime is returned when a date/time modifier cannot be parsed
	ErrInvalidTime = errors.New("invalid time entered")

	// ErrUnauthorized is returned when a webhook fails signature or sender checks
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInventoryUnbounded is returned when paginated inventory fetching exceeds its page bound
	ErrInventoryUnbounded = errors.New("inventory pagination exceeded page bound")
)

// TransportError describes a failed HTTP exchange: connection error, timeout,
// non-2xx status or an undecodable body.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Method, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteApplicationError is a structured error payload returned by the controller
type RemoteApplicationError struct {
	Code    string
	Message string
}

func (e *RemoteApplicationError) Error() string {
	return fmt.Sprintf("remote error %s: %s", e.Code, e.Message)
}

// InvalidInputError marks user or payload input that could not be interpreted
type InvalidInputError struct {
	Input string
	Err   error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %v", e.Input, e.Err)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

// RenderError is returned when a chart or file artifact could not be written
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// IsTransportError checks if an error originated from a failed HTTP exchange
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
