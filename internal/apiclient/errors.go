package apiclient

import (
	"errors"
	"fmt"
)

// TransportError means the request never produced a response: DNS,
// connection refused, timeouts, a cancelled context, or a body cut off
// mid-read.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: transport: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// BackendError means a response arrived but reports failure. Either the
// status was not 2xx, in which case Body holds the raw response text, or the
// status was 2xx and the payload could not be decoded into the expected shape
// (Malformed is set and Err holds the decode or validation failure).
type BackendError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	Malformed  bool
	Err        error
}

func (e *BackendError) Error() string {
	if e.Malformed {
		return fmt.Sprintf("%s %s: malformed response (status %d): %v", e.Method, e.Path, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (e *BackendError) Unwrap() error { return e.Err }

// InvalidArgumentError is returned before any I/O when an operation is called
// with an input outside its documented domain.
type InvalidArgumentError struct {
	Op     string
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Op, e.Field, e.Reason)
}

// IsTransport reports whether err is, or wraps, a *TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsBackend reports whether err is, or wraps, a *BackendError.
func IsBackend(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}

// IsMalformed reports whether err is a BackendError for an undecodable or
// out-of-domain payload.
func IsMalformed(err error) bool {
	var be *BackendError
	return errors.As(err, &be) && be.Malformed
}
