package jira

import (
	"errors"
	"fmt"
)

// TransportError indicates the request never produced an HTTP response:
// DNS failure, refused connection, timeout, or a request that could not
// be built at all.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("jira: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError indicates the service answered with a non-2xx status. Body
// carries the raw response body for diagnostics.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("jira: unexpected status %d: %s", e.StatusCode, e.Body)
}

// DecodeError indicates a 2xx response whose body did not match the
// expected shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("jira: decoding response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err (or any error in its chain)
// is a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsAPIError reports whether err (or any error in its chain) is an
// APIError.
func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

// IsDecodeError reports whether err (or any error in its chain) is a
// DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
