package errors

import (
	"errors"
	"fmt"
)

var NotFound = errors.New("Not found")

// ErrIndexUnavailable marks a search backend failure. Queries must
// surface it as a 5xx instead of masking an outage as "no results".
var ErrIndexUnavailable = errors.New("search index unavailable")

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// ValidationError is malformed or contradictory caller input.
// Surfaced as HTTP 400, never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Validation error: %s", e.Message)
}

// ProjectionError is an index write failure. The originating mutation
// still succeeds; the caller logs and retries the projection.
type ProjectionError struct {
	DocumentId string
	Err        error
}

func (e *ProjectionError) Error() string {
	return fmt.Sprintf("projection of %s failed: %v", e.DocumentId, e.Err)
}

func (e *ProjectionError) Unwrap() error { return e.Err }

// Check if err is instance of T for custom error types
func Is[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}
