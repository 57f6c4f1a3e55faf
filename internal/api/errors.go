package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the backend requires a login, either by
// answering 401 or by redirecting to the login page.
var ErrUnauthorized = errors.New("not logged in")

// HTTPError is a non-2xx response from the backend.
type HTTPError struct {
	Endpoint string
	Status   int
	Message  string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: HTTP %d", e.Endpoint, e.Status)
}

// MalformedError indicates a response body that could not be decoded or
// failed validation.
type MalformedError struct {
	Endpoint string
	Err      error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Endpoint, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// ServiceError is a 2xx response whose body reports failure through a
// success flag or error field.
type ServiceError struct {
	Endpoint string
	Message  string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Message)
}
