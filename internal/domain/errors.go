package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport marks network and I/O failures, including an interrupted rate-limit sleep.
	ErrTransport = errors.New("transport failure")
	// ErrConfig marks configuration loading and validation failures.
	ErrConfig = errors.New("configuration error")
	// ErrInput marks invalid user input or an aborted confirmation.
	ErrInput = errors.New("invalid input")
)

// StatusError is returned when the remote answers with a non-2xx status.
// Action names the failed step or endpoint, e.g. "add file".
type StatusError struct {
	Action     string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("could not %s, status code %d", e.Action, e.StatusCode)
}

// NewStatusError creates a StatusError for the given action.
func NewStatusError(action string, statusCode int) error {
	return &StatusError{Action: action, StatusCode: statusCode}
}

// IsSuccess reports whether statusCode is in the 2xx range.
func IsSuccess(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}
