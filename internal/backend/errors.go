package backend

import (
	"errors"
	"fmt"
)

// ErrRequestFailed is the single failure kind for backend calls. Network errors,
// non-2xx statuses and undecodable bodies all wrap it.
var ErrRequestFailed = errors.New("request failed")

// StatusError is returned for a non-2xx backend response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string // First MaxErrorLen bytes of the response body
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// Unwrap lets errors.Is(err, ErrRequestFailed) match status failures.
func (e *StatusError) Unwrap() error {
	return ErrRequestFailed
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not a StatusError.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
