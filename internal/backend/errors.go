package backend

import (
	"errors"
	"fmt"
)

var (
	errUnexpected  = errors.New("unexpected status code")
	errCircuitOpen = errors.New("circuit breaker open")
	errNotArray    = errors.New("payload is not an array of readings")
)

// FetchError is a network or transport failure, or a payload that could not be decoded.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ServerError is returned when the payload itself signals failure ({"error": true, "message": ...}).
type ServerError struct {
	URL     string
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error from %s (status %d): %s", e.URL, e.Status, e.Message)
}

// ServerMessage is the message to display verbatim.
func (e *ServerError) ServerMessage() string { return e.Message }
