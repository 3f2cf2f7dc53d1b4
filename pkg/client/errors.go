package client

import (
	"errors"
	"fmt"
)

// Error kinds, matched with errors.Is.
var (
	ErrTransport    = errors.New("transport failure")
	ErrDecode       = errors.New("response decode failure")
	ErrInvalidWarID = errors.New("invalid war id")
	ErrAPI          = errors.New("api error")
)

// errNullBody is the cause of a DecodeError for a literal null payload.
var errNullBody = errors.New("response body is null")

// TransportError reports that the request never produced a response.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// DecodeError reports a successful response whose body did not match the
// expected schema.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// InvalidWarIDError is returned when the API answers 400 Bad Request.
type InvalidWarIDError struct {
	URL string
}

func (e *InvalidWarIDError) Error() string {
	return "invalid war id: " + e.URL
}

func (e *InvalidWarIDError) Is(target error) bool { return target == ErrInvalidWarID }

// APIError is returned for any other non-2xx response.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %s returned %d", e.URL, e.StatusCode)
}

func (e *APIError) Is(target error) bool { return target == ErrAPI }
