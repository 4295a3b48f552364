package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// StatusError is returned by decoding methods when the hub answers with a
// non-success status. The body is kept verbatim and never decoded.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, msg)
}

// DecodeError is returned when a successful response is not valid JSON or
// does not match the expected shape.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err is a StatusError with the given code
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// IsNotFound reports whether err is a 404 from the hub
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// IsDecode reports whether err is a DecodeError
func IsDecode(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
