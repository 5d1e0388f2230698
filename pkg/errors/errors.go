// Package errors defines the error types returned by the subreddit client.
//
// Every failed operation returns a *ClientError. Its Origin tells whether the
// request never produced a usable response (transport) or the response did
// not have the expected shape (decode).
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyCommentResponse is returned (wrapped in a decode ClientError) when a
// submission comment request yields an empty JSON array.
var ErrEmptyCommentResponse = errors.New("empty comment response array")

// Origin classifies where a ClientError came from.
type Origin int

const (
	// OriginTransport covers connection errors, timeouts, cancellation and non-2xx statuses.
	OriginTransport Origin = iota + 1
	// OriginDecode covers JSON that does not match the expected shape.
	OriginDecode
)

// String returns a short name for the origin.
func (o Origin) String() string {
	switch o {
	case OriginTransport:
		return "transport"
	case OriginDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// ClientError is the error returned by every client operation.
type ClientError struct {
	// Origin is OriginTransport or OriginDecode.
	Origin Origin
	// Operation is the client method that failed, e.g. "hot" or "article_comments".
	Operation string
	// URL is the request URL, when one was built.
	URL string
	// Message contains the detailed error message
	Message string
	// Err contains the underlying error if available
	Err error
}

func (e *ClientError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}

	switch {
	case e.Operation != "" && e.URL != "":
		return fmt.Sprintf("%s error during %s to %s: %s", e.Origin, e.Operation, e.URL, msg)
	case e.Operation != "":
		return fmt.Sprintf("%s error during %s: %s", e.Origin, e.Operation, msg)
	default:
		return fmt.Sprintf("%s error: %s", e.Origin, msg)
	}
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// StatusError reports a response with a non-2xx status. It is always wrapped
// in a transport ClientError.
type StatusError struct {
	// StatusCode is the HTTP status code
	StatusCode int
	// Status is the status line text, e.g. "404 Not Found"
	Status string
	// Body holds the start of the response body, if any
	Body string
}

func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Body != "" {
		return fmt.Sprintf("unexpected status %s: %q", status, e.Body)
	}
	return fmt.Sprintf("unexpected status %s", status)
}

// NewTransportError wraps err as a transport failure.
func NewTransportError(operation, url string, err error) *ClientError {
	return &ClientError{Origin: OriginTransport, Operation: operation, URL: url, Err: err}
}

// NewDecodeError wraps err as a decode failure.
func NewDecodeError(operation, url string, err error) *ClientError {
	return &ClientError{Origin: OriginDecode, Operation: operation, URL: url, Err: err}
}

// IsTransport reports whether err is a transport ClientError.
func IsTransport(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Origin == OriginTransport
}

// IsDecode reports whether err is a decode ClientError.
func IsDecode(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Origin == OriginDecode
}

// StatusCode returns the HTTP status carried by err, or 0 if there is none.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
