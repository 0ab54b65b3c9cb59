package intervals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// ErrorCode is the symbolic classification attached to well-known failures.
// It is empty for HTTP statuses outside the known set and for generic
// network failures.
type ErrorCode string

const (
	// CodeAuthFailed marks a 401 response: the API key was rejected.
	CodeAuthFailed ErrorCode = "AUTH_FAILED"

	// CodeNotFound marks a 404 response.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeRateLimitExceeded marks a 429 response.
	CodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"

	// CodeTimeout marks a request that timed out or was aborted before any
	// response arrived.
	CodeTimeout ErrorCode = "TIMEOUT"
)

// Error is the single error shape returned by every client operation.
// Status is zero when no HTTP response was received (timeouts, connection
// failures); Code is empty when the failure has no symbolic classification.
type Error struct {
	Code    ErrorCode
	Status  int
	Message string
	Err     error // Underlying transport error, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := "intervals: " + e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("intervals: [%s] %s", e.Code, e.Message)
	}
	if e.Status > 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	return msg
}

// Unwrap implements errors.Unwrap so the underlying transport error can be
// extracted.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is compares error codes, so errors.Is(err, &Error{Code: CodeNotFound})
// matches any not-found failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// apiErrorBody is the JSON failure payload the API attaches to non-2xx
// responses. Both field names appear in the wild.
type apiErrorBody struct {
	ErrorField string `json:"error"`
	Message    string `json:"message"`
}

func (b apiErrorBody) message() string {
	if b.Message != "" {
		return b.Message
	}
	return b.ErrorField
}

// normalizeStatusError converts a non-2xx response into a *Error. The
// well-known statuses are matched first; anything else carries the status
// and the body's message without a symbolic code.
func (c *Client) normalizeStatusError(status int, body []byte) error {
	switch status {
	case http.StatusTooManyRequests:
		msg := "Rate limit exceeded"
		if reset, ok := c.rateLimits.Reset(); ok {
			msg += ", resets at " + reset.UTC().Format(time.RFC3339)
		}
		return &Error{Code: CodeRateLimitExceeded, Status: status, Message: msg}
	case http.StatusUnauthorized:
		return &Error{Code: CodeAuthFailed, Status: status, Message: "Authentication failed: invalid API key"}
	case http.StatusNotFound:
		return &Error{Code: CodeNotFound, Status: status, Message: "Resource not found"}
	}

	var parsed apiErrorBody
	_ = json.Unmarshal(body, &parsed)
	msg := parsed.message()
	if msg == "" {
		msg = fmt.Sprintf("request failed with status code %d", status)
	}
	return &Error{Status: status, Message: msg}
}

// normalizeTransportError converts a failure with no HTTP response into a
// *Error: timeouts and aborts get CodeTimeout, everything else is an
// uncoded network failure carrying the underlying message.
func (c *Client) normalizeTransportError(err error) error {
	if isTimeout(err) {
		return &Error{Code: CodeTimeout, Message: "Request timeout", Err: err}
	}

	msg := err.Error()
	if msg == "" {
		msg = "Unknown error occurred"
	}
	return &Error{Message: msg, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
