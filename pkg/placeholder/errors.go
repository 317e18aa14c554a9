package placeholder

import (
	"errors"
	"fmt"
)

// Kind classifies API client failures.
type Kind int

const (
	// KindNoResponse indicates the transport delivered no response body.
	KindNoResponse Kind = iota
	// KindInvalidRequest indicates the request could not be built (missing
	// base URL, bad endpoint, or an unserializable body).
	KindInvalidRequest
	// KindDecodeFailed indicates the response body could not be decoded
	// into the requested type.
	KindDecodeFailed
	// KindNetworkFailed indicates a transport-level failure.
	KindNetworkFailed
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNoResponse:
		return "no_response"
	case KindInvalidRequest:
		return "invalid_request"
	case KindDecodeFailed:
		return "decode_failed"
	case KindNetworkFailed:
		return "network_failed"
	default:
		return "unknown"
	}
}

// Error is a classified API client failure. The underlying cause, when
// one exists, is reachable through Unwrap.
type Error struct {
	// Kind classifies the failure.
	Kind Kind
	// Message describes the failure.
	Message string
	// Err is the underlying cause (may be nil).
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("placeholder: %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewNoResponseError reports an empty response body for the given route.
func NewNoResponseError(path string) *Error {
	return &Error{
		Kind:    KindNoResponse,
		Message: fmt.Sprintf("empty response body from %s", path),
	}
}

// NewInvalidRequestError reports a request that could not be constructed.
func NewInvalidRequestError(msg string, cause error) *Error {
	return &Error{
		Kind:    KindInvalidRequest,
		Message: msg,
		Err:     cause,
	}
}

// NewDecodeError wraps a JSON decoding failure.
func NewDecodeError(cause error) *Error {
	return &Error{
		Kind:    KindDecodeFailed,
		Message: cause.Error(),
		Err:     cause,
	}
}

// NewNetworkError wraps a transport failure.
func NewNetworkError(cause error) *Error {
	return &Error{
		Kind:    KindNetworkFailed,
		Message: cause.Error(),
		Err:     cause,
	}
}

// IsNoResponse checks whether err is a no-response error.
func IsNoResponse(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindNoResponse
}

// IsInvalidRequest checks whether err is an invalid-request error.
func IsInvalidRequest(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindInvalidRequest
}

// IsDecodeFailed checks whether err is a decode error.
func IsDecodeFailed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindDecodeFailed
}

// IsNetworkFailed checks whether err is a network error.
func IsNetworkFailed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindNetworkFailed
}
