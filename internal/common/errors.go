package common

import (
	"errors"
	"net/http"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrInternalServer      = errors.New("internal server error")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrUserNotFound        = errors.New("user not found")
	ErrUpstreamFailure     = errors.New("upstream failure") // non-2xx, timeout or unparseable payload from a required call
)

// LookupError is what a platform handler returns instead of stats. Error() is the
// message shown to clients; Kind is one of the sentinels above.
type LookupError struct {
	Kind    error
	Message string
	Err     error // underlying cause, logged but not shown
}

func (e *LookupError) Error() string {
	return e.Message
}

func (e *LookupError) Is(target error) bool {
	return target == e.Kind
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

func NotFound(message string) error {
	return &LookupError{Kind: ErrUserNotFound, Message: message}
}

func Upstream(message string, cause error) error {
	return &LookupError{Kind: ErrUpstreamFailure, Message: message, Err: cause}
}

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrUnsupportedPlatform) || errors.Is(err, ErrBadRequest) {
		return http.StatusBadRequest
	}
	// Any failed lookup is reported as not found, upstream trouble included.
	if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrUpstreamFailure) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// ClientMessage returns the text safe to put in a response body.
func ClientMessage(err error) string {
	if HTTPStatusFromError(err) == http.StatusInternalServerError {
		return "Internal server error"
	}
	var lookupErr *LookupError
	if errors.As(err, &lookupErr) {
		return lookupErr.Message
	}
	return err.Error()
}

func UnsupportedPlatform(platform string) error {
	return &LookupError{Kind: ErrUnsupportedPlatform, Message: "Unsupported platform: " + platform}
}

func BadRequest(message string) error {
	return &LookupError{Kind: ErrBadRequest, Message: message}
}
