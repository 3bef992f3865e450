package relay

import "net/http"

// Kind classifies a relay failure for the caller
type Kind string

// Error kinds surfaced to callers
const (
	KindInvalidArgument Kind = "invalid-argument"
	KindInternal        Kind = "internal"
)

// FallbackMessage is surfaced when the provider gives no usable message
const FallbackMessage = "Failed to send donation"

// Error is a structured relay failure. Err carries the underlying cause for
// logging and is never serialized.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the kind to a response status code
func (e *Error) HTTPStatus() int {
	if e.Kind == KindInvalidArgument {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func invalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

func internal(message string, cause error) *Error {
	if message == "" {
		message = FallbackMessage
	}
	return &Error{Kind: KindInternal, Message: message, Err: cause}
}
