package media

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure independently of the upstream quirk that caused it.
type Kind string

const (
	KindConfiguration             Kind = "configuration"
	KindValidation                Kind = "validation"
	KindTransport                 Kind = "transport"
	KindUpstreamRejected          Kind = "upstream_rejected"
	KindInconsistentUpstreamState Kind = "inconsistent_upstream_state"
	KindInternal                  Kind = "internal"
)

// Error is the normalized error returned across every component boundary.
// Message must already be free of credential material when constructed.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Timeout bool
	Err     error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error kind to the status the gateway answers with.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindTransport:
		if e.Timeout {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	case KindUpstreamRejected:
		if e.Status >= 400 && e.Status <= 599 {
			return e.Status
		}
		return http.StatusBadGateway
	case KindInconsistentUpstreamState:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Configuration(format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Message: fmt.Sprintf(format, args...)}
}

func Inconsistent(format string, args ...any) *Error {
	return &Error{Kind: KindInconsistentUpstreamState, Message: fmt.Sprintf(format, args...)}
}

func Rejected(status int, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{Kind: KindUpstreamRejected, Status: status, Message: message}
}

func Transport(message string, timeout bool, err error) *Error {
	return &Error{Kind: KindTransport, Message: message, Timeout: timeout, Err: err}
}

// KindOf reports the kind of err, or KindInternal when err is not a *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
