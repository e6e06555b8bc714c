package payment

import (
	"errors"
	"net/http"
)

// ErrorKind classifies orchestrator failures so callers match on kind rather
// than probing message strings.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindConfig     ErrorKind = "config"
	KindUpstream   ErrorKind = "upstream"
	KindNotFound   ErrorKind = "not_found"
)

// Error is the tagged failure type crossing the orchestrator boundary. The
// message is safe to return to the caller.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func validationErr(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func upstreamErr(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Err: err}
}

// As unwraps err to an *Error when possible.
func As(err error) (*Error, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// HTTPStatus maps an error kind to the response status code. Unrecognized
// errors are internal.
func HTTPStatus(err error) int {
	if pe, ok := As(err); ok {
		switch pe.Kind {
		case KindValidation, KindConfig, KindUpstream:
			return http.StatusBadRequest
		case KindNotFound:
			return http.StatusNotFound
		}
	}
	return http.StatusInternalServerError
}
