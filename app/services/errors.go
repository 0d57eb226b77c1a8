package services

import (
	"errors"
	"net/http"
)

// Error kinds. Every error a service returns to a controller wraps one of
// these, so callers can branch with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrAuth       = errors.New("not authorised")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrEmptyCart  = errors.New("cart is empty")
	ErrGateway    = errors.New("gateway failure")
	ErrStorage    = errors.New("storage failure")
)

// AuthMessage is shown for every missing, expired or foreign token.
const AuthMessage = "Missing required token in header, or token is invalid."

// Error is a client-facing failure: Message is safe to show, Err (if set)
// is the underlying cause for the logs.
type Error struct {
	Kind    error
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func (e *Error) HTTPStatus() int { return StatusOf(e) }

func (e *Error) FieldErrors() map[string]string { return e.Fields }

// StatusOf maps an error to the HTTP status a controller should answer with.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict), errors.Is(err, ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuth):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func invalid(msg string) error { return &Error{Kind: ErrValidation, Message: msg} }

func invalidFields(msg string, fields map[string]string) error {
	return &Error{Kind: ErrValidation, Message: msg, Fields: fields}
}

func notFound(msg string) error { return &Error{Kind: ErrNotFound, Message: msg} }

func forbidden() error { return &Error{Kind: ErrAuth, Message: AuthMessage} }

func storageFailure(msg string, err error) error {
	return &Error{Kind: ErrStorage, Message: msg, Err: err}
}

func gatewayFailure(msg string, err error) error {
	return &Error{Kind: ErrGateway, Message: msg, Err: err}
}
