package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned on the wire. Callers map these to localized messages.
const (
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeMissingFields     = "MISSING_FIELDS"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInvalidStep       = "INVALID_STEP"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeInvalidRateRange  = "INVALID_RATE_RANGE"
	CodeInvalidAction     = "INVALID_ACTION"
	CodeMissingProof      = "MISSING_PROOF"
	CodeValidation        = "VALIDATION_ERROR"
	CodeNoChanges         = "NO_CHANGES"
	CodeInternal          = "INTERNAL_ERROR"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Unauthorized(msg string) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, errors.New(msg))
}

func Forbidden(msg string) *Error {
	return New(http.StatusForbidden, CodeForbidden, errors.New(msg))
}

func NotFound(msg string) *Error {
	return New(http.StatusNotFound, CodeNotFound, errors.New(msg))
}

func MissingFields(msg string) *Error {
	return New(http.StatusBadRequest, CodeMissingFields, errors.New(msg))
}

func InvalidInput(msg string) *Error {
	return New(http.StatusBadRequest, CodeInvalidInput, errors.New(msg))
}

func InvalidStep(msg string) *Error {
	return New(http.StatusBadRequest, CodeInvalidStep, errors.New(msg))
}

func InvalidTransition(from, to string) *Error {
	return New(http.StatusBadRequest, CodeInvalidTransition, fmt.Errorf("transition %s -> %s is not allowed", from, to))
}

func InvalidRateRange(msg string) *Error {
	return New(http.StatusBadRequest, CodeInvalidRateRange, errors.New(msg))
}

func InvalidAction(action string) *Error {
	return New(http.StatusBadRequest, CodeInvalidAction, fmt.Errorf("unrecognized action: %q", action))
}

func MissingProof(msg string) *Error {
	return New(http.StatusBadRequest, CodeMissingProof, errors.New(msg))
}

func Validation(msg string) *Error {
	return New(http.StatusBadRequest, CodeValidation, errors.New(msg))
}

func NoChanges() *Error {
	return New(http.StatusBadRequest, CodeNoChanges, errors.New("no valid fields to update"))
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, CodeInternal, err)
}

// From returns err as an *Error, wrapping unknown errors as internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}
