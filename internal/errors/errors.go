package gerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidRange = errors.New("start date is after end date")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("not authenticated")
)

// PermissionDeniedError is returned when a requested date filter, company or
// endpoint is outside the user's permission record. Allowed carries the
// permitted set for client display.
type PermissionDeniedError struct {
	Requested string
	Allowed   []string
}

func (e *PermissionDeniedError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("%q is not permitted", e.Requested)
	}
	return fmt.Sprintf("%q is not permitted, allowed: %s", e.Requested, strings.Join(e.Allowed, ", "))
}

// PermissionDenied builds a PermissionDeniedError for the requested value.
func PermissionDenied(requested string, allowed []string) error {
	return &PermissionDeniedError{Requested: requested, Allowed: allowed}
}

// IsPermissionDenied reports whether err is a PermissionDeniedError.
func IsPermissionDenied(err error) (*PermissionDeniedError, bool) {
	var pd *PermissionDeniedError
	if errors.As(err, &pd) {
		return pd, true
	}
	return nil, false
}

// ValidationError marks a request validation failure whose message is safe to
// return to the caller verbatim.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validation wraps a validator failure for a 400 response.
func Validation(err error) error {
	return &ValidationError{Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
