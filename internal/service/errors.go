// Package service holds the error taxonomy shared by the command and query
// services and the HTTP handlers. Match with errors.Is / errors.As.
package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("email already exists")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("invalid credentials")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
)

// FieldError is a validation failure tied to one input field.
// It unwraps to ErrValidation.
type FieldError struct {
	Field   string
	Message string
	Tag     string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// ValidationErrors collects every field that failed. It unwraps to
// ErrValidation as well.
type ValidationErrors []*FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ErrValidation.Error()
	}
	msg := v[0].Error()
	if len(v) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(v)-1)
	}
	return msg
}

func (v ValidationErrors) Unwrap() error {
	return ErrValidation
}

// Internal wraps a low-level failure so that it matches ErrInternal while
// keeping the cause for operator logs.
func Internal(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
}
