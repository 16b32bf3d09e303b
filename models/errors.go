package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrAlreadyReturned = errors.New("loan already returned")
	ErrNotAuthorized   = errors.New("not authorized")
	ErrAuthentication  = errors.New("invalid credentials")
)

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("%s %s", e.Field, e.Reason) }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func Invalid(field, reason string) error { return &ValidationError{Field: field, Reason: reason} }
