// Package service provides business logic for the application.
package service

import "errors"

// Service errors. Handlers map these to HTTP statuses with errors.Is/As;
// anything else is an internal error.
var (
	ErrDuplicateNaturalKey = errors.New("account with this identifier already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPrincipalNotFound   = errors.New("account not found")
	ErrAdminRequired       = errors.New("admin access required")
	ErrRecordNotFound      = errors.New("tax record not found")
	ErrNotRecordOwner      = errors.New("record belongs to another account")
)

// ValidationError reports a missing or malformed required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

func missingField(field string) error {
	return &ValidationError{Field: field}
}
