package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password too weak")
	ErrForbidden          = errors.New("forbidden")
	ErrRegistrationClosed = errors.New("registration is disabled")
)

// ValidationError carries per-field messages and matches ErrValidation.
type ValidationError struct {
	Message string
	Details map[string]string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return ErrValidation.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func Invalid(msg string, details map[string]string) error {
	return &ValidationError{Message: msg, Details: details}
}

// NotFoundError names the missing resource and matches ErrNotFound.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}
