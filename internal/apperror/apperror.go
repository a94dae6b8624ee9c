// Package apperror defines the typed errors the services raise and the boundary maps to HTTP statuses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType categorizes an AppError.
type ErrorType int

const (
	InternalError ErrorType = iota
	NotFoundError
	BadRequestError
	ValidationError
	ConflictError
	UnauthorizedError
)

// FieldError describes one failed input rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is a business error carrying a caller-readable message.
type AppError struct {
	Type    ErrorType
	Message string
	Fields  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status for the error type.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case NotFoundError:
		return http.StatusNotFound
	case BadRequestError, ValidationError:
		return http.StatusBadRequest
	case ConflictError:
		return http.StatusConflict
	case UnauthorizedError:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func New(errType ErrorType, message string, err error) *AppError {
	return &AppError{Type: errType, Message: message, Err: err}
}

func NewNotFound(message string) *AppError {
	return New(NotFoundError, message, nil)
}

func NewBadRequest(message string) *AppError {
	return New(BadRequestError, message, nil)
}

func NewConflict(message string) *AppError {
	return New(ConflictError, message, nil)
}

func NewUnauthorized(message string, err error) *AppError {
	return New(UnauthorizedError, message, err)
}

func NewInternal(message string, err error) *AppError {
	return New(InternalError, message, err)
}

// NewValidation builds a validation error from the failed field rules.
func NewValidation(fields []FieldError) *AppError {
	msg := "validation failed"
	if len(fields) > 0 {
		msg = fields[0].Message
	}
	return &AppError{Type: ValidationError, Message: msg, Fields: fields}
}

// As extracts an *AppError from anywhere in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func Is(err error, errType ErrorType) bool {
	appErr, ok := As(err)
	return ok && appErr.Type == errType
}
