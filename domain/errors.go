package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeUnavailable  ErrorCode = "UNAVAILABLE"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets the sentinels below survive wrapping: two domain errors match
// when both code and message match.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code && e.Message == other.Message
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Authentication failures. The kinds stay distinct internally so logs
// and tests can tell them apart; the handler layer collapses every
// UNAUTHORIZED variant into one uniform client message so a caller
// cannot probe which check failed.
var (
	ErrInvalidCredentials = NewError(ErrCodeUnauthorized, "invalid email or password")
	ErrNoSession          = NewError(ErrCodeUnauthorized, "no session token presented")
	ErrTokenInvalid       = NewError(ErrCodeUnauthorized, "token signature or shape invalid")
	ErrTokenExpired       = NewError(ErrCodeUnauthorized, "token expired")
	ErrSessionRevoked     = NewError(ErrCodeUnauthorized, "session revoked")
	ErrMustReauthenticate = NewError(ErrCodeUnauthorized, "refresh token invalid or expired")
	ErrActivationCode     = NewError(ErrCodeUnauthorized, "activation code mismatch")
)

// Common domain errors.
var (
	ErrUserNotFound         = NewError(ErrCodeNotFound, "user not found")
	ErrCourseNotFound       = NewError(ErrCodeNotFound, "course not found")
	ErrOrderNotFound        = NewError(ErrCodeNotFound, "order not found")
	ErrNotificationNotFound = NewError(ErrCodeNotFound, "notification not found")
	ErrLayoutNotFound       = NewError(ErrCodeNotFound, "layout not found")
	ErrSessionNotFound      = NewError(ErrCodeNotFound, "session not found")
	ErrEmailTaken           = NewError(ErrCodeConflict, "email already exists")
	ErrAlreadyPurchased     = NewError(ErrCodeConflict, "course already purchased")
	ErrLayoutTypeExists     = NewError(ErrCodeConflict, "layout type already exists")
	ErrForbidden            = NewError(ErrCodeForbidden, "access to this resource is forbidden")
	ErrInvalidPayload       = NewError(ErrCodeInvalid, "invalid payload")
	ErrStoreUnavailable     = NewError(ErrCodeUnavailable, "storage temporarily unavailable")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
