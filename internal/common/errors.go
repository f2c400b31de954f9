// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Authentication errors.
	ErrMissingToken = errors.New("authentication token missing")
	ErrUnauthorized = errors.New("session expired or unauthorized")
	ErrAccessDenied = errors.New("access denied. Admin privileges required")

	// API errors.
	ErrRequestFailed = errors.New("request failed")
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")

	// Input errors.
	ErrInvalidDateRange     = errors.New("end date cannot be before start date")
	ErrConfirmationDeclined = errors.New("operation cancelled")

	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsAuthError reports whether err ends the current session. Such errors are
// never retried.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrMissingToken) || errors.Is(err, ErrUnauthorized)
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if IsAuthError(err) || errors.Is(err, ErrValidation) {
		return false
	}

	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}

// Describe returns the operator-facing text for err.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.UserMessage
	}
	var um interface{ UserMessage() string }
	if errors.As(err, &um) {
		return um.UserMessage()
	}
	return err.Error()
}
