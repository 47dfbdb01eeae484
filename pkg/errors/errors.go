package chat_errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrStorage      = errors.New("storage failure")
	ErrNotification = errors.New("notification failure")
	ErrUnauthorized = errors.New("unauthorized")
)

// Storage wraps a backend error so callers can match it with errors.Is(err, ErrStorage).
func Storage(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

// Invalid builds a validation error with a human readable reason.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Notification wraps a broadcast or publish failure.
func Notification(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrNotification, err)
}
