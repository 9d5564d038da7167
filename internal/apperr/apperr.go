// Package apperr defines the error taxonomy shared across services and
// handlers. Services return errors wrapping one of the sentinels below; the
// HTTP layer resolves them to status codes with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized means the session gate rejected the caller.
	ErrUnauthorized = errors.New("not authorized")
	// ErrValidation means a required field was missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPersistence means the underlying storage read or write failed.
	ErrPersistence = errors.New("persistence failure")
)

// Validationf wraps ErrValidation with a formatted reason.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

// Persistencef wraps ErrPersistence with a formatted reason.
func Persistencef(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrPersistence}, args...)...)
}
