package storage

import (
	"errors"
	"fmt"
)

var (
	ErrAuthFailed    = errors.New("authentication failed")
	ErrConnFailed    = errors.New("connection failed")
	ErrNotFound      = errors.New("object not found")
	ErrInvalidConfig = errors.New("invalid storage configuration")
	ErrNotSupported  = errors.New("operation not supported")
)

// IsMisconfiguration returns true if the error signals a server-side
// configuration problem rather than a transient or client fault
func IsMisconfiguration(err error) bool {
	return errors.Is(err, ErrInvalidConfig) || errors.Is(err, ErrAuthFailed)
}

// WrapError adds context to an error
func WrapError(driver, operation string, err error) error {
	return fmt.Errorf("%s (%s): %w", operation, driver, err)
}
