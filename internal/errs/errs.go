// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrEmailExists indicates a registration with an already registered email.
	ErrEmailExists = errors.New("email already exists")

	// ErrUsernameTaken indicates a registration with an already registered username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials covers unknown identifier and wrong password alike,
	// so login failures never reveal which one it was.
	ErrInvalidCredentials = errors.New("Invalid credentials")

	// ErrUnauthorized indicates a missing, malformed, expired or revoked token.
	ErrUnauthorized = errors.New("not authenticated")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates the client exhausted its request quota.
	ErrRateLimited = errors.New("too many requests")
)

// ValidationError is a malformed or missing input rejected at the boundary.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// Validation constructs a ValidationError.
func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// DeliveryError is an upstream notification transport failure.
type DeliveryError struct{ Msg string }

func (e *DeliveryError) Error() string { return e.Msg }

// Delivery constructs a DeliveryError.
func Delivery(format string, args ...any) error {
	return &DeliveryError{Msg: fmt.Sprintf(format, args...)}
}

// IsDelivery reports whether err is a DeliveryError.
func IsDelivery(err error) bool {
	var d *DeliveryError
	return errors.As(err, &d)
}
