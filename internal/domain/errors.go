package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPassword is returned when a password doesn't meet requirements.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidOrderStatus is returned when an order status is not valid.
	ErrInvalidOrderStatus = errors.New("invalid order status")

	// ErrInvalidPaymentStatus is returned when a payment status is not valid.
	ErrInvalidPaymentStatus = errors.New("invalid payment status")

	// ErrInvalidPaymentMethod is returned when a payment method is not valid.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInvalidPostStatus is returned when a blog post status is not valid.
	ErrInvalidPostStatus = errors.New("invalid post status")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
