package domain

import "errors"

// Validation errors are recovered by re-prompting the user.
var (
	ErrInvalidPhone    = errors.New("invalid phone number")
	ErrEmptySelection  = errors.New("no category selected")
	ErrUnknownCategory = errors.New("unknown category")
	ErrEmptyField      = errors.New("required field is empty")
	ErrInvalidDate     = errors.New("invalid date")
)

// Lookup and permission errors surface to the actor as a notice.
var (
	ErrNotFound           = errors.New("not found")
	ErrOrderNotAvailable  = errors.New("order not available")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrAlreadyRegistered  = errors.New("executor already registered")
	ErrRegistrationClosed = errors.New("executor is blocked")
)
