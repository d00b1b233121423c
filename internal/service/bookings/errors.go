package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when no booking matches the id
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidInput is returned on malformed dates, categories or statuses
	ErrInvalidInput = errors.New("invalid input")

	// ErrAccessDenied is returned when the actor's role does not permit the
	// operation
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition is returned when a booking's status cannot move
	// to the requested one (completed and cancelled are terminal)
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInternal is returned on unexpected storage failures
	ErrInternal = errors.New("internal error")
)
