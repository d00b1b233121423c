package create_booking

import "errors"

var (
	// ErrInvalidInput is returned when the request fails structural validation
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrCapacityExceeded is returned when the day is full for the category.
	// The caller should pick another date; retrying the same request will
	// not succeed until a slot frees up.
	ErrCapacityExceeded = errors.New("create_booking: daily limit reached for this appointment type")

	// ErrConflict is returned when a concurrent admission for the same day
	// and category was detected by the storage guard. Retrying the same
	// request once is safe.
	ErrConflict = errors.New("create_booking: concurrent booking conflict")

	// ErrInternal is returned on unexpected use case failures
	ErrInternal = errors.New("create_booking: internal error")
)
