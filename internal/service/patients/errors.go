package patients

import "errors"

var (
	// ErrPatientNotFound is returned when no patient has the folder number
	ErrPatientNotFound = errors.New("patient not found")

	// ErrInvalidFolderNumber is returned for folder numbers that do not
	// match the hospital's format
	ErrInvalidFolderNumber = errors.New("invalid folder number")

	// ErrInternal is returned on unexpected storage failures
	ErrInternal = errors.New("internal error")
)
