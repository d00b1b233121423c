package next_available

import "errors"

var (
	// ErrInternal is returned on unexpected use case failures
	ErrInternal = errors.New("next_available: internal error")
)
