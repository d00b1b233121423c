package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for a wrong username or password.
	// The two cases are deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for missing, malformed or expired tokens
	ErrInvalidToken = errors.New("invalid token")

	// ErrInternal is returned on unexpected failures
	ErrInternal = errors.New("internal error")
)
