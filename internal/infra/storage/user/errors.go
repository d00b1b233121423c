package user

import "errors"

var (
	// ErrUserNotFound is returned when no user matches the query
	ErrUserNotFound = errors.New("user.repository: user not found")

	// ErrDuplicateUsername is returned when an insert collides with an
	// existing username
	ErrDuplicateUsername = errors.New("user.repository: username already exists")

	// ErrBuildQuery is returned when building the SQL query fails
	ErrBuildQuery = errors.New("user.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails
	ErrExecQuery = errors.New("user.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("user.repository: failed to scan row")
)
