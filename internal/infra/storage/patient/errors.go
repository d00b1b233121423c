package patient

import "errors"

var (
	// ErrPatientNotFound is returned when no patient matches the query
	ErrPatientNotFound = errors.New("patient.repository: patient not found")

	// ErrDuplicateFolderNumber is returned when an insert collides with an
	// existing folder number
	ErrDuplicateFolderNumber = errors.New("patient.repository: folder number already exists")

	// ErrBuildQuery is returned when building the SQL query fails
	ErrBuildQuery = errors.New("patient.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails
	ErrExecQuery = errors.New("patient.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("patient.repository: failed to scan row")
)
