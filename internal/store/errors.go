package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrAdminNotFound is returned when no administrator row matches the
	// supplied login identifier.
	ErrAdminNotFound = errors.New("administrator was not found")

	// ErrUserNotFound is returned when no user row matches the supplied
	// login identifier.
	ErrUserNotFound = errors.New("user was not found")

	// ErrNothingUpdated is returned when an UPDATE completes without error
	// but affects zero rows, meaning the targeted account does not exist.
	ErrNothingUpdated = errors.New("no rows were updated")

	// ErrStoreUnavailable wraps infrastructure-level database failures
	// (connection loss, timeouts). The service layer treats it as a signal
	// to fail closed rather than as an authentication verdict.
	ErrStoreUnavailable = errors.New("credential store unavailable")
)

// Low-level database operation errors, wrapped by repository methods when a
// SQL-level operation fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrScanningRow is returned when scanning column values from a result
	// row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan principal row")
)
