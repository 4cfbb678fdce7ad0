package store

import (
	"context"
	"database/sql/driver"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUnavailable reports whether err represents an infrastructure-level
// failure of the credential store rather than a data-level outcome.
// Repository methods wrap such errors in [ErrStoreUnavailable] so that the
// service layer fails closed instead of treating them as "not found".
//
// Classified as unavailable:
//   - driver.ErrBadConn and context deadline/cancellation errors;
//   - PostgreSQL class 08 — connection exceptions;
//   - PostgreSQL class 57 — operator intervention (e.g. cannot connect now);
//   - PostgreSQL class 53 — insufficient resources.
//
// See https://www.postgresql.org/docs/current/errcodes-appendix.html for the
// full list of PostgreSQL error codes.
func isUnavailable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return true
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	// Class 08 — connection exceptions
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.SQLClientUnableToEstablishSQLConnection,
		pgerrcode.SQLServerRejectedEstablishmentOfSQLConnection:
		return true

	// Class 57 — operator intervention
	case pgerrcode.CannotConnectNow,
		pgerrcode.AdminShutdown,
		pgerrcode.CrashShutdown:
		return true

	// Class 53 — insufficient resources
	case pgerrcode.InsufficientResources,
		pgerrcode.TooManyConnections,
		pgerrcode.OutOfMemory:
		return true
	}

	return false
}
