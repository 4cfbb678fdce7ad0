package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/mobilenest/nestauth/internal/logger"
	"github.com/mobilenest/nestauth/migrations"
)

// DB wraps the shared *sql.DB handle together with the placeholder-aware
// squirrel statement builder and the goose dialect for the active backend.
type DB struct {
	*sql.DB

	builder sq.StatementBuilderType
	dialect string
	logger  *logger.Logger
}

// Migrate applies all embedded goose migrations against the wrapped
// connection using the backend's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// Builder returns the statement builder preconfigured with the backend's
// placeholder format ($n for PostgreSQL, ? for SQLite).
func (db *DB) Builder() sq.StatementBuilderType {
	return db.builder
}
