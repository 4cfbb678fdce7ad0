package store

import (
	"context"
	"fmt"

	"github.com/mobilenest/nestauth/internal/config"
	"github.com/mobilenest/nestauth/internal/logger"
)

// Storages bundles the repositories the service layer depends on.
type Storages struct {
	AdminRepository AdminRepository
	UserRepository  UserRepository
}

// NewStorages opens the configured database backend, applies pending
// migrations, and wires both credential repositories over the shared
// connection.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.DB.Driver {
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	}
	if err != nil {
		return nil, fmt.Errorf("error opening credential store: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating credential store: %w", err)
	}

	return &Storages{
		AdminRepository: NewAdminRepository(db, log),
		UserRepository:  NewUserRepository(db, log),
	}, nil
}
