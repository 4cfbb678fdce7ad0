package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mobilenest/nestauth/internal/logger"
	"github.com/mobilenest/nestauth/models"
)

// adminRepository is the SQL-backed implementation of [AdminRepository].
// It reads the "admins" table; administrators carry no account-status
// column, so every returned principal passes the activity gate.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type adminRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAdminRepository constructs an [AdminRepository] backed by the provided
// database connection and logger.
func NewAdminRepository(db *DB, logger *logger.Logger) AdminRepository {
	logger.Debug().Msg("creating admin repository")
	return &adminRepository{
		db:     db,
		logger: logger,
	}
}

// FindByIdentifier retrieves the administrator whose username or email
// matches identifier.
//
// Error handling:
//   - No matching row → [ErrAdminNotFound].
//   - Connection-level failure → wrapped as [ErrStoreUnavailable].
//   - Scan failure → wrapped as [ErrScanningRow].
func (r *adminRepository) FindByIdentifier(ctx context.Context, identifier string) (models.Principal, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindByIdentifier(r.db.Builder(), adminsTable, adminColumns, identifier)
	if err != nil {
		log.Err(err).Str("func", "*adminRepository.FindByIdentifier").Msg("error: building query")
		return models.Principal{}, err
	}

	var admin models.Principal
	row := r.db.QueryRowContext(ctx, query, args...)

	// scan found admin from db
	if err := row.Scan(&admin.ID, &admin.Username, &admin.Email, &admin.Credential, &admin.DisplayName, &admin.CreatedAt); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return models.Principal{}, ErrAdminNotFound
		case isUnavailable(err):
			log.Err(err).Str("func", "*adminRepository.FindByIdentifier").Msg("error: store unavailable")
			return models.Principal{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		default:
			log.Err(err).Str("func", "*adminRepository.FindByIdentifier").Msg("error: scanning error")
			return models.Principal{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
	}

	return admin, nil
}
