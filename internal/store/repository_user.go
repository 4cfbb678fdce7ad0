package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mobilenest/nestauth/internal/logger"
	"github.com/mobilenest/nestauth/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles customer account lookup and credential replacement against the
// "users" table.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// FindByIdentifier retrieves the user whose username or email matches
// identifier, including the account_status column that gates login.
//
// Error handling:
//   - No matching row → [ErrUserNotFound].
//   - Connection-level failure → wrapped as [ErrStoreUnavailable].
//   - Scan failure → wrapped as [ErrScanningRow].
func (r *userRepository) FindByIdentifier(ctx context.Context, identifier string) (models.Principal, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindByIdentifier(r.db.Builder(), usersTable, userColumns, identifier)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindByIdentifier").Msg("error: building query")
		return models.Principal{}, err
	}

	var user models.Principal
	row := r.db.QueryRowContext(ctx, query, args...)

	// scan found user from db
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Credential, &user.DisplayName, &user.Status, &user.CreatedAt); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return models.Principal{}, ErrUserNotFound
		case isUnavailable(err):
			log.Err(err).Str("func", "*userRepository.FindByIdentifier").Msg("error: store unavailable")
			return models.Principal{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		default:
			log.Err(err).Str("func", "*userRepository.FindByIdentifier").Msg("error: scanning error")
			return models.Principal{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
	}

	return user, nil
}

// FindByID retrieves the user with the given primary key. Error handling
// mirrors FindByIdentifier.
func (r *userRepository) FindByID(ctx context.Context, id int64) (models.Principal, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserByID(r.db.Builder(), id)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindByID").Msg("error: building query")
		return models.Principal{}, err
	}

	var user models.Principal
	row := r.db.QueryRowContext(ctx, query, args...)

	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Credential, &user.DisplayName, &user.Status, &user.CreatedAt); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return models.Principal{}, ErrUserNotFound
		case isUnavailable(err):
			log.Err(err).Str("func", "*userRepository.FindByID").Msg("error: store unavailable")
			return models.Principal{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		default:
			log.Err(err).Str("func", "*userRepository.FindByID").Msg("error: scanning error")
			return models.Principal{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
	}

	return user, nil
}

// UpdatePassword replaces the stored credential of the user identified by id
// with newHash. The caller is responsible for hashing: this method never
// inspects the value it writes.
//
// Error handling:
//   - Zero affected rows → [ErrNothingUpdated].
//   - Connection-level failure → wrapped as [ErrStoreUnavailable].
func (r *userRepository) UpdatePassword(ctx context.Context, id int64, newHash string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserPassword(r.db.Builder(), id, newHash)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("error: building query")
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUnavailable(err) {
			log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("error: store unavailable")
			return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("error: executing statement")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNothingUpdated
	}

	return nil
}
