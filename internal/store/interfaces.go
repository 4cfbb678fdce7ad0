package store

import (
	"context"

	"github.com/mobilenest/nestauth/models"
)

// AdminRepository is the lookup surface over the administrators table.
type AdminRepository interface {
	// FindByIdentifier returns the administrator whose username or email
	// equals identifier, or ErrAdminNotFound.
	FindByIdentifier(ctx context.Context, identifier string) (models.Principal, error)
}

// UserRepository is the lookup and credential-update surface over the users
// table.
type UserRepository interface {
	// FindByIdentifier returns the user whose username or email equals
	// identifier, or ErrUserNotFound.
	FindByIdentifier(ctx context.Context, identifier string) (models.Principal, error)

	// FindByID returns the user with the given primary key, or
	// ErrUserNotFound. Used by flows that already hold an authenticated
	// principal id (e.g. password change).
	FindByID(ctx context.Context, id int64) (models.Principal, error)

	// UpdatePassword replaces the stored credential of the user with the
	// given hash. Returns ErrNothingUpdated when no row matched.
	UpdatePassword(ctx context.Context, id int64, newHash string) error
}
