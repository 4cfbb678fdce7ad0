package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mobilenest/nestauth/internal/config"
	"github.com/mobilenest/nestauth/internal/logger"
	"github.com/mobilenest/nestauth/internal/store"
	"github.com/mobilenest/nestauth/models"
)

// ResolvedPrincipal couples an authenticated principal with the role its
// credential table implies.
type ResolvedPrincipal struct {
	Role      models.Role
	Principal models.Principal
}

// roleResolver decides which credential table an identifier belongs to and
// verifies the password against the matching row.
//
// The two tables are consulted in a configurable order (admin-first by
// default) because the data model does not enforce disjoint identifier
// namespaces. A hit in the first table is always terminal: a wrong password
// there never cascades into a lookup in the second table.
type roleResolver struct {
	admins store.AdminRepository
	users  store.UserRepository
	order  string
	logger *logger.Logger
}

func newRoleResolver(storages *store.Storages, order string, logger *logger.Logger) *roleResolver {
	if order == "" {
		order = config.ResolveAdminFirst
	}
	return &roleResolver{
		admins: storages.AdminRepository,
		users:  storages.UserRepository,
		order:  order,
		logger: logger,
	}
}

// Resolve looks up identifier in both credential tables in the configured
// order and verifies password against the first hit.
//
// Returns the resolved principal or:
//   - ErrCredentialMismatch when a row matched but the password did not.
//   - ErrAccountInactive when a user row matched but its status forbids
//     login; the password is not inspected in that case.
//   - ErrPrincipalNotFound when neither table has the identifier.
//   - A wrapped store.ErrStoreUnavailable on infrastructure failure.
func (r *roleResolver) Resolve(ctx context.Context, identifier, password string) (ResolvedPrincipal, error) {
	lookups := []func(context.Context, string, string) (ResolvedPrincipal, error){r.resolveAdmin, r.resolveUser}
	if r.order == config.ResolveUserFirst {
		lookups[0], lookups[1] = lookups[1], lookups[0]
	}

	for _, lookup := range lookups {
		resolved, err := lookup(ctx, identifier, password)
		if err == nil {
			return resolved, nil
		}
		// a miss in one table falls through to the next; everything else
		// (mismatch, inactive, store failure) is terminal
		if errors.Is(err, store.ErrAdminNotFound) || errors.Is(err, store.ErrUserNotFound) {
			continue
		}
		return ResolvedPrincipal{}, err
	}

	return ResolvedPrincipal{}, ErrPrincipalNotFound
}

func (r *roleResolver) resolveAdmin(ctx context.Context, identifier, password string) (ResolvedPrincipal, error) {
	admin, err := r.admins.FindByIdentifier(ctx, identifier)
	if err != nil {
		return ResolvedPrincipal{}, fmt.Errorf("admin lookup failed: %w", err)
	}

	if !VerifyPassword(password, admin.Credential) {
		return ResolvedPrincipal{}, ErrCredentialMismatch
	}

	return ResolvedPrincipal{Role: models.RoleAdmin, Principal: admin}, nil
}

func (r *roleResolver) resolveUser(ctx context.Context, identifier, password string) (ResolvedPrincipal, error) {
	user, err := r.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		return ResolvedPrincipal{}, fmt.Errorf("user lookup failed: %w", err)
	}

	// status gate comes first: a correct password never rescues a
	// deactivated account
	if !user.IsActive() {
		return ResolvedPrincipal{}, ErrAccountInactive
	}

	if !VerifyPassword(password, user.Credential) {
		return ResolvedPrincipal{}, ErrCredentialMismatch
	}

	return ResolvedPrincipal{Role: models.RoleUser, Principal: user}, nil
}
