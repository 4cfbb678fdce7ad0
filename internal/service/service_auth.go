package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mobilenest/nestauth/internal/config"
	"github.com/mobilenest/nestauth/internal/logger"
	"github.com/mobilenest/nestauth/internal/session"
	"github.com/mobilenest/nestauth/internal/store"
	"github.com/mobilenest/nestauth/models"
)

// User-facing flash messages. Lookup misses and wrong passwords share one
// message so that responses cannot be used to enumerate accounts.
const (
	msgMissingCredentials = "Username/email and password are required."
	msgLoginFailed        = "Identifier or password incorrect."
	msgAccountInactive    = "Your account is inactive. Contact an administrator to activate it."
	msgSystemError        = "A system error occurred. Please try again later."
	msgPasswordChanged    = "Your password has been changed."
)

// minPasswordLength is the minimum accepted length for replacement
// passwords, carried over from the legacy system.
const minPasswordLength = 6

// authService is the concrete implementation of [AuthService].
//
// It owns no state of its own: credential data lives behind the
// repositories, session state behind the [session.Manager]. The service is
// safe for concurrent use.
type authService struct {
	resolver   *roleResolver
	users      store.UserRepository
	sessions   session.Manager
	bcryptCost int
	logger     *logger.Logger
}

// NewAuthService constructs an [AuthService] wired to the given storages and
// session manager, with security parameters from cfg.
func NewAuthService(storages *store.Storages, sessions session.Manager, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		resolver:   newRoleResolver(storages, cfg.ResolutionOrder, logger),
		users:      storages.UserRepository,
		sessions:   sessions,
		bcryptCost: cfg.BcryptCost,
		logger:     logger,
	}
}

// Authenticate runs the end-to-end login flow.
//
// On success the session behind token is replaced by a fresh authenticated
// one (Begin rotates the token), a success flash is set, and the redirect
// target is chosen: administrators always land on the admin dashboard,
// users on their recorded one-shot redirect or the home route.
//
// On any failure the session is left untouched except for an error flash;
// the returned outcome redirects back to the login route and keeps the
// caller's original token, or carries a freshly minted one when the caller
// arrived without a session. Infrastructure failures fail closed: the
// caller is not authenticated and sees a generic system error.
func (a *authService) Authenticate(ctx context.Context, token, identifier, password string) (models.LoginOutcome, error) {
	log := logger.FromContext(ctx)

	// cookie-less callers get a private token so their failure flash never
	// lands in a record shared with other anonymous callers
	if token == "" {
		token = session.NewToken()
	}

	failure := models.LoginOutcome{Succeeded: false, RedirectTo: models.RouteLogin, Token: token}

	if identifier == "" || password == "" {
		a.sessions.SetFlash(token, models.FlashError, msgMissingCredentials)
		return failure, ErrMissingCredentials
	}

	resolved, err := a.resolver.Resolve(ctx, identifier, password)
	if err != nil {
		switch {
		case errors.Is(err, ErrAccountInactive):
			log.Warn().Str("identifier", identifier).Msg("login rejected: account inactive")
			a.sessions.SetFlash(token, models.FlashError, msgAccountInactive)
		case errors.Is(err, ErrCredentialMismatch), errors.Is(err, ErrPrincipalNotFound):
			log.Warn().Str("identifier", identifier).Msg("login rejected: bad credentials")
			a.sessions.SetFlash(token, models.FlashError, msgLoginFailed)
		case errors.Is(err, store.ErrStoreUnavailable):
			log.Err(err).Msg("login failed closed: credential store unavailable")
			a.sessions.SetFlash(token, models.FlashError, msgSystemError)
		default:
			log.Err(err).Msg("unexpected error during principal resolution")
			a.sessions.SetFlash(token, models.FlashError, msgSystemError)
		}
		return failure, err
	}

	newToken, err := a.sessions.Begin(token, resolved.Role, resolved.Principal)
	if err != nil {
		log.Err(err).Msg("error establishing session")
		a.sessions.SetFlash(token, models.FlashError, msgSystemError)
		return failure, fmt.Errorf("error establishing session: %w", err)
	}

	a.sessions.SetFlash(newToken, models.FlashSuccess, fmt.Sprintf("Welcome back, %s!", resolved.Principal.DisplayName))

	redirect := models.RouteHome
	if resolved.Role == models.RoleAdmin {
		redirect = models.RouteAdminDashboard
	} else if recorded, ok := a.sessions.TakeLoginRedirect(newToken); ok {
		redirect = recorded
	}

	log.Info().
		Int64("principal_id", resolved.Principal.ID).
		Str("role", string(resolved.Role)).
		Msg("login succeeded")

	return models.LoginOutcome{
		Succeeded:  true,
		Role:       resolved.Role,
		RedirectTo: redirect,
		Token:      newToken,
	}, nil
}

// ChangePassword replaces the credential of the authenticated user behind
// token.
//
// The flow deliberately avoids the legacy plaintext fallback on the write
// side: whatever form the old credential had, the new one is always a
// bcrypt hash.
//
// Returns:
//   - ErrNotAuthenticated for anonymous sessions.
//   - ErrChangeNotSupported for administrator sessions (their credentials
//     are managed out of band).
//   - ErrPasswordTooShort / ErrPasswordConfirmMismatch on validation
//     failures. Validation runs before any store round trip.
//   - ErrCredentialMismatch when oldPassword does not verify.
//   - A wrapped store error when the lookup or update fails.
func (a *authService) ChangePassword(ctx context.Context, token, oldPassword, newPassword, confirmPassword string) error {
	log := logger.FromContext(ctx)

	sess, ok := a.sessions.Get(token)
	if !ok || !sess.Authenticated() {
		return ErrNotAuthenticated
	}
	if sess.Role == models.RoleAdmin {
		return ErrChangeNotSupported
	}

	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if newPassword != confirmPassword {
		return ErrPasswordConfirmMismatch
	}

	user, err := a.users.FindByID(ctx, sess.PrincipalID)
	if err != nil {
		log.Err(err).Int64("principal_id", sess.PrincipalID).Msg("password change: user lookup failed")
		return fmt.Errorf("user lookup failed: %w", err)
	}

	if !VerifyPassword(oldPassword, user.Credential) {
		log.Warn().Int64("principal_id", sess.PrincipalID).Msg("password change rejected: old password mismatch")
		return ErrCredentialMismatch
	}

	newHash, err := HashPassword(newPassword, a.bcryptCost)
	if err != nil {
		return err
	}

	if err := a.users.UpdatePassword(ctx, user.ID, newHash); err != nil {
		log.Err(err).Int64("principal_id", sess.PrincipalID).Msg("password change: update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	a.sessions.SetFlash(token, models.FlashSuccess, msgPasswordChanged)
	log.Info().Int64("principal_id", sess.PrincipalID).Msg("password changed")

	return nil
}

// Logout destroys the session behind token. It always succeeds; destroying
// an unknown token is a no-op. The caller redirects to the login route.
func (a *authService) Logout(ctx context.Context, token string) models.Route {
	log := logger.FromContext(ctx)

	if id, ok := a.sessions.CurrentPrincipal(token); ok {
		log.Info().Int64("principal_id", id).Msg("logout")
	}

	a.sessions.Destroy(token)
	return models.RouteLogin
}
