package service

import (
	"context"

	"github.com/mobilenest/nestauth/models"
)

// AuthService is the login orchestrator: the single entry point the
// transport layer calls for authentication state changes. It composes the
// credential store, the password verifier, the role resolver, and the
// session manager.
type AuthService interface {
	// Authenticate verifies identifier/password, establishes a session on
	// success, and returns the outcome with the redirect target and the
	// (possibly rotated) session token. User-facing feedback is attached
	// to the session as a one-shot flash.
	Authenticate(ctx context.Context, token, identifier, password string) (models.LoginOutcome, error)

	// ChangePassword re-verifies oldPassword for the session's principal
	// and replaces the stored credential with a fresh hash of newPassword.
	ChangePassword(ctx context.Context, token, oldPassword, newPassword, confirmPassword string) error

	// Logout destroys the session behind token and returns the route the
	// caller should redirect to.
	Logout(ctx context.Context, token string) models.Route
}
