package service

import "errors"

// Sentinel errors returned by the authentication services. Callers match
// against them with [errors.Is]; the user-facing flash messages are chosen
// separately so that none of these leak account-enumeration detail.
var (
	// ErrMissingCredentials is returned when the identifier or password is
	// empty.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrCredentialMismatch is returned when a principal was found but the
	// supplied password does not verify against the stored credential.
	ErrCredentialMismatch = errors.New("credential mismatch")

	// ErrPrincipalNotFound is returned when the identifier matches neither
	// credential table. Surfaced to users with the same message as
	// ErrCredentialMismatch.
	ErrPrincipalNotFound = errors.New("principal not found")

	// ErrAccountInactive is returned when a user-store account exists but
	// its status forbids login. Detected before any password verification.
	ErrAccountInactive = errors.New("account inactive")

	// ErrNotAuthenticated is returned when an operation requires an
	// authenticated session and the supplied token is anonymous.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrChangeNotSupported is returned when a password change is requested
	// for a session whose principal has no updatable credential store
	// (administrator accounts).
	ErrChangeNotSupported = errors.New("password change not supported for this account")

	// ErrPasswordTooShort is returned when the replacement password is
	// shorter than the minimum length.
	ErrPasswordTooShort = errors.New("new password is too short")

	// ErrPasswordConfirmMismatch is returned when the replacement password
	// and its confirmation differ.
	ErrPasswordConfirmMismatch = errors.New("new password and confirmation do not match")
)
