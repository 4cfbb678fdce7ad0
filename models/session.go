package models

import "time"

// FlashKind distinguishes the two flash message categories surfaced to the
// next request.
type FlashKind string

const (
	FlashError   FlashKind = "error"
	FlashSuccess FlashKind = "success"
)

// Flash is a one-shot user-facing message attached to a session. It is
// consumed (read and cleared) exactly once by the next request.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

// Session is the server-side record of a caller's authentication state,
// keyed by an opaque token held in a cookie. A session starts Anonymous and
// is promoted to RoleUser or RoleAdmin only by a successful login.
type Session struct {
	// Token is the opaque session key. It is generated server-side and
	// never derived from principal data.
	Token string `json:"-"`

	// Role is the resolved authentication role. PrincipalID, DisplayName
	// and Email are meaningful only when Role is not RoleAnonymous.
	Role Role `json:"role"`

	PrincipalID int64  `json:"principal_id,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`

	// EstablishedAt is when the current role was assigned.
	EstablishedAt time.Time `json:"established_at"`

	// Flash holds at most one pending message; nil when consumed.
	Flash *Flash `json:"-"`

	// LoginRedirect is an optional one-shot route recorded before the
	// caller was sent to the login page, consumed by the next successful
	// user login.
	LoginRedirect Route `json:"-"`
}

// Authenticated reports whether the session carries a non-anonymous role.
func (s Session) Authenticated() bool {
	return s.Role == RoleUser || s.Role == RoleAdmin
}
