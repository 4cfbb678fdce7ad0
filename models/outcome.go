package models

// Route is a symbolic route identifier returned to the presentation layer.
// The core never constructs URL strings; mapping routes to concrete paths
// is the caller's concern.
type Route string

const (
	RouteLogin          Route = "login"
	RouteHome           Route = "home"
	RouteAdminDashboard Route = "admin-dashboard"
)

// LoginOutcome is the result of an authentication attempt: whether it
// succeeded, the role that was established, and where the caller should be
// redirected next.
type LoginOutcome struct {
	Succeeded  bool  `json:"succeeded"`
	Role       Role  `json:"role,omitempty"`
	RedirectTo Route `json:"redirect_to"`

	// Token is the session token the caller should hold from now on.
	// Begin rotates it on success; on failure it is the caller's original
	// token. Delivered via cookie, never in the response body.
	Token string `json:"-"`
}
