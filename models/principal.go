package models

import "time"

// Role is the authentication role carried by a session. A session holds
// exactly one role at a time; RoleAnonymous is the state of every session
// before a successful login and after logout.
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
)

// AccountStatus is the activation state of a user-store account.
// Administrator accounts carry no status gate.
type AccountStatus string

const (
	StatusActive    AccountStatus = "active"
	StatusInactive  AccountStatus = "inactive"
	StatusSuspended AccountStatus = "suspended"
)

// Principal represents a credential holder loaded from one of the two
// credential tables. The store populates it fully at the boundary so that
// no layer above ever touches raw rows.
//
// Sensitive fields must never be exposed outside trusted boundaries.
type Principal struct {
	// ID is the store-scoped unique identifier. Admin and user IDs come
	// from different sequences and are not cross-comparable.
	ID int64 `json:"-"`

	// Username is the unique login name within the principal's own store.
	Username string `json:"username"`

	// Email is unique within the principal's own store and is accepted
	// interchangeably with Username as a login identifier.
	Email string `json:"email"`

	// Credential is the stored password representation: either a bcrypt
	// hash (current format, recognisable by its $2a$/$2b$/$2y$ prefix) or
	// a legacy plaintext string. Never serialized.
	Credential string `json:"-"`

	// DisplayName is the non-sensitive human-readable name shown in UI.
	DisplayName string `json:"display_name"`

	// Status gates user-store logins. It is the zero value for principals
	// loaded from the admin store.
	Status AccountStatus `json:"-"`

	// CreatedAt is the account creation timestamp, used for auditing.
	CreatedAt time.Time `json:"-"`
}

// IsActive reports whether the account may authenticate. Admin principals
// have no status column and always pass.
func (p Principal) IsActive() bool {
	return p.Status == "" || p.Status == StatusActive
}
