package session

import "github.com/google/uuid"

// NewToken generates an opaque session token. UUIDv7 keeps tokens sortable
// by creation time in logs; the random v4 fallback covers the rare clock
// failure path of uuid.NewV7.
//
// Exported so that callers holding no session yet can mint a private token
// to attach transient state (e.g. a login-failure flash) to, instead of
// sharing the empty-token record.
func NewToken() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
