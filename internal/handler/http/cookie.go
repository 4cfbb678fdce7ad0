// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MobileNest

package http

import "net/http"

// sessionCookieName is the name of the HttpOnly cookie carrying the opaque
// session token. The token is server-generated and never appears in request
// or response bodies.
const sessionCookieName = "nestauth_session"

// sessionToken extracts the session token from the request cookie. An absent
// cookie yields an empty token, which downstream code treats as a fresh
// anonymous session.
func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// setSessionCookie installs token as the caller's session cookie. Called
// after every operation that rotates or establishes a session.
func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie on the client.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
