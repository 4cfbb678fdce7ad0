// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MobileNest

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilenest/nestauth/internal/logger"
	"github.com/mobilenest/nestauth/internal/service"
	"github.com/mobilenest/nestauth/internal/session"
	"github.com/mobilenest/nestauth/models"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	authenticateFn   func(ctx context.Context, token, identifier, password string) (models.LoginOutcome, error)
	changePasswordFn func(ctx context.Context, token, oldPassword, newPassword, confirmPassword string) error
	logoutFn         func(ctx context.Context, token string) models.Route
}

func (m *mockAuthService) Authenticate(ctx context.Context, token, identifier, password string) (models.LoginOutcome, error) {
	return m.authenticateFn(ctx, token, identifier, password)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, token, oldPassword, newPassword, confirmPassword string) error {
	return m.changePasswordFn(ctx, token, oldPassword, newPassword, confirmPassword)
}

func (m *mockAuthService) Logout(ctx context.Context, token string) models.Route {
	return m.logoutFn(ctx, token)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newHandlerWithAuth builds a Handler over the given AuthService mock and a
// real in-memory session manager, returned for test seeding.
func newHandlerWithAuth(t *testing.T, auth service.AuthService) (*Handler, session.Manager) {
	t.Helper()
	sessions := session.NewManager(0, logger.Nop())
	svcs := &service.Services{
		AuthService: auth,
		Sessions:    sessions,
	}
	return NewHandler(svcs, logger.Nop()), sessions
}

func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func withSessionCookie(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	return req
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_SuccessJSON(t *testing.T) {
	auth := &mockAuthService{
		authenticateFn: func(_ context.Context, token, identifier, password string) (models.LoginOutcome, error) {
			assert.Equal(t, "alice", identifier)
			assert.Equal(t, "plainpw", password)
			return models.LoginOutcome{
				Succeeded:  true,
				Role:       models.RoleUser,
				RedirectTo: models.RouteHome,
				Token:      "rotated-token",
			}, nil
		},
	}
	h, _ := newHandlerWithAuth(t, auth)

	body := jsonBody(t, credentialsRequest{Identifier: "alice", Password: "plainpw"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookie := findCookie(t, rec, sessionCookieName)
	require.NotNil(t, cookie, "successful login must set the session cookie")
	assert.Equal(t, "rotated-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)

	var outcome models.LoginOutcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	assert.True(t, outcome.Succeeded)
	assert.Equal(t, models.RouteHome, outcome.RedirectTo)
	assert.Empty(t, outcome.Token, "token must never appear in the response body")
	assert.NotContains(t, rec.Body.String(), "rotated-token")
}

func TestLogin_SuccessFormPost(t *testing.T) {
	auth := &mockAuthService{
		authenticateFn: func(_ context.Context, _, identifier, password string) (models.LoginOutcome, error) {
			assert.Equal(t, "root", identifier)
			assert.Equal(t, "adminpw", password)
			return models.LoginOutcome{
				Succeeded:  true,
				Role:       models.RoleAdmin,
				RedirectTo: models.RouteAdminDashboard,
				Token:      "admin-token",
			}, nil
		},
	}
	h, _ := newHandlerWithAuth(t, auth)

	form := url.Values{"identifier": {"root"}, "password": {"adminpw"}}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var outcome models.LoginOutcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	assert.Equal(t, models.RouteAdminDashboard, outcome.RedirectTo)
}

func TestLogin_FailureEchoesFlash(t *testing.T) {
	const failureMessage = "Identifier or password incorrect."

	h, sessions := newHandlerWithAuth(t, &mockAuthService{
		authenticateFn: func(_ context.Context, token, _, _ string) (models.LoginOutcome, error) {
			// the real service attaches the user-facing message as a flash
			return models.LoginOutcome{Succeeded: false, RedirectTo: models.RouteLogin, Token: token},
				service.ErrCredentialMismatch
		},
	})
	sessions.SetFlash("visitor-token", models.FlashError, failureMessage)

	body := jsonBody(t, credentialsRequest{Identifier: "alice", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.login(rec, withSessionCookie(req, "visitor-token"))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), failureMessage)

	assert.Nil(t, findCookie(t, rec, sessionCookieName), "failed login must not touch the cookie")

	_, ok := sessions.TakeFlash("visitor-token")
	assert.False(t, ok, "the flash must be consumed by the response")
}

func TestLogin_CookielessFailureSetsMintedCookie(t *testing.T) {
	const failureMessage = "Identifier or password incorrect."

	sessions := session.NewManager(0, logger.Nop())
	auth := &mockAuthService{
		authenticateFn: func(_ context.Context, token, _, _ string) (models.LoginOutcome, error) {
			require.Empty(t, token, "request carried no cookie")
			// the real service mints a private token for cookie-less
			// callers and flashes the failure there
			sessions.SetFlash("minted-token", models.FlashError, failureMessage)
			return models.LoginOutcome{Succeeded: false, RedirectTo: models.RouteLogin, Token: "minted-token"},
				service.ErrCredentialMismatch
		},
	}
	h := NewHandler(&service.Services{AuthService: auth, Sessions: sessions}, logger.Nop())

	body := jsonBody(t, credentialsRequest{Identifier: "alice", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), failureMessage)

	cookie := findCookie(t, rec, sessionCookieName)
	require.NotNil(t, cookie, "the minted token must reach the caller")
	assert.Equal(t, "minted-token", cookie.Value)

	_, ok := sessions.TakeFlash("")
	assert.False(t, ok, "no state under the shared empty token")
}

func TestLogin_InactiveAccountStatus(t *testing.T) {
	h, _ := newHandlerWithAuth(t, &mockAuthService{
		authenticateFn: func(_ context.Context, token, _, _ string) (models.LoginOutcome, error) {
			return models.LoginOutcome{Succeeded: false, RedirectTo: models.RouteLogin, Token: token},
				service.ErrAccountInactive
		},
	})

	body := jsonBody(t, credentialsRequest{Identifier: "carol", Password: "carolpw"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLogin_MalformedJSON(t *testing.T) {
	h, _ := newHandlerWithAuth(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// logout
// ─────────────────────────────────────────────

func TestLogout_ClearsCookie(t *testing.T) {
	var destroyedToken string
	h, _ := newHandlerWithAuth(t, &mockAuthService{
		logoutFn: func(_ context.Context, token string) models.Route {
			destroyedToken = token
			return models.RouteLogin
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()

	h.logout(rec, withSessionCookie(req, "user-token"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-token", destroyedToken)

	cookie := findCookie(t, rec, sessionCookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge, "logout must expire the cookie")

	var resp logoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.RouteLogin, resp.RedirectTo)
	assert.True(t, resp.LoggedOut)
}

// ─────────────────────────────────────────────
// changePassword
// ─────────────────────────────────────────────

func TestChangePassword_Success(t *testing.T) {
	sessions := session.NewManager(0, logger.Nop())
	auth := &mockAuthService{
		changePasswordFn: func(_ context.Context, token, oldPassword, newPassword, confirmPassword string) error {
			assert.Equal(t, "user-token", token)
			assert.Equal(t, "oldpw", oldPassword)
			assert.Equal(t, "fresh-secret", newPassword)
			assert.Equal(t, "fresh-secret", confirmPassword)
			sessions.SetFlash(token, models.FlashSuccess, "Your password has been changed.")
			return nil
		},
	}
	h := NewHandler(&service.Services{AuthService: auth, Sessions: sessions}, logger.Nop())

	body := jsonBody(t, changePasswordRequest{OldPassword: "oldpw", NewPassword: "fresh-secret", ConfirmPassword: "fresh-secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/password", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.changePassword(rec, withSessionCookie(req, "user-token"))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Flash)
	assert.Equal(t, models.FlashSuccess, resp.Flash.Kind)
}

func TestChangePassword_NotAuthenticated(t *testing.T) {
	h, _ := newHandlerWithAuth(t, &mockAuthService{
		changePasswordFn: func(_ context.Context, _, _, _, _ string) error {
			return service.ErrNotAuthenticated
		},
	})

	body := jsonBody(t, changePasswordRequest{OldPassword: "a", NewPassword: "newpassword", ConfirmPassword: "newpassword"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/password", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.changePassword(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePassword_ValidationStatus(t *testing.T) {
	for _, tc := range []struct {
		name string
		err  error
		want int
	}{
		{"too short", service.ErrPasswordTooShort, http.StatusBadRequest},
		{"confirm mismatch", service.ErrPasswordConfirmMismatch, http.StatusBadRequest},
		{"old password wrong", service.ErrCredentialMismatch, http.StatusUnauthorized},
		{"admin session", service.ErrChangeNotSupported, http.StatusForbidden},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newHandlerWithAuth(t, &mockAuthService{
				changePasswordFn: func(_ context.Context, _, _, _, _ string) error { return tc.err },
			})

			body := jsonBody(t, changePasswordRequest{OldPassword: "a", NewPassword: "b", ConfirmPassword: "c"})
			req := httptest.NewRequest(http.MethodPost, "/api/auth/password", strings.NewReader(body))
			rec := httptest.NewRecorder()

			h.changePassword(rec, withSessionCookie(req, "user-token"))

			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

// ─────────────────────────────────────────────
// session
// ─────────────────────────────────────────────

func TestSession_AnonymousWithoutCookie(t *testing.T) {
	h, _ := newHandlerWithAuth(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	rec := httptest.NewRecorder()

	h.session(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Authenticated)
	assert.Equal(t, models.RoleAnonymous, resp.Role)
	assert.Nil(t, resp.Flash)
}

func TestSession_AuthenticatedWithFlash(t *testing.T) {
	h, sessions := newHandlerWithAuth(t, &mockAuthService{})

	token, err := sessions.Begin("", models.RoleUser, models.Principal{ID: 10, DisplayName: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	sessions.SetFlash(token, models.FlashSuccess, "Welcome back, Alice!")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	rec := httptest.NewRecorder()

	h.session(rec, withSessionCookie(req, token))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Authenticated)
	assert.Equal(t, models.RoleUser, resp.Role)
	assert.Equal(t, "Alice", resp.DisplayName)
	require.NotNil(t, resp.Flash)
	assert.Equal(t, "Welcome back, Alice!", resp.Flash.Message)

	// the flash is one-shot: a second read comes back clean
	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	h.session(rec2, withSessionCookie(req2, token))

	var resp2 sessionResponse
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &resp2))
	assert.Nil(t, resp2.Flash)
}
