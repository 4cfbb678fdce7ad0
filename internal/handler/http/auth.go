package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mobilenest/nestauth/internal/logger"
	"github.com/mobilenest/nestauth/models"
)

// credentialsRequest is the login payload. Both JSON bodies and classic
// form posts are accepted.
type credentialsRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// changePasswordRequest is the password-change payload.
type changePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// sessionResponse is the GET /api/auth/session body: the caller's current
// authentication state plus the consumed one-shot flash, if any.
type sessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	Role          models.Role   `json:"role"`
	DisplayName   string        `json:"display_name,omitempty"`
	Email         string        `json:"email,omitempty"`
	Flash         *models.Flash `json:"flash,omitempty"`
}

// logoutResponse points the caller at the login route after the session is
// destroyed. LoggedOut lets the login page show its signed-out notice.
type logoutResponse struct {
	RedirectTo models.Route `json:"redirect_to"`
	LoggedOut  bool         `json:"logged_out"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	creds, err := decodeCredentials(r)
	if err != nil {
		log.Err(err).Msg("malformed login request")
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	token := sessionToken(r)

	outcome, err := h.services.AuthService.Authenticate(ctx, token, creds.Identifier, creds.Password)
	if err != nil {
		// the service attached a user-facing flash to the session behind
		// outcome.Token (a freshly minted one for cookie-less callers);
		// consume it here so the message travels in this response instead
		// of lingering for the next request
		message := http.StatusText(statusFromError(err))
		if flash, ok := h.services.Sessions.TakeFlash(outcome.Token); ok {
			message = flash.Message
		}
		if outcome.Token != token {
			setSessionCookie(w, outcome.Token)
		}
		http.Error(w, message, statusFromError(err))
		return
	}

	setSessionCookie(w, outcome.Token)
	writeJSON(w, outcome, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	route := h.services.AuthService.Logout(ctx, sessionToken(r))

	clearSessionCookie(w)
	writeJSON(w, logoutResponse{RedirectTo: route, LoggedOut: true}, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("malformed password change request")
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	token := sessionToken(r)

	if err := h.services.AuthService.ChangePassword(ctx, token, req.OldPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		log.Err(err).Msg("password change rejected")
		message := http.StatusText(statusFromError(err))
		if flash, ok := h.services.Sessions.TakeFlash(token); ok {
			message = flash.Message
		}
		http.Error(w, message, statusFromError(err))
		return
	}

	var flash *models.Flash
	if f, ok := h.services.Sessions.TakeFlash(token); ok {
		flash = &f
	}
	writeJSON(w, sessionResponseFor(h, token, flash), http.StatusOK)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)

	var flash *models.Flash
	// cookie-less callers share the empty token; never surface state for it
	if token != "" {
		if f, ok := h.services.Sessions.TakeFlash(token); ok {
			flash = &f
		}
	}

	writeJSON(w, sessionResponseFor(h, token, flash), http.StatusOK)
}

// sessionResponseFor assembles the session view for token with the already
// consumed flash.
func sessionResponseFor(h *Handler, token string, flash *models.Flash) sessionResponse {
	sess, _ := h.services.Sessions.Get(token)
	resp := sessionResponse{
		Authenticated: sess.Authenticated(),
		Role:          sess.Role,
		Flash:         flash,
	}
	if resp.Authenticated {
		resp.DisplayName = sess.DisplayName
		resp.Email = sess.Email
	}
	return resp
}

// decodeCredentials reads the login payload from a JSON body or, for classic
// web form posts, from urlencoded form fields.
func decodeCredentials(r *http.Request) (credentialsRequest, error) {
	var creds credentialsRequest

	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			return credentialsRequest{}, err
		}
		return creds, nil
	}

	if err := r.ParseForm(); err != nil {
		return credentialsRequest{}, err
	}
	creds.Identifier = r.PostFormValue("identifier")
	creds.Password = r.PostFormValue("password")
	return creds, nil
}
