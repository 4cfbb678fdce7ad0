// Package session owns all server-side session state. The manager is the
// sole writer of authentication state: handlers and services read sessions
// through it and never mutate records directly.
package session

import (
	"sync"
	"time"

	"github.com/mobilenest/nestauth/internal/logger"
	"github.com/mobilenest/nestauth/models"
)

// Manager is the session-store abstraction injected into the login
// orchestrator and the HTTP layer. Implementations must guarantee
// last-writer-wins atomicity per token; operations on unrelated tokens
// never block each other beyond short critical sections.
type Manager interface {
	// Begin establishes an authenticated session for principal with the
	// given role and returns a freshly generated token. Any session state
	// behind oldToken is consumed: a pending login redirect is carried
	// over to the new session, everything else (including any prior
	// flash) is discarded. Begin is all-or-nothing: no partially mutated
	// record is ever observable.
	Begin(oldToken string, role models.Role, principal models.Principal) (string, error)

	// Get returns a snapshot of the session behind token. Unknown or
	// expired tokens yield a fresh anonymous snapshot and ok=false.
	Get(token string) (models.Session, bool)

	// SetFlash stores exactly one pending message on the session,
	// overwriting any previous unconsumed flash. The session record is
	// created on first access if needed.
	SetFlash(token string, kind models.FlashKind, message string)

	// TakeFlash returns and clears the pending flash. A second call
	// returns ok=false.
	TakeFlash(token string) (models.Flash, bool)

	// SetLoginRedirect records a one-shot route to return to after the
	// next successful user login.
	SetLoginRedirect(token string, route models.Route)

	// TakeLoginRedirect returns and clears the recorded route. A second
	// call returns ok=false.
	TakeLoginRedirect(token string) (models.Route, bool)

	// Refresh updates the principal-level display fields after a profile
	// edit. It is a no-op on anonymous or unknown sessions.
	Refresh(token string, displayName, email string)

	// Destroy clears all session fields and invalidates the token.
	// Subsequent reads behave as a fresh anonymous session.
	Destroy(token string)

	// CurrentRole reports the role behind token; RoleAnonymous for
	// unknown, expired or destroyed tokens.
	CurrentRole(token string) models.Role

	// CurrentPrincipal reports the authenticated principal id, with
	// ok=false when the session is anonymous.
	CurrentPrincipal(token string) (int64, bool)
}

// memoryManager is the in-process [Manager] implementation: a token-keyed
// map guarded by a single RWMutex. Critical sections are tiny (no I/O), so
// one lock is enough for the request rates this server sees.
type memoryManager struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session

	ttl    time.Duration
	now    func() time.Time
	logger *logger.Logger
}

// NewManager constructs the in-memory session manager. ttl of zero disables
// expiry.
func NewManager(ttl time.Duration, log *logger.Logger) Manager {
	log.Debug().Dur("ttl", ttl).Msg("creating session manager")
	return &memoryManager{
		sessions: make(map[string]*models.Session),
		ttl:      ttl,
		now:      time.Now,
		logger:   log,
	}
}

// live returns the session behind token, treating expired records as absent
// and deleting them. Callers must hold mu.
func (m *memoryManager) live(token string) (*models.Session, bool) {
	s, ok := m.sessions[token]
	if !ok {
		return nil, false
	}
	if m.ttl > 0 && m.now().Sub(s.EstablishedAt) > m.ttl {
		delete(m.sessions, token)
		return nil, false
	}
	return s, true
}

// ensure returns the live session behind token, creating a fresh anonymous
// record when none exists. Callers must hold mu for writing.
func (m *memoryManager) ensure(token string) *models.Session {
	if s, ok := m.live(token); ok {
		return s
	}
	s := &models.Session{
		Token:         token,
		Role:          models.RoleAnonymous,
		EstablishedAt: m.now(),
	}
	m.sessions[token] = s
	return s
}

func (m *memoryManager) Begin(oldToken string, role models.Role, principal models.Principal) (string, error) {
	token := NewToken()

	m.mu.Lock()
	defer m.mu.Unlock()

	// carry the one-shot redirect across the token rotation
	var redirect models.Route
	if old, ok := m.live(oldToken); ok {
		redirect = old.LoginRedirect
	}
	delete(m.sessions, oldToken)

	// the record is fully built before it becomes visible
	m.sessions[token] = &models.Session{
		Token:         token,
		Role:          role,
		PrincipalID:   principal.ID,
		DisplayName:   principal.DisplayName,
		Email:         principal.Email,
		EstablishedAt: m.now(),
		LoginRedirect: redirect,
	}

	return token, nil
}

func (m *memoryManager) Get(token string) (models.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if s, ok := m.sessions[token]; ok {
		if m.ttl == 0 || m.now().Sub(s.EstablishedAt) <= m.ttl {
			return *s, true
		}
	}
	return models.Session{Token: token, Role: models.RoleAnonymous}, false
}

func (m *memoryManager) SetFlash(token string, kind models.FlashKind, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.ensure(token)
	s.Flash = &models.Flash{Kind: kind, Message: message}
}

func (m *memoryManager) TakeFlash(token string) (models.Flash, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.live(token)
	if !ok || s.Flash == nil {
		return models.Flash{}, false
	}
	flash := *s.Flash
	s.Flash = nil
	return flash, true
}

func (m *memoryManager) SetLoginRedirect(token string, route models.Route) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.ensure(token)
	s.LoginRedirect = route
}

func (m *memoryManager) TakeLoginRedirect(token string) (models.Route, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.live(token)
	if !ok || s.LoginRedirect == "" {
		return "", false
	}
	route := s.LoginRedirect
	s.LoginRedirect = ""
	return route, true
}

func (m *memoryManager) Refresh(token string, displayName, email string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.live(token)
	if !ok || !s.Authenticated() {
		return
	}
	s.DisplayName = displayName
	s.Email = email
}

func (m *memoryManager) Destroy(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, token)
}

func (m *memoryManager) CurrentRole(token string) models.Role {
	s, ok := m.Get(token)
	if !ok {
		return models.RoleAnonymous
	}
	return s.Role
}

func (m *memoryManager) CurrentPrincipal(token string) (int64, bool) {
	s, ok := m.Get(token)
	if !ok || !s.Authenticated() {
		return 0, false
	}
	return s.PrincipalID, true
}
