package memory

import (
	"sync"
	"time"

	"portal-auth/app/domain"
	"portal-auth/app/port"
)

// SessionStore is the in-process holder of session state, keyed by
// identity id. Sessions are copied on the way in and out so a caller can
// never observe a half-applied replacement.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() port.SessionStore {
	return &SessionStore{
		sessions: make(map[string]*domain.Session),
	}
}

// Get returns a copy of the tracked session for the identity.
func (s *SessionStore) Get(identityID string) (*domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[identityID]
	if !ok {
		return nil, false
	}
	copied := *session
	return &copied, true
}

// Replace installs the session whole. A logged-out session removes the
// entry instead of storing an empty record.
func (s *SessionStore) Replace(session *domain.Session) {
	if session == nil {
		return
	}
	if session.State == domain.StateLoggedOut {
		s.Clear(session.Identity.ID)
		return
	}

	copied := *session

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[copied.Identity.ID] = &copied
}

// Clear drops the entry for the identity; absent entries are a no-op.
func (s *SessionStore) Clear(identityID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, identityID)
}

// Touch advances the activity clock for a tracked session. Returns false
// when the identity has no authenticated session.
func (s *SessionStore) Touch(identityID string, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[identityID]
	if !ok || !session.IsAuthenticated() {
		return false
	}
	session.Touch(at)
	return true
}

// Active returns copies of every authenticated session for the idle
// sweeper.
func (s *SessionStore) Active() []*domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]*domain.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		if !session.IsAuthenticated() {
			continue
		}
		copied := *session
		active = append(active, &copied)
	}
	return active
}
