package domain

import (
	"fmt"
	"time"
)

// SessionState is the terminal state of the session lifecycle machine.
type SessionState string

const (
	// StateLoggedOut means no authenticated identity is held locally.
	StateLoggedOut SessionState = "logged_out"
	// StateAuthenticated means identity, role and profile are all resolved.
	StateAuthenticated SessionState = "authenticated"
	// StateAuthenticatedDegraded means the identity and role are known but
	// the profile record could not be found yet. Callers must render
	// profile-dependent data as pending, never crash.
	StateAuthenticatedDegraded SessionState = "authenticated_degraded"
)

// Session is the locally held authentication state for one identity.
// It is only ever replaced whole at the end of a completed action chain,
// never mutated incrementally, so readers cannot observe torn state.
type Session struct {
	Identity       Identity      `json:"identity"`
	Role           CanonicalRole `json:"role"`
	Profile        *Profile      `json:"profile,omitempty"`
	State          SessionState  `json:"state"`
	AccessToken    string        `json:"-"`
	RefreshToken   string        `json:"-"`
	ExpiresAt      time.Time     `json:"expires_at"`
	CreatedAt      time.Time     `json:"created_at"`
	LastActivityAt time.Time     `json:"last_activity_at"`
}

// NewAuthenticatedSession builds a session from a verified remote session,
// a normalized role and an optionally resolved profile. A nil profile
// yields the degraded state; a missing role is invalid.
func NewAuthenticatedSession(remote *RemoteSession, role CanonicalRole, profile *Profile, now time.Time) (*Session, error) {
	if remote == nil {
		return nil, fmt.Errorf("remote session is required")
	}
	if !role.Valid() {
		return nil, fmt.Errorf("canonical role is required, got %q", role)
	}

	state := StateAuthenticated
	if profile == nil {
		state = StateAuthenticatedDegraded
	}

	return &Session{
		Identity:       remote.Identity,
		Role:           role,
		Profile:        profile,
		State:          state,
		AccessToken:    remote.AccessToken,
		RefreshToken:   remote.RefreshToken,
		ExpiresAt:      remote.ExpiresAt,
		CreatedAt:      now,
		LastActivityAt: now,
	}, nil
}

// NewLoggedOutSession is the explicit empty state.
func NewLoggedOutSession() *Session {
	return &Session{State: StateLoggedOut}
}

// IsAuthenticated returns true for both the full and degraded states.
func (s *Session) IsAuthenticated() bool {
	return s.State == StateAuthenticated || s.State == StateAuthenticatedDegraded
}

// Degraded returns true when the role is known but the profile is missing.
func (s *Session) Degraded() bool {
	return s.State == StateAuthenticatedDegraded
}

// Touch records a qualifying user interaction.
func (s *Session) Touch(at time.Time) {
	if at.After(s.LastActivityAt) {
		s.LastActivityAt = at
	}
}

// IdleFor returns how long the session has been without activity.
func (s *Session) IdleFor(now time.Time) time.Duration {
	return now.Sub(s.LastActivityAt)
}

// SessionSnapshot is the persisted mirror of a session, minus the timeout
// bookkeeping. It exists only to avoid a loading flash on reload; it is
// never the source of truth and must be re-verified against the remote
// identity service before being trusted.
type SessionSnapshot struct {
	Identity     Identity      `json:"identity"`
	Role         CanonicalRole `json:"role"`
	Profile      *Profile      `json:"profile,omitempty"`
	State        SessionState  `json:"state"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresAt    time.Time     `json:"expires_at"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Snapshot produces the mirror payload for an authenticated session.
func (s *Session) Snapshot() *SessionSnapshot {
	return &SessionSnapshot{
		Identity:     s.Identity,
		Role:         s.Role,
		Profile:      s.Profile,
		State:        s.State,
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    s.ExpiresAt,
		CreatedAt:    s.CreatedAt,
	}
}

// Restore rebuilds an equivalent session from the mirror payload. The
// activity clock restarts at now.
func (sn *SessionSnapshot) Restore(now time.Time) *Session {
	return &Session{
		Identity:       sn.Identity,
		Role:           sn.Role,
		Profile:        sn.Profile,
		State:          sn.State,
		AccessToken:    sn.AccessToken,
		RefreshToken:   sn.RefreshToken,
		ExpiresAt:      sn.ExpiresAt,
		CreatedAt:      sn.CreatedAt,
		LastActivityAt: now,
	}
}
