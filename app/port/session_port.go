package port

//go:generate mockgen -source=session_port.go -destination=../mocks/mock_session_port.go

import (
	"context"
	"time"

	"portal-auth/app/domain"
)

// SessionStore holds the locally owned session state, keyed by identity
// id. Sessions are replaced whole at the end of a completed action chain;
// the store never exposes a partially updated session.
type SessionStore interface {
	Get(identityID string) (*domain.Session, bool)
	Replace(session *domain.Session)
	Clear(identityID string)
	// Touch records an interaction signal; returns false when no
	// authenticated session is tracked for the identity.
	Touch(identityID string, at time.Time) bool
	// Active lists the currently authenticated sessions for the sweeper.
	Active() []*domain.Session
}

// SessionMirror is the persisted copy of session state used to avoid a
// loading flash on reload. Never the source of truth: it must be cleared
// whenever the session is destroyed and re-verified before being trusted.
type SessionMirror interface {
	Write(ctx context.Context, snapshot *domain.SessionSnapshot) error
	// Read returns domain.ErrMirrorMiss when no entry exists.
	Read(ctx context.Context, identityID string) (*domain.SessionSnapshot, error)
	Clear(ctx context.Context, identityID string) error
	// RecordActivity persists the last-activity timestamp for the identity.
	RecordActivity(ctx context.Context, identityID string, at time.Time) error
}
