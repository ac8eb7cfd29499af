package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"portal-auth/app/domain"
	"portal-auth/app/port"
)

const (
	sessionKeyPrefix  = "portal:session:"
	roleKeyPrefix     = "portal:role:"
	activityKeyPrefix = "portal:last_activity:"
)

// SessionMirror implements port.SessionMirror on Redis. Entries expire
// with the session token lifetime so a mirror can never outlive the
// remote session it shadows.
type SessionMirror struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewSessionMirror creates a Redis-backed session mirror.
func NewSessionMirror(client *redis.Client, ttl time.Duration, logger *slog.Logger) port.SessionMirror {
	return &SessionMirror{
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "session_mirror"),
	}
}

func sessionKey(identityID string) string  { return sessionKeyPrefix + identityID }
func roleKey(identityID string) string     { return roleKeyPrefix + identityID }
func activityKey(identityID string) string { return activityKeyPrefix + identityID }

// Write stores the session snapshot and a separate role marker. The role
// marker survives as a plain string so operational tooling can inspect it
// without decoding the snapshot.
func (m *SessionMirror) Write(ctx context.Context, snapshot *domain.SessionSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot is required")
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode session snapshot: %w", err)
	}

	id := snapshot.Identity.ID
	pipe := m.client.TxPipeline()
	pipe.Set(ctx, sessionKey(id), payload, m.ttl)
	pipe.Set(ctx, roleKey(id), string(snapshot.Role), m.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		m.logger.Error("failed to write session mirror", "identity_id", id, "error", err)
		return domain.MarkTransient("mirror write", err)
	}

	return nil
}

// Read loads the mirrored snapshot for an identity. A missing entry is
// domain.ErrMirrorMiss, not a failure.
func (m *SessionMirror) Read(ctx context.Context, identityID string) (*domain.SessionSnapshot, error) {
	payload, err := m.client.Get(ctx, sessionKey(identityID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrMirrorMiss
		}
		m.logger.Error("failed to read session mirror", "identity_id", identityID, "error", err)
		return nil, domain.MarkTransient("mirror read", err)
	}

	var snapshot domain.SessionSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		// A corrupt entry is unrecoverable; drop it and report a miss.
		m.logger.Error("corrupt session mirror entry", "identity_id", identityID, "error", err)
		if delErr := m.Clear(ctx, identityID); delErr != nil {
			m.logger.Error("failed to clear corrupt mirror entry", "identity_id", identityID, "error", delErr)
		}
		return nil, domain.ErrMirrorMiss
	}

	return &snapshot, nil
}

// Clear removes every mirrored key for the identity. Clearing an absent
// entry is a no-op.
func (m *SessionMirror) Clear(ctx context.Context, identityID string) error {
	keys := []string{sessionKey(identityID), roleKey(identityID), activityKey(identityID)}
	if err := m.client.Del(ctx, keys...).Err(); err != nil {
		m.logger.Error("failed to clear session mirror", "identity_id", identityID, "error", err)
		return domain.MarkTransient("mirror clear", err)
	}
	return nil
}

// RecordActivity persists the last interaction timestamp for the identity.
func (m *SessionMirror) RecordActivity(ctx context.Context, identityID string, at time.Time) error {
	value := strconv.FormatInt(at.Unix(), 10)
	if err := m.client.Set(ctx, activityKey(identityID), value, m.ttl).Err(); err != nil {
		m.logger.Error("failed to record activity", "identity_id", identityID, "error", err)
		return domain.MarkTransient("activity write", err)
	}
	return nil
}
