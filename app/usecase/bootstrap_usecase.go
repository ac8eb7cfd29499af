package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"portal-auth/app/domain"
	"portal-auth/app/port"
)

// BootstrapUsecase re-establishes session state from a remote access
// token. Every run lands in exactly one terminal state: authenticated,
// authenticated-degraded, or logged out. It never returns an error for an
// unverifiable token; an error means the bootstrap itself could not be
// decided.
type BootstrapUsecase struct {
	gateway  port.IdentityGateway
	resolver port.ProfileResolver
	store    port.SessionStore
	mirror   port.SessionMirror
	logger   *slog.Logger
	now      func() time.Time
}

// NewBootstrapUsecase creates a new BootstrapUsecase instance
func NewBootstrapUsecase(
	gateway port.IdentityGateway,
	resolver port.ProfileResolver,
	store port.SessionStore,
	mirror port.SessionMirror,
	logger *slog.Logger,
) *BootstrapUsecase {
	return &BootstrapUsecase{
		gateway:  gateway,
		resolver: resolver,
		store:    store,
		mirror:   mirror,
		logger:   logger.With("component", "bootstrap_usecase"),
		now:      time.Now,
	}
}

// Bootstrap verifies the token, normalizes the role and resolves the
// profile, then installs the resulting session. Any unverifiable or
// unusable token lands in the logged-out state with the mirror cleared;
// the caller never sees a crash or a half-authenticated session.
// mirrorHint, when non-empty, names the identity whose mirror entry should
// be cleared on a logged-out outcome (the token itself carries no identity
// when it is dead).
func (uc *BootstrapUsecase) Bootstrap(ctx context.Context, accessToken, mirrorHint string) (*domain.Session, error) {
	if accessToken == "" {
		return uc.loggedOut(ctx, mirrorHint, "no token presented"), nil
	}

	identity, err := uc.gateway.ActiveSession(ctx, accessToken)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveSession) {
			return uc.loggedOut(ctx, mirrorHint, "remote session expired"), nil
		}
		// The service being unreachable tells us nothing about the token;
		// fail closed rather than guess.
		uc.logger.Error("session verification unavailable", "error", err)
		return uc.loggedOut(ctx, mirrorHint, "identity service unavailable"), nil
	}

	role, err := domain.NormalizeRole(identity.RoleLabel())
	if err != nil {
		// An identity with an unmappable role cannot be trusted with any
		// portal surface.
		uc.logger.Error("bootstrap rejected: unrecognized role",
			"identity_id", identity.ID, "role_label", identity.RoleLabel())
		return uc.loggedOut(ctx, identity.ID, "unrecognized role"), nil
	}

	profile, err := uc.resolver.Resolve(ctx, identity.ID, role)
	if err != nil {
		if domain.IsTransient(err) {
			// A store outage leaves the profile's existence unknown. Only a
			// confirmed absence may enter the degraded state; here we cannot
			// confirm anything, so the session is not assumed.
			uc.logger.Error("profile store unavailable during bootstrap",
				"identity_id", identity.ID, "role", role, "error", err)
			return uc.loggedOut(ctx, identity.ID, "profile store unavailable"), nil
		}
		profile = nil
	}

	remote := &domain.RemoteSession{
		AccessToken: accessToken,
		Identity:    *identity,
	}
	session, err := domain.NewAuthenticatedSession(remote, role, profile, uc.now())
	if err != nil {
		return nil, err
	}

	uc.store.Replace(session)
	if mirrorErr := uc.mirror.Write(ctx, session.Snapshot()); mirrorErr != nil {
		uc.logger.Warn("session mirror write failed", "identity_id", identity.ID, "error", mirrorErr)
	}

	uc.logger.Info("bootstrap completed",
		"identity_id", identity.ID, "role", role, "state", session.State)
	return session, nil
}

// Cached returns the unverified mirrored session for an identity. It is a
// stopgap against a loading flash while Bootstrap runs; a miss is
// domain.ErrMirrorMiss and never a reason to treat the user as signed out.
func (uc *BootstrapUsecase) Cached(ctx context.Context, identityID string) (*domain.Session, error) {
	snapshot, err := uc.mirror.Read(ctx, identityID)
	if err != nil {
		return nil, err
	}
	return snapshot.Restore(uc.now()), nil
}

// loggedOut installs the terminal logged-out state and clears any stale
// mirror so a later reload cannot resurrect the dead session.
func (uc *BootstrapUsecase) loggedOut(ctx context.Context, identityID, reason string) *domain.Session {
	if identityID != "" {
		uc.store.Clear(identityID)
		if err := uc.mirror.Clear(ctx, identityID); err != nil {
			uc.logger.Warn("session mirror clear failed", "identity_id", identityID, "error", err)
		}
	}
	uc.logger.Info("bootstrap landed logged out", "reason", reason)
	return domain.NewLoggedOutSession()
}
