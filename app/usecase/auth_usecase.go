package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"portal-auth/app/domain"
	"portal-auth/app/port"
	"portal-auth/app/utils/validator"
)

// AuthUsecase orchestrates the credential actions. Every action runs its
// full chain before any local state changes; on a failed chain the local
// session is left exactly as it was.
type AuthUsecase struct {
	gateway   port.IdentityGateway
	resolver  port.ProfileResolver
	store     port.SessionStore
	mirror    port.SessionMirror
	validator *validator.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewAuthUsecase creates a new AuthUsecase instance
func NewAuthUsecase(
	gateway port.IdentityGateway,
	resolver port.ProfileResolver,
	store port.SessionStore,
	mirror port.SessionMirror,
	v *validator.Validator,
	logger *slog.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		gateway:   gateway,
		resolver:  resolver,
		store:     store,
		mirror:    mirror,
		validator: v,
		logger:    logger.With("component", "auth_usecase"),
		now:       time.Now,
	}
}

// SignIn authenticates credentials against the remote identity service and
// establishes the local session. The chain is: authenticate, normalize the
// role, enforce the portal gate, resolve the profile, then replace the
// session whole. A remote session created along a failed chain is revoked
// before the error is returned, so no half-signed-in state survives on
// either side.
func (uc *AuthUsecase) SignIn(ctx context.Context, portal domain.Portal, email, password string) (*domain.Session, error) {
	if !portal.Valid() {
		return nil, fmt.Errorf("unknown portal %q", portal)
	}

	remote, err := uc.gateway.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	role, err := domain.NormalizeRole(remote.Identity.RoleLabel())
	if err != nil {
		uc.logger.Error("sign-in rejected: unrecognized role",
			"identity_id", remote.Identity.ID, "role_label", remote.Identity.RoleLabel())
		uc.compensate(ctx, remote)
		return nil, err
	}

	if role.Portal() != portal {
		uc.logger.Warn("portal mismatch",
			"identity_id", remote.Identity.ID, "role", role, "portal", portal)
		uc.compensate(ctx, remote)
		return nil, domain.ErrPortalMismatch
	}

	profile, err := uc.resolver.Resolve(ctx, remote.Identity.ID, role)
	if err != nil {
		if domain.IsTransient(err) {
			uc.compensate(ctx, remote)
			return nil, err
		}
		// Confirmed absence: sign in degraded rather than lock the user out.
		uc.logger.Warn("profile missing at sign-in, entering degraded session",
			"identity_id", remote.Identity.ID, "role", role)
		profile = nil
	}

	session, err := domain.NewAuthenticatedSession(remote, role, profile, uc.now())
	if err != nil {
		uc.compensate(ctx, remote)
		return nil, err
	}

	uc.store.Replace(session)
	if mirrorErr := uc.mirror.Write(ctx, session.Snapshot()); mirrorErr != nil {
		// The mirror is a convenience copy; a failed write never fails the
		// sign-in.
		uc.logger.Warn("session mirror write failed", "identity_id", session.Identity.ID, "error", mirrorErr)
	}

	uc.logger.Info("sign-in completed",
		"identity_id", session.Identity.ID, "role", role, "state", session.State)
	return session, nil
}

// compensate revokes a remote session created along a failed sign-in
// chain. Best effort: a failed revocation is logged, not propagated, since
// the caller already has a more meaningful error to return.
func (uc *AuthUsecase) compensate(ctx context.Context, remote *domain.RemoteSession) {
	if err := uc.gateway.TerminateSession(ctx, remote.AccessToken); err != nil {
		uc.logger.Error("compensating sign-out failed; remote session may linger",
			"identity_id", remote.Identity.ID, "error", err)
	}
}

// SignUp validates the registration locally, then creates the remote
// identity with the normalized role embedded in its metadata. Validation
// failures are reported before any remote call is made. Registration does
// not sign the user in.
func (uc *AuthUsecase) SignUp(ctx context.Context, req *domain.RegistrationRequest) (*domain.Identity, error) {
	if req == nil {
		return nil, fmt.Errorf("registration request is required")
	}

	if err := uc.validator.Validate(req); err != nil {
		return nil, err
	}

	role, err := domain.NormalizeRole(req.Role)
	if err != nil {
		return nil, err
	}

	// Patients get a medical record number assigned at registration when
	// the form does not carry one. The hospital code is filled in by the
	// remote side once the patient is attached to a hospital.
	if role == domain.RolePatient && req.MRN == "" {
		req.MRN = domain.NewMRN("", uc.now(), rand.Intn(1000000))
	}

	identity, err := uc.gateway.RegisterIdentity(ctx, req.Email, req.Password, req.Metadata(role))
	if err != nil {
		return nil, err
	}

	uc.logger.Info("identity registered", "identity_id", identity.ID, "role", role)
	return identity, nil
}

// SignOut destroys the local session and clears the mirror, then revokes
// the remote session. Local teardown is unconditional: a failed remote
// revocation is logged but the user still ends up logged out. Signing out
// without a tracked session is a no-op, not an error.
func (uc *AuthUsecase) SignOut(ctx context.Context, identityID string) error {
	session, ok := uc.store.Get(identityID)

	uc.store.Clear(identityID)
	if err := uc.mirror.Clear(ctx, identityID); err != nil {
		uc.logger.Warn("session mirror clear failed", "identity_id", identityID, "error", err)
	}

	if !ok || !session.IsAuthenticated() {
		return nil
	}

	if err := uc.gateway.TerminateSession(ctx, session.AccessToken); err != nil {
		uc.logger.Warn("remote sign-out failed; relying on token expiry",
			"identity_id", identityID, "error", err)
	}

	uc.logger.Info("sign-out completed", "identity_id", identityID)
	return nil
}

// Refresh exchanges the refresh token for a new remote session and
// replaces the local session, keeping role and profile from the tracked
// session when the identity is unchanged.
func (uc *AuthUsecase) Refresh(ctx context.Context, identityID, refreshToken string) (*domain.Session, error) {
	remote, err := uc.gateway.RefreshSession(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	role, err := domain.NormalizeRole(remote.Identity.RoleLabel())
	if err != nil {
		uc.compensate(ctx, remote)
		return nil, err
	}

	var profile *domain.Profile
	if current, ok := uc.store.Get(identityID); ok && current.Identity.ID == remote.Identity.ID {
		profile = current.Profile
	} else if resolved, resolveErr := uc.resolver.Resolve(ctx, remote.Identity.ID, role); resolveErr == nil {
		profile = resolved
	}

	session, err := domain.NewAuthenticatedSession(remote, role, profile, uc.now())
	if err != nil {
		uc.compensate(ctx, remote)
		return nil, err
	}

	uc.store.Replace(session)
	if mirrorErr := uc.mirror.Write(ctx, session.Snapshot()); mirrorErr != nil {
		uc.logger.Warn("session mirror write failed", "identity_id", session.Identity.ID, "error", mirrorErr)
	}

	return session, nil
}

// ResetPassword asks the identity service to send a reset email. The
// outcome is deliberately uniform: whether or not the address has an
// account, the caller sees success, so the endpoint cannot be used to
// probe for registered emails.
func (uc *AuthUsecase) ResetPassword(ctx context.Context, email string) error {
	if err := uc.gateway.SendPasswordReset(ctx, email); err != nil {
		uc.logger.Error("password reset request failed", "error", err)
	}
	return nil
}

// UpdatePassword sets a new password for the authenticated identity and
// clears its must-reset flag.
func (uc *AuthUsecase) UpdatePassword(ctx context.Context, identityID, accessToken, newPassword string) error {
	if len(newPassword) < 8 {
		return domain.NewFieldError("password", "password must be at least 8 characters long")
	}

	if err := uc.gateway.UpdatePassword(ctx, accessToken, newPassword); err != nil {
		return err
	}

	// The tracked session keeps working with its existing tokens; only the
	// metadata flag changes.
	if session, ok := uc.store.Get(identityID); ok {
		session.Identity.Metadata.MustResetPassword = false
		uc.store.Replace(session)
		if mirrorErr := uc.mirror.Write(ctx, session.Snapshot()); mirrorErr != nil {
			uc.logger.Warn("session mirror write failed", "identity_id", identityID, "error", mirrorErr)
		}
	}

	uc.logger.Info("password updated", "identity_id", identityID)
	return nil
}
