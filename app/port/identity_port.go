package port

//go:generate mockgen -source=identity_port.go -destination=../mocks/mock_identity_port.go

import (
	"context"

	"portal-auth/app/domain"
)

// IdentityGateway is the boundary with the remote identity service. The
// service is an opaque collaborator; only this contract is consumed.
type IdentityGateway interface {
	// Authenticate exchanges credentials for a remote session.
	Authenticate(ctx context.Context, email, password string) (*domain.RemoteSession, error)
	// RegisterIdentity creates an identity with the given metadata attached.
	// Profile-table population is delegated to the remote side; callers must
	// tolerate the profile not existing yet.
	RegisterIdentity(ctx context.Context, email, password string, meta domain.IdentityMetadata) (*domain.Identity, error)
	// ActiveSession verifies an access token and returns its identity, or
	// domain.ErrNoActiveSession when the token no longer maps to one.
	ActiveSession(ctx context.Context, accessToken string) (*domain.Identity, error)
	// RefreshSession exchanges a refresh token for a new remote session.
	RefreshSession(ctx context.Context, refreshToken string) (*domain.RemoteSession, error)
	// TerminateSession revokes the remote session behind the access token.
	TerminateSession(ctx context.Context, accessToken string) error
	// SendPasswordReset triggers the remote reset email.
	SendPasswordReset(ctx context.Context, email string) error
	// UpdatePassword sets a new password for the authenticated identity and
	// clears the must-reset flag in its metadata.
	UpdatePassword(ctx context.Context, accessToken, newPassword string) error
}

// AuthUsecase is the credential action orchestrator consumed by the HTTP
// layer.
type AuthUsecase interface {
	SignIn(ctx context.Context, portal domain.Portal, email, password string) (*domain.Session, error)
	SignUp(ctx context.Context, req *domain.RegistrationRequest) (*domain.Identity, error)
	SignOut(ctx context.Context, identityID string) error
	Refresh(ctx context.Context, identityID, refreshToken string) (*domain.Session, error)
	ResetPassword(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, identityID, accessToken, newPassword string) error
}

// BootstrapUsecase re-establishes local session state from a remote token,
// typically once per client process start.
type BootstrapUsecase interface {
	// Bootstrap verifies the token against the identity service and lands in
	// one of the terminal session states. mirrorHint, when non-empty, names
	// the identity whose mirror should be cleared on a logged-out outcome.
	Bootstrap(ctx context.Context, accessToken, mirrorHint string) (*domain.Session, error)
	// Cached returns the unverified mirrored session for an identity, used
	// only to avoid a loading flash while Bootstrap runs.
	Cached(ctx context.Context, identityID string) (*domain.Session, error)
}
