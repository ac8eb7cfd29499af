package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"portal-auth/app/domain"
	"portal-auth/app/port"
)

// identityAPI is the slice of the Supabase driver the gateway consumes.
type identityAPI interface {
	SignInWithPassword(ctx context.Context, email, password string) (*domain.RemoteSession, error)
	RefreshToken(ctx context.Context, refreshToken string) (*domain.RemoteSession, error)
	SignUp(ctx context.Context, email, password string, meta domain.IdentityMetadata) (*domain.Identity, error)
	User(ctx context.Context, accessToken string) (*domain.Identity, error)
	Logout(ctx context.Context, accessToken string) error
	Recover(ctx context.Context, email string) error
	UpdateUser(ctx context.Context, accessToken, newPassword string) error
}

// IdentityGateway implements port.IdentityGateway over the remote identity
// service. It acts as an anti-corruption layer between the domain and the
// external auth provider.
type IdentityGateway struct {
	client identityAPI
	logger *slog.Logger
}

// NewIdentityGateway creates a new IdentityGateway instance
func NewIdentityGateway(client identityAPI, logger *slog.Logger) port.IdentityGateway {
	return &IdentityGateway{
		client: client,
		logger: logger.With("component", "identity_gateway"),
	}
}

// Authenticate exchanges credentials for a remote session.
func (g *IdentityGateway) Authenticate(ctx context.Context, email, password string) (*domain.RemoteSession, error) {
	session, err := g.client.SignInWithPassword(ctx, email, password)
	if err != nil {
		g.logger.Warn("authentication failed", "error", err)
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	g.logger.Info("identity authenticated", "identity_id", session.Identity.ID)
	return session, nil
}

// RegisterIdentity creates a remote identity with role metadata attached.
func (g *IdentityGateway) RegisterIdentity(ctx context.Context, email, password string, meta domain.IdentityMetadata) (*domain.Identity, error) {
	identity, err := g.client.SignUp(ctx, email, password, meta)
	if err != nil {
		g.logger.Warn("identity registration failed", "role", meta.Role, "error", err)
		return nil, fmt.Errorf("identity registration failed: %w", err)
	}

	g.logger.Info("identity registered", "identity_id", identity.ID, "role", meta.Role)
	return identity, nil
}

// ActiveSession verifies an access token against the identity service.
func (g *IdentityGateway) ActiveSession(ctx context.Context, accessToken string) (*domain.Identity, error) {
	identity, err := g.client.User(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("session verification failed: %w", err)
	}
	return identity, nil
}

// RefreshSession exchanges a refresh token for a new remote session.
func (g *IdentityGateway) RefreshSession(ctx context.Context, refreshToken string) (*domain.RemoteSession, error) {
	session, err := g.client.RefreshToken(ctx, refreshToken)
	if err != nil {
		g.logger.Warn("session refresh failed", "error", err)
		return nil, fmt.Errorf("session refresh failed: %w", err)
	}
	return session, nil
}

// TerminateSession revokes the remote session behind the access token.
func (g *IdentityGateway) TerminateSession(ctx context.Context, accessToken string) error {
	if err := g.client.Logout(ctx, accessToken); err != nil {
		g.logger.Warn("remote session termination failed", "error", err)
		return fmt.Errorf("remote session termination failed: %w", err)
	}
	return nil
}

// SendPasswordReset triggers the remote reset email.
func (g *IdentityGateway) SendPasswordReset(ctx context.Context, email string) error {
	if err := g.client.Recover(ctx, email); err != nil {
		g.logger.Warn("password reset request failed", "error", err)
		return fmt.Errorf("password reset request failed: %w", err)
	}
	return nil
}

// UpdatePassword sets a new password for the authenticated identity.
func (g *IdentityGateway) UpdatePassword(ctx context.Context, accessToken, newPassword string) error {
	if err := g.client.UpdateUser(ctx, accessToken, newPassword); err != nil {
		g.logger.Warn("password update failed", "error", err)
		return fmt.Errorf("password update failed: %w", err)
	}

	g.logger.Info("password updated")
	return nil
}
