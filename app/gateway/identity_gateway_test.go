package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal-auth/app/domain"
	"portal-auth/app/utils/logger"
)

// fakeIdentityAPI is a hand-rolled fake for the thin driver surface.
type fakeIdentityAPI struct {
	session     *domain.RemoteSession
	identity    *domain.Identity
	err         error
	logoutCalls int
	recoverEmail string
}

func (f *fakeIdentityAPI) SignInWithPassword(ctx context.Context, email, password string) (*domain.RemoteSession, error) {
	return f.session, f.err
}

func (f *fakeIdentityAPI) RefreshToken(ctx context.Context, refreshToken string) (*domain.RemoteSession, error) {
	return f.session, f.err
}

func (f *fakeIdentityAPI) SignUp(ctx context.Context, email, password string, meta domain.IdentityMetadata) (*domain.Identity, error) {
	return f.identity, f.err
}

func (f *fakeIdentityAPI) User(ctx context.Context, accessToken string) (*domain.Identity, error) {
	return f.identity, f.err
}

func (f *fakeIdentityAPI) Logout(ctx context.Context, accessToken string) error {
	f.logoutCalls++
	return f.err
}

func (f *fakeIdentityAPI) Recover(ctx context.Context, email string) error {
	f.recoverEmail = email
	return f.err
}

func (f *fakeIdentityAPI) UpdateUser(ctx context.Context, accessToken, newPassword string) error {
	return f.err
}

func newTestGateway(t *testing.T, api identityAPI) *IdentityGateway {
	t.Helper()

	testLogger, err := logger.New("error")
	require.NoError(t, err)

	return NewIdentityGateway(api, testLogger).(*IdentityGateway)
}

func TestIdentityGateway_Authenticate(t *testing.T) {
	remote := &domain.RemoteSession{
		AccessToken: "at-1",
		ExpiresAt:   time.Now().Add(time.Hour),
		Identity:    domain.Identity{ID: "user-1", Email: "a@b.c"},
	}

	t.Run("success", func(t *testing.T) {
		g := newTestGateway(t, &fakeIdentityAPI{session: remote})

		got, err := g.Authenticate(context.Background(), "a@b.c", "pw")

		require.NoError(t, err)
		assert.Equal(t, "user-1", got.Identity.ID)
	})

	t.Run("invalid credentials pass through unwrapped", func(t *testing.T) {
		g := newTestGateway(t, &fakeIdentityAPI{err: domain.ErrInvalidCredentials})

		_, err := g.Authenticate(context.Background(), "a@b.c", "bad")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestIdentityGateway_ActiveSession(t *testing.T) {
	t.Run("dead token reports no active session", func(t *testing.T) {
		g := newTestGateway(t, &fakeIdentityAPI{err: domain.ErrNoActiveSession})

		_, err := g.ActiveSession(context.Background(), "stale")

		assert.ErrorIs(t, err, domain.ErrNoActiveSession)
	})

	t.Run("transient failures stay transient", func(t *testing.T) {
		g := newTestGateway(t, &fakeIdentityAPI{err: domain.MarkTransient("user lookup", assert.AnError)})

		_, err := g.ActiveSession(context.Background(), "token")

		assert.True(t, domain.IsTransient(err))
	})
}

func TestIdentityGateway_TerminateSession(t *testing.T) {
	api := &fakeIdentityAPI{}
	g := newTestGateway(t, api)

	require.NoError(t, g.TerminateSession(context.Background(), "token"))
	assert.Equal(t, 1, api.logoutCalls)
}

func TestIdentityGateway_SendPasswordReset(t *testing.T) {
	api := &fakeIdentityAPI{}
	g := newTestGateway(t, api)

	require.NoError(t, g.SendPasswordReset(context.Background(), "a@b.c"))
	assert.Equal(t, "a@b.c", api.recoverEmail)
}
