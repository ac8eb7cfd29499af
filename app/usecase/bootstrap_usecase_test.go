package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"portal-auth/app/domain"
	mock_port "portal-auth/app/mocks"
	"portal-auth/app/utils/logger"
)

type bootstrapMocks struct {
	gateway  *mock_port.MockIdentityGateway
	resolver *mock_port.MockProfileResolver
	store    *mock_port.MockSessionStore
	mirror   *mock_port.MockSessionMirror
}

func newTestBootstrapUsecase(t *testing.T, ctrl *gomock.Controller) (*BootstrapUsecase, *bootstrapMocks) {
	t.Helper()

	mocks := &bootstrapMocks{
		gateway:  mock_port.NewMockIdentityGateway(ctrl),
		resolver: mock_port.NewMockProfileResolver(ctrl),
		store:    mock_port.NewMockSessionStore(ctrl),
		mirror:   mock_port.NewMockSessionMirror(ctrl),
	}

	testLogger, err := logger.New("error")
	require.NoError(t, err)

	uc := NewBootstrapUsecase(mocks.gateway, mocks.resolver, mocks.store, mocks.mirror, testLogger)
	uc.now = func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }

	return uc, mocks
}

func verifiedIdentity(roleLabel string) *domain.Identity {
	return &domain.Identity{
		ID:    "user-1",
		Email: "person@example.com",
		Metadata: domain.IdentityMetadata{
			Role:      roleLabel,
			FirstName: "Ada",
			LastName:  "Salem",
		},
	}
}

func TestBootstrapUsecase_Bootstrap(t *testing.T) {
	profile := &domain.Profile{ID: "prof-1", IdentityID: "user-1", Role: domain.RoleDoctor}

	tests := []struct {
		name       string
		token      string
		mirrorHint string
		setupMocks func(*bootstrapMocks)
		wantState  domain.SessionState
	}{
		{
			name:  "verified token with profile lands authenticated",
			token: "at-1",
			setupMocks: func(m *bootstrapMocks) {
				m.gateway.EXPECT().
					ActiveSession(gomock.Any(), "at-1").
					Return(verifiedIdentity("doctor"), nil)
				m.resolver.EXPECT().
					Resolve(gomock.Any(), "user-1", domain.RoleDoctor).
					Return(profile, nil)
				m.store.EXPECT().Replace(gomock.Any())
				m.mirror.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantState: domain.StateAuthenticated,
		},
		{
			name:  "missing profile lands degraded, not crashed",
			token: "at-1",
			setupMocks: func(m *bootstrapMocks) {
				m.gateway.EXPECT().
					ActiveSession(gomock.Any(), "at-1").
					Return(verifiedIdentity("doctor"), nil)
				m.resolver.EXPECT().
					Resolve(gomock.Any(), "user-1", domain.RoleDoctor).
					Return(nil, domain.ErrProfileNotFound)
				m.store.EXPECT().Replace(gomock.Any())
				m.mirror.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantState: domain.StateAuthenticatedDegraded,
		},
		{
			name:  "profile store outage lands logged out, not degraded",
			token: "at-1",
			setupMocks: func(m *bootstrapMocks) {
				m.gateway.EXPECT().
					ActiveSession(gomock.Any(), "at-1").
					Return(verifiedIdentity("doctor"), nil)
				m.resolver.EXPECT().
					Resolve(gomock.Any(), "user-1", domain.RoleDoctor).
					Return(nil, domain.MarkTransient("profile lookup", assert.AnError))
				m.store.EXPECT().Clear("user-1")
				m.mirror.EXPECT().Clear(gomock.Any(), "user-1").Return(nil)
			},
			wantState: domain.StateLoggedOut,
		},
		{
			name:       "expired token lands logged out and clears the mirror",
			token:      "stale",
			mirrorHint: "user-1",
			setupMocks: func(m *bootstrapMocks) {
				m.gateway.EXPECT().
					ActiveSession(gomock.Any(), "stale").
					Return(nil, domain.ErrNoActiveSession)
				m.store.EXPECT().Clear("user-1")
				m.mirror.EXPECT().Clear(gomock.Any(), "user-1").Return(nil)
			},
			wantState: domain.StateLoggedOut,
		},
		{
			name:  "no token lands logged out without remote calls",
			token: "",
			setupMocks: func(m *bootstrapMocks) {},
			wantState: domain.StateLoggedOut,
		},
		{
			name:       "identity service outage fails closed",
			token:      "at-1",
			mirrorHint: "user-1",
			setupMocks: func(m *bootstrapMocks) {
				m.gateway.EXPECT().
					ActiveSession(gomock.Any(), "at-1").
					Return(nil, domain.MarkTransient("user lookup", assert.AnError))
				m.store.EXPECT().Clear("user-1")
				m.mirror.EXPECT().Clear(gomock.Any(), "user-1").Return(nil)
			},
			wantState: domain.StateLoggedOut,
		},
		{
			name:  "unrecognized role lands logged out",
			token: "at-1",
			setupMocks: func(m *bootstrapMocks) {
				m.gateway.EXPECT().
					ActiveSession(gomock.Any(), "at-1").
					Return(verifiedIdentity("wizard"), nil)
				m.store.EXPECT().Clear("user-1")
				m.mirror.EXPECT().Clear(gomock.Any(), "user-1").Return(nil)
			},
			wantState: domain.StateLoggedOut,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			uc, mocks := newTestBootstrapUsecase(t, ctrl)
			tt.setupMocks(mocks)

			session, err := uc.Bootstrap(context.Background(), tt.token, tt.mirrorHint)

			require.NoError(t, err)
			require.NotNil(t, session)
			assert.Equal(t, tt.wantState, session.State)
		})
	}
}

func TestBootstrapUsecase_Cached(t *testing.T) {
	t.Run("mirror hit restores a session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, mocks := newTestBootstrapUsecase(t, ctrl)
		snapshot := &domain.SessionSnapshot{
			Identity:    domain.Identity{ID: "user-1"},
			Role:        domain.RoleDoctor,
			State:       domain.StateAuthenticated,
			AccessToken: "at-1",
		}
		mocks.mirror.EXPECT().Read(gomock.Any(), "user-1").Return(snapshot, nil)

		session, err := uc.Cached(context.Background(), "user-1")

		require.NoError(t, err)
		assert.Equal(t, domain.StateAuthenticated, session.State)
		assert.Equal(t, "at-1", session.AccessToken)
		assert.Equal(t, uc.now(), session.LastActivityAt)
	})

	t.Run("mirror miss passes through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, mocks := newTestBootstrapUsecase(t, ctrl)
		mocks.mirror.EXPECT().Read(gomock.Any(), "user-1").Return(nil, domain.ErrMirrorMiss)

		_, err := uc.Cached(context.Background(), "user-1")
		assert.ErrorIs(t, err, domain.ErrMirrorMiss)
	})
}
