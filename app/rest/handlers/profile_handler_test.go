package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"portal-auth/app/domain"
	mock_port "portal-auth/app/mocks"
	"portal-auth/app/utils/logger"
)

func TestProfileHandler_GetProfile(t *testing.T) {
	asDoctor := func(c echo.Context) {
		c.Set(ContextKeyIdentityID, "user-1")
		c.Set(ContextKeyRole, domain.RoleDoctor)
	}

	tests := []struct {
		name           string
		setup          func(echo.Context)
		setupMocks     func(resolver *mock_port.MockProfileResolver)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:  "resolved profile is returned",
			setup: asDoctor,
			setupMocks: func(resolver *mock_port.MockProfileResolver) {
				resolver.EXPECT().
					Resolve(gomock.Any(), "user-1", domain.RoleDoctor).
					Return(&domain.Profile{
						ID:            "profile-1",
						IdentityID:    "user-1",
						Role:          domain.RoleDoctor,
						LicenseNumber: "LIC-1",
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "absent profile returns 404",
			setup: asDoctor,
			setupMocks: func(resolver *mock_port.MockProfileResolver) {
				resolver.EXPECT().
					Resolve(gomock.Any(), "user-1", domain.RoleDoctor).
					Return(nil, domain.ErrProfileNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "PROFILE_NOT_FOUND",
		},
		{
			name:  "store outage returns 503",
			setup: asDoctor,
			setupMocks: func(resolver *mock_port.MockProfileResolver) {
				resolver.EXPECT().
					Resolve(gomock.Any(), "user-1", domain.RoleDoctor).
					Return(nil, domain.MarkTransient("profile lookup", assert.AnError))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   "SERVICE_UNAVAILABLE",
		},
		{
			name:           "unauthenticated request returns 401",
			setup:          nil,
			setupMocks:     func(resolver *mock_port.MockProfileResolver) {},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "UNAUTHORIZED",
		},
		{
			name: "identity without a usable role returns 401",
			setup: func(c echo.Context) {
				c.Set(ContextKeyIdentityID, "user-1")
			},
			setupMocks:     func(resolver *mock_port.MockProfileResolver) {},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "UNKNOWN_ROLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			resolver := mock_port.NewMockProfileResolver(ctrl)
			tt.setupMocks(resolver)

			testLogger, err := logger.New("error")
			require.NoError(t, err)

			handler := NewProfileHandler(resolver, testLogger)
			rec := doJSON(t, handler.GetProfile, http.MethodGet, "/v1/user/profile", "", tt.setup)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				var resp ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedCode, resp.Code)
			}
		})
	}
}
