package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"portal-auth/app/domain"
	"portal-auth/app/port"
	"portal-auth/app/rest/handlers"
)

// SessionMiddleware verifies bearer tokens against the identity service
// and records the interaction as an activity signal for the idle sweeper.
type SessionMiddleware struct {
	gateway port.IdentityGateway
	store   port.SessionStore
	mirror  port.SessionMirror
	logger  *slog.Logger
	now     func() time.Time
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(gateway port.IdentityGateway, store port.SessionStore, mirror port.SessionMirror, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		gateway: gateway,
		store:   store,
		mirror:  mirror,
		logger:  logger,
		now:     time.Now,
	}
}

// RequireSession rejects requests without a verifiable access token.
func (m *SessionMiddleware) RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := m.extractAccessToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			identity, err := m.gateway.ActiveSession(c.Request().Context(), token)
			if err != nil {
				m.logger.Debug("token verification failed", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			role, err := domain.NormalizeRole(identity.RoleLabel())
			if err != nil {
				m.logger.Error("authenticated identity carries unknown role",
					"identity_id", identity.ID, "label", identity.RoleLabel())
				return echo.NewHTTPError(http.StatusUnauthorized, "account role is not recognized")
			}

			c.Set(handlers.ContextKeyIdentityID, identity.ID)
			c.Set(handlers.ContextKeyRole, role)

			m.recordActivity(c, identity.ID)

			return next(c)
		}
	}
}

// RequireStaff gates an endpoint to the staff role family.
func (m *SessionMiddleware) RequireStaff() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(handlers.ContextKeyRole).(domain.CanonicalRole)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if !role.IsStaff() {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient privileges")
			}
			return next(c)
		}
	}
}

// OptionalSession attaches identity context when a valid token is present
// and lets the request through either way.
func (m *SessionMiddleware) OptionalSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := m.extractAccessToken(c)
			if token == "" {
				return next(c)
			}

			identity, err := m.gateway.ActiveSession(c.Request().Context(), token)
			if err != nil {
				m.logger.Debug("optional session verification failed", "error", err)
				return next(c)
			}

			role, err := domain.NormalizeRole(identity.RoleLabel())
			if err != nil {
				return next(c)
			}

			c.Set(handlers.ContextKeyIdentityID, identity.ID)
			c.Set(handlers.ContextKeyRole, role)

			m.recordActivity(c, identity.ID)

			return next(c)
		}
	}
}

// recordActivity touches the tracked session and mirrors the timestamp.
// Mirror failures are logged, never surfaced; the store is authoritative.
func (m *SessionMiddleware) recordActivity(c echo.Context, identityID string) {
	at := m.now()
	if !m.store.Touch(identityID, at) {
		return
	}
	if err := m.mirror.RecordActivity(c.Request().Context(), identityID, at); err != nil {
		m.logger.Debug("activity mirror write failed", "error", err, "identity_id", identityID)
	}
}

func (m *SessionMiddleware) extractAccessToken(c echo.Context) string {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if auth != "" {
		if strings.HasPrefix(auth, "Bearer ") {
			return strings.TrimPrefix(auth, "Bearer ")
		}
		return auth
	}
	return c.Request().Header.Get("X-Access-Token")
}
