package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"portal-auth/app/domain"
	"portal-auth/app/port"
)

// ProfileHandler serves the role-specific profile for the authenticated
// identity. It sits behind the session middleware, which resolves the
// identity and its canonical role from the bearer token.
type ProfileHandler struct {
	resolver port.ProfileResolver
	logger   *slog.Logger
}

func NewProfileHandler(resolver port.ProfileResolver, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		resolver: resolver,
		logger:   logger,
	}
}

// GetProfile returns the authenticated identity's profile
// @Summary Get profile
// @Description Look up the profile record in the store mapped to the caller's role
// @Tags profile
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No profile record yet"
// @Router /v1/user/profile [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	identityID := identityIDFromContext(c)
	if identityID == "" {
		return writeUnauthorized(c, "authentication required")
	}

	role, ok := c.Get(ContextKeyRole).(domain.CanonicalRole)
	if !ok || !role.Valid() {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "account role is not recognized", Code: "UNKNOWN_ROLE"})
	}

	profile, err := h.resolver.Resolve(c.Request().Context(), identityID, role)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) && !domain.IsTransient(err) {
			h.logger.Error("profile lookup failed", "error", err, "identity_id", identityID)
		}
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, profile)
}
