package handlers

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// Context keys set by the session middleware.
const (
	ContextKeyIdentityID = "identity_id"
	ContextKeyRole       = "identity_role"
)

func identityIDFromContext(c echo.Context) string {
	if id, ok := c.Get(ContextKeyIdentityID).(string); ok {
		return id
	}
	return ""
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
