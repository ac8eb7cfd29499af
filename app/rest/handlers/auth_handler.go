package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"portal-auth/app/domain"
	"portal-auth/app/port"
	"portal-auth/app/utils/validator"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authUsecase      port.AuthUsecase
	bootstrapUsecase port.BootstrapUsecase
	logger           *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase port.AuthUsecase, bootstrapUsecase port.BootstrapUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase:      authUsecase,
		bootstrapUsecase: bootstrapUsecase,
		logger:           logger,
	}
}

// Request/response types

type SignInRequest struct {
	Portal   string `json:"portal"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignOutRequest struct {
	IdentityID string `json:"identity_id"`
}

type RefreshRequest struct {
	IdentityID   string `json:"identity_id"`
	RefreshToken string `json:"refresh_token"`
}

type ResetPasswordRequest struct {
	Email string `json:"email"`
}

type UpdatePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

type BootstrapRequest struct {
	AccessToken string `json:"access_token"`
	MirrorHint  string `json:"mirror_hint,omitempty"`
}

type SessionResponse struct {
	State        string              `json:"state"`
	Role         string              `json:"role,omitempty"`
	Identity     *domain.Identity    `json:"identity,omitempty"`
	Profile      *domain.Profile     `json:"profile,omitempty"`
	AccessToken  string              `json:"access_token,omitempty"`
	RefreshToken string              `json:"refresh_token,omitempty"`
	ExpiresAt    string              `json:"expires_at,omitempty"`
}

func sessionResponse(session *domain.Session) SessionResponse {
	resp := SessionResponse{State: string(session.State)}
	if !session.IsAuthenticated() {
		return resp
	}

	identity := session.Identity
	resp.Role = string(session.Role)
	resp.Identity = &identity
	resp.Profile = session.Profile
	resp.AccessToken = session.AccessToken
	resp.RefreshToken = session.RefreshToken
	if !session.ExpiresAt.IsZero() {
		resp.ExpiresAt = session.ExpiresAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}

// cachedSessionResponse renders a mirrored session without its tokens.
// The cached endpoint is unauthenticated and keyed only by identity id,
// so credentials must never travel through it; the client keeps its own
// tokens and this response only paints the shell.
func cachedSessionResponse(session *domain.Session) SessionResponse {
	resp := sessionResponse(session)
	resp.AccessToken = ""
	resp.RefreshToken = ""
	return resp
}

// writeError renders a usecase error through the shared mapping,
// logging anything that lands as an internal error.
func (h *AuthHandler) writeError(c echo.Context, err error) error {
	var verr *validator.ValidationError
	var ferr *domain.FieldError
	if !errors.As(err, &verr) && !errors.As(err, &ferr) {
		if appErr := toAppError(err); appErr.StatusCode >= http.StatusInternalServerError {
			h.logger.Error("unhandled auth error", "error", err)
		}
	}
	return writeDomainError(c, err)
}

// SignIn handles credential sign-in for a portal
// @Summary Sign in
// @Description Authenticate credentials and establish a portal session
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body SignInRequest true "Credentials and portal"
// @Success 200 {object} SessionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Role not allowed on this portal"
// @Failure 503 {object} ErrorResponse
// @Router /v1/auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return writeMissingField(c, "email and password are required")
	}

	portal := domain.Portal(req.Portal)
	if !portal.Valid() {
		return writeBadRequest(c, "portal must be patient or staff")
	}

	h.logger.Info("sign-in requested", "portal", portal, "ip", c.RealIP())

	session, err := h.authUsecase.SignIn(c.Request().Context(), portal, req.Email, req.Password)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, sessionResponse(session))
}

// SignUp handles account registration
// @Summary Sign up
// @Description Register a new account with a role-specific profile
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body domain.RegistrationRequest true "Registration form"
// @Success 201 {object} domain.Identity
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Router /v1/auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req domain.RegistrationRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "invalid request body")
	}

	identity, err := h.authUsecase.SignUp(c.Request().Context(), &req)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, identity)
}

// SignOut handles session termination
// @Summary Sign out
// @Description Destroy the caller's own session; succeeds even when none is tracked
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body SignOutRequest false "Identity confirmation"
// @Success 200 {object} SessionResponse
// @Router /v1/auth/signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	var req SignOutRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "invalid request body")
	}

	// Only the identity verified by the session middleware may be signed
	// out. The body field can confirm it but never substitute for it, or
	// any caller could terminate an arbitrary identity's session.
	identityID := identityIDFromContext(c)
	if req.IdentityID != "" && req.IdentityID != identityID {
		h.logger.Warn("sign-out requested for a different identity, ignoring",
			"requested_id", req.IdentityID)
	}
	if identityID == "" {
		// Nothing verified, nothing to do.
		return c.JSON(http.StatusOK, sessionResponse(domain.NewLoggedOutSession()))
	}

	if err := h.authUsecase.SignOut(c.Request().Context(), identityID); err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, sessionResponse(domain.NewLoggedOutSession()))
}

// Refresh exchanges a refresh token for a new session
// @Summary Refresh session
// @Description Exchange the refresh token for new session tokens
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} SessionResponse
// @Failure 401 {object} ErrorResponse
// @Router /v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "invalid request body")
	}
	if req.RefreshToken == "" {
		return writeMissingField(c, "refresh_token is required")
	}

	session, err := h.authUsecase.Refresh(c.Request().Context(), req.IdentityID, req.RefreshToken)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, sessionResponse(session))
}

// ResetPassword triggers a password reset email
// @Summary Request password reset
// @Description Send a reset email; the response never reveals whether the address is registered
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Account email"
// @Success 200 {object} map[string]string
// @Router /v1/auth/password/reset [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "invalid request body")
	}
	if req.Email == "" {
		return writeMissingField(c, "email is required")
	}

	if err := h.authUsecase.ResetPassword(c.Request().Context(), req.Email); err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "if the address is registered, a reset email has been sent",
	})
}

// UpdatePassword sets a new password for the authenticated identity
// @Summary Update password
// @Description Set a new password and clear the must-reset flag
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body UpdatePasswordRequest true "New password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /v1/auth/password/update [post]
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	var req UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "invalid request body")
	}

	identityID := identityIDFromContext(c)
	accessToken := bearerToken(c)
	if identityID == "" || accessToken == "" {
		return writeUnauthorized(c, "authentication required")
	}

	if err := h.authUsecase.UpdatePassword(c.Request().Context(), identityID, accessToken, req.NewPassword); err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "password updated"})
}

// Bootstrap re-establishes session state from an access token
// @Summary Bootstrap session
// @Description Verify a stored token and land in a terminal session state
// @Tags session
// @Accept json
// @Produce json
// @Param request body BootstrapRequest true "Stored token"
// @Success 200 {object} SessionResponse
// @Router /v1/auth/session [post]
func (h *AuthHandler) Bootstrap(c echo.Context) error {
	var req BootstrapRequest
	if err := c.Bind(&req); err != nil {
		return writeBadRequest(c, "invalid request body")
	}

	session, err := h.bootstrapUsecase.Bootstrap(c.Request().Context(), req.AccessToken, req.MirrorHint)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, sessionResponse(session))
}

// CachedSession returns the unverified mirrored session, tokens redacted
// @Summary Cached session
// @Description Return the mirrored session for an identity, if any. The
// result is unverified, carries no tokens, and is only suitable for
// rendering while a bootstrap runs.
// @Tags session
// @Produce json
// @Param identityId path string true "Identity ID"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} ErrorResponse "No mirror entry"
// @Router /v1/auth/session/cached/{identityId} [get]
func (h *AuthHandler) CachedSession(c echo.Context) error {
	identityID := c.Param("identityId")
	if identityID == "" {
		return writeMissingField(c, "identity id is required")
	}

	session, err := h.bootstrapUsecase.Cached(c.Request().Context(), identityID)
	if err != nil {
		if errors.Is(err, domain.ErrMirrorMiss) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "no cached session", Code: "NOT_FOUND"})
		}
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, cachedSessionResponse(session))
}
