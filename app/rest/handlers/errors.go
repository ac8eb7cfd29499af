package handlers

import (
	"errors"

	"github.com/labstack/echo/v4"

	"portal-auth/app/domain"
	apperrors "portal-auth/app/utils/errors"
	"portal-auth/app/utils/validator"
)

// ErrorResponse is the error payload shape for every endpoint.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// toAppError maps domain errors onto the shared application error set.
func toAppError(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return apperrors.ErrInvalidCredentials
	case errors.Is(err, domain.ErrNoActiveSession):
		return apperrors.ErrInvalidToken
	case errors.Is(err, domain.ErrPortalMismatch):
		return apperrors.ErrPortalMismatch
	case errors.Is(err, domain.ErrUnknownRole):
		return apperrors.ErrUnknownRole
	case errors.Is(err, domain.ErrIdentityExists):
		return apperrors.ErrIdentityExists
	case errors.Is(err, domain.ErrProfileNotFound):
		return apperrors.ErrProfileNotFound
	case errors.Is(err, domain.ErrRateLimitExceeded):
		return apperrors.ErrRateLimitExceeded
	case domain.IsTransient(err):
		return apperrors.ErrServiceUnavailable
	default:
		return apperrors.NewInternalError(err)
	}
}

// writeDomainError renders a usecase error. Validation failures carry the
// per-field map; everything else goes through the application error set.
func writeDomainError(c echo.Context, err error) error {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(apperrors.ErrValidationFailed.StatusCode, ErrorResponse{
			Error:  apperrors.ErrValidationFailed.Message,
			Code:   string(apperrors.ErrCodeValidationFailed),
			Fields: verr.Errors,
		})
	}

	var ferr *domain.FieldError
	if errors.As(err, &ferr) {
		return c.JSON(apperrors.ErrValidationFailed.StatusCode, ErrorResponse{
			Error:  apperrors.ErrValidationFailed.Message,
			Code:   string(apperrors.ErrCodeValidationFailed),
			Fields: map[string]string{ferr.Field: ferr.Message},
		})
	}

	appErr := toAppError(err)
	return c.JSON(appErr.StatusCode, ErrorResponse{
		Error: appErr.Message,
		Code:  string(appErr.Code),
	})
}

func writeBadRequest(c echo.Context, message string) error {
	return c.JSON(apperrors.ErrBadRequest.StatusCode, ErrorResponse{
		Error: message,
		Code:  string(apperrors.ErrCodeBadRequest),
	})
}

func writeMissingField(c echo.Context, message string) error {
	return c.JSON(apperrors.ErrMissingField.StatusCode, ErrorResponse{
		Error: message,
		Code:  string(apperrors.ErrCodeMissingField),
	})
}

func writeUnauthorized(c echo.Context, message string) error {
	return c.JSON(apperrors.ErrUnauthorized.StatusCode, ErrorResponse{
		Error: message,
		Code:  string(apperrors.ErrCodeUnauthorized),
	})
}
