package supabase

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"portal-auth/app/domain"
)

// apiError is the error body shape of the identity API. Older and newer
// GoTrue versions disagree on field names, so both are tolerated.
type apiError struct {
	Code             int    `json:"code"`
	Msg              string `json:"msg"`
	ErrorField       string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Message          string `json:"message"`
}

func (e *apiError) Error() string {
	if e == nil {
		return "unknown identity service error"
	}
	for _, s := range []string{e.Msg, e.ErrorDescription, e.Message, e.ErrorField} {
		if s != "" {
			return s
		}
	}
	return "unknown identity service error"
}

// orStatus returns the decoded API error, or a bare status error when the
// body could not be decoded.
func (e *apiError) orStatus(status int) error {
	if e == nil {
		return fmt.Errorf("status %d", status)
	}
	return e
}

func decodeAPIError(raw []byte) *apiError {
	if len(raw) == 0 {
		return nil
	}
	var apiErr apiError
	if err := json.Unmarshal(raw, &apiErr); err != nil {
		return nil
	}
	return &apiErr
}

// mapTokenError classifies token endpoint failures: client rejections are
// invalid credentials, everything server-side is transient.
func mapTokenError(status int, apiErr *apiError) error {
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, apiErr.Error())
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", domain.ErrRateLimitExceeded, apiErr.Error())
	case status >= http.StatusInternalServerError:
		return domain.MarkTransient("token request", apiErr.orStatus(status))
	default:
		return fmt.Errorf("token request: %w", apiErr.orStatus(status))
	}
}

func mapSignupError(status int, apiErr *apiError) error {
	msg := strings.ToLower(apiErr.Error())
	switch {
	case status == http.StatusUnprocessableEntity || strings.Contains(msg, "already registered") || strings.Contains(msg, "already exists"):
		return fmt.Errorf("%w: %s", domain.ErrIdentityExists, apiErr.Error())
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", domain.ErrRateLimitExceeded, apiErr.Error())
	case status >= http.StatusInternalServerError:
		return domain.MarkTransient("signup", apiErr.orStatus(status))
	default:
		return fmt.Errorf("signup: %w", apiErr.orStatus(status))
	}
}
