package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"portal-auth/app/config"
	"portal-auth/app/domain"
)

const defaultTimeout = 30 * time.Second

// Client speaks the hosted identity service's REST contract (GoTrue-style
// auth endpoints under /auth/v1). The service is treated as a black box;
// only the documented contract is consumed.
type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new identity service client.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if !isValidURL(cfg.SupabaseURL) {
		return nil, fmt.Errorf("invalid identity service URL: %s", cfg.SupabaseURL)
	}
	if cfg.SupabaseAnonKey == "" {
		return nil, fmt.Errorf("identity service anon key is required")
	}

	return &Client{
		baseURL:    cfg.SupabaseURL,
		anonKey:    cfg.SupabaseAnonKey,
		serviceKey: cfg.SupabaseServiceKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger.With("component", "supabase_client"),
	}, nil
}

// SignInWithPassword exchanges email/password credentials for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*domain.RemoteSession, error) {
	body := map[string]string{"email": email, "password": password}

	var payload sessionPayload
	status, apiErr, err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", body, &payload)
	if err != nil {
		return nil, domain.MarkTransient("password sign-in", err)
	}
	if status != http.StatusOK {
		return nil, mapTokenError(status, apiErr)
	}

	return payload.remoteSession()
}

// RefreshToken exchanges a refresh token for a new session.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*domain.RemoteSession, error) {
	body := map[string]string{"refresh_token": refreshToken}

	var payload sessionPayload
	status, apiErr, err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=refresh_token", "", body, &payload)
	if err != nil {
		return nil, domain.MarkTransient("token refresh", err)
	}
	if status != http.StatusOK {
		return nil, mapTokenError(status, apiErr)
	}

	return payload.remoteSession()
}

// SignUp registers a new identity with metadata attached. The remote side
// populates profile tables from the metadata via triggers; the returned
// identity may therefore precede its profile record.
func (c *Client) SignUp(ctx context.Context, email, password string, meta domain.IdentityMetadata) (*domain.Identity, error) {
	body := signupRequest{Email: email, Password: password, Data: meta}

	var payload signupPayload
	status, apiErr, err := c.do(ctx, http.MethodPost, "/auth/v1/signup", "", body, &payload)
	if err != nil {
		return nil, domain.MarkTransient("signup", err)
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, mapSignupError(status, apiErr)
	}

	return payload.identity()
}

// User verifies an access token and returns the identity behind it.
func (c *Client) User(ctx context.Context, accessToken string) (*domain.Identity, error) {
	var payload userPayload
	status, apiErr, err := c.do(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil, &payload)
	if err != nil {
		return nil, domain.MarkTransient("session lookup", err)
	}
	switch {
	case status == http.StatusOK:
		return payload.identity()
	case status == http.StatusUnauthorized || status == http.StatusForbidden || status == http.StatusNotFound:
		return nil, domain.ErrNoActiveSession
	case status >= http.StatusInternalServerError:
		return nil, domain.MarkTransient("session lookup", apiErr.orStatus(status))
	default:
		return nil, fmt.Errorf("session lookup: %w", apiErr.orStatus(status))
	}
}

// Logout revokes the remote session behind the access token.
func (c *Client) Logout(ctx context.Context, accessToken string) error {
	status, apiErr, err := c.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil)
	if err != nil {
		return domain.MarkTransient("logout", err)
	}
	switch {
	case status == http.StatusNoContent || status == http.StatusOK:
		return nil
	case status == http.StatusUnauthorized:
		// Token already dead; the remote session is gone either way.
		return nil
	case status >= http.StatusInternalServerError:
		return domain.MarkTransient("logout", apiErr.orStatus(status))
	default:
		return fmt.Errorf("logout: %w", apiErr.orStatus(status))
	}
}

// Recover triggers the password-reset email for the address.
func (c *Client) Recover(ctx context.Context, email string) error {
	body := map[string]string{"email": email}

	status, apiErr, err := c.do(ctx, http.MethodPost, "/auth/v1/recover", "", body, nil)
	if err != nil {
		return domain.MarkTransient("password recover", err)
	}
	if status != http.StatusOK {
		if status >= http.StatusInternalServerError {
			return domain.MarkTransient("password recover", apiErr.orStatus(status))
		}
		return fmt.Errorf("password recover: %w", apiErr.orStatus(status))
	}
	return nil
}

// UpdateUser sets a new password for the authenticated identity and clears
// the must-reset flag in the same call.
func (c *Client) UpdateUser(ctx context.Context, accessToken, newPassword string) error {
	body := updateUserRequest{
		Password: newPassword,
		Data:     map[string]interface{}{"must_reset_password": false},
	}

	status, apiErr, err := c.do(ctx, http.MethodPut, "/auth/v1/user", accessToken, body, nil)
	if err != nil {
		return domain.MarkTransient("password update", err)
	}
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusUnauthorized:
		return domain.ErrNoActiveSession
	case status >= http.StatusInternalServerError:
		return domain.MarkTransient("password update", apiErr.orStatus(status))
	default:
		return fmt.Errorf("password update: %w", apiErr.orStatus(status))
	}
}

// HealthCheck verifies the identity service is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	status, _, err := c.do(ctx, http.MethodGet, "/auth/v1/health", "", nil, nil)
	if err != nil {
		return domain.MarkTransient("health check", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("identity service health: status %d", status)
	}
	return nil
}

// do issues one request against the identity API. It returns the HTTP
// status and, for non-2xx responses, the decoded API error; out is only
// populated on 2xx. A nil error return means the transport succeeded.
func (c *Client) do(ctx context.Context, method, path, bearer string, in, out interface{}) (int, *apiError, error) {
	var reqBody io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Accept", "application/json")
	// Correlation id for tracing a call through the identity service logs.
	req.Header.Set("X-Request-ID", uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return resp.StatusCode, decodeAPIError(raw), nil
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, nil, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil, nil
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
