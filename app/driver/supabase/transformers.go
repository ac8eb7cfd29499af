package supabase

import (
	"encoding/json"
	"fmt"
	"time"

	"portal-auth/app/domain"
)

// userPayload is the identity shape returned by the /user and /signup
// endpoints.
type userPayload struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	CreatedAt    string                 `json:"created_at"`
}

// sessionPayload is the token endpoint response.
type sessionPayload struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int         `json:"expires_in"`
	ExpiresAt    int64       `json:"expires_at"`
	User         userPayload `json:"user"`
}

// signupPayload tolerates both response shapes of the signup endpoint:
// a bare identity when confirmation is pending, or a full session when
// the instance auto-confirms.
type signupPayload struct {
	userPayload
	User *userPayload `json:"user,omitempty"`
}

type signupRequest struct {
	Email    string                  `json:"email"`
	Password string                  `json:"password"`
	Data     domain.IdentityMetadata `json:"data"`
}

type updateUserRequest struct {
	Password string                 `json:"password,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

func (p *userPayload) identity() (*domain.Identity, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("identity payload missing id")
	}

	meta, err := decodeMetadata(p.UserMetadata)
	if err != nil {
		return nil, fmt.Errorf("decode identity metadata: %w", err)
	}

	var createdAt time.Time
	if p.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, p.CreatedAt); err == nil {
			createdAt = t
		}
	}

	return &domain.Identity{
		ID:        p.ID,
		Email:     p.Email,
		Metadata:  meta,
		CreatedAt: createdAt,
	}, nil
}

func (p *sessionPayload) remoteSession() (*domain.RemoteSession, error) {
	if p.AccessToken == "" {
		return nil, fmt.Errorf("session payload missing access token")
	}

	identity, err := p.User.identity()
	if err != nil {
		return nil, err
	}

	expiresAt := time.Unix(p.ExpiresAt, 0)
	if p.ExpiresAt == 0 {
		expiresAt = time.Now().Add(time.Duration(p.ExpiresIn) * time.Second)
	}

	return &domain.RemoteSession{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		ExpiresAt:    expiresAt,
		Identity:     *identity,
	}, nil
}

func (p *signupPayload) identity() (*domain.Identity, error) {
	if p.ID != "" {
		return p.userPayload.identity()
	}
	if p.User != nil {
		return p.User.identity()
	}
	return nil, fmt.Errorf("signup payload missing identity")
}

// decodeMetadata converts the loosely typed metadata object into the
// explicit schema via a JSON round-trip; unknown keys are dropped at this
// boundary so nothing downstream depends on untyped remote shapes.
func decodeMetadata(raw map[string]interface{}) (domain.IdentityMetadata, error) {
	var meta domain.IdentityMetadata
	if len(raw) == 0 {
		return meta, nil
	}

	buf, err := json.Marshal(raw)
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(buf, &meta); err != nil {
		return meta, err
	}
	return meta, nil
}
