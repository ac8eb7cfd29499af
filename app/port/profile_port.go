package port

//go:generate mockgen -source=profile_port.go -destination=../mocks/mock_profile_port.go

import (
	"context"

	"portal-auth/app/domain"
)

// ProfileRepository reads raw profile rows from a role family's store.
// A confirmed absence is domain.ErrProfileNotFound; transport and query
// failures come back marked transient.
type ProfileRepository interface {
	FindByIdentityID(ctx context.Context, store domain.ProfileStore, identityID string) (*domain.ProfileRecord, error)
}

// ProfileResolver maps an identity and its canonical role to a normalized
// profile via the static role-to-store table.
type ProfileResolver interface {
	Resolve(ctx context.Context, identityID string, role domain.CanonicalRole) (*domain.Profile, error)
}
