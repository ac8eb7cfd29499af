package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"portal-auth/app/domain"
	"portal-auth/app/port"
)

// storeBinding pairs a profile store with the normalization applied to its
// rows.
type storeBinding struct {
	store     domain.ProfileStore
	transform func(*domain.ProfileRecord, domain.CanonicalRole) *domain.Profile
}

// resolverTable is the static role-to-store mapping. Adding a role means
// adding an entry here; there is no fallback store.
var resolverTable = map[domain.CanonicalRole]storeBinding{
	domain.RolePatient: {
		store: domain.StorePatients,
		transform: func(rec *domain.ProfileRecord, _ domain.CanonicalRole) *domain.Profile {
			return rec.PatientProfile()
		},
	},
	domain.RoleDoctor: {
		store: domain.StoreDoctors,
		transform: func(rec *domain.ProfileRecord, _ domain.CanonicalRole) *domain.Profile {
			return rec.DoctorProfile()
		},
	},
	domain.RoleAdmin: {
		store: domain.StoreAdministrators,
		transform: func(rec *domain.ProfileRecord, role domain.CanonicalRole) *domain.Profile {
			return rec.AdministratorProfile(role)
		},
	},
	domain.RoleSuperAdmin: {
		store: domain.StoreAdministrators,
		transform: func(rec *domain.ProfileRecord, role domain.CanonicalRole) *domain.Profile {
			return rec.AdministratorProfile(role)
		},
	},
}

// ProfileResolverUsecase implements port.ProfileResolver on top of the raw
// repository.
type ProfileResolverUsecase struct {
	repo   port.ProfileRepository
	logger *slog.Logger
}

// NewProfileResolverUsecase creates a new ProfileResolverUsecase instance
func NewProfileResolverUsecase(repo port.ProfileRepository, logger *slog.Logger) *ProfileResolverUsecase {
	return &ProfileResolverUsecase{
		repo:   repo,
		logger: logger.With("component", "profile_resolver"),
	}
}

// Resolve looks up the profile for an identity in the store its role maps
// to. Identical inputs always hit the same store; a role without an entry
// is an error, never a silent fallback. Absence (domain.ErrProfileNotFound)
// and outage (transient) pass through distinctly so callers can pick
// between the degraded and failed outcomes.
func (uc *ProfileResolverUsecase) Resolve(ctx context.Context, identityID string, role domain.CanonicalRole) (*domain.Profile, error) {
	binding, ok := resolverTable[role]
	if !ok {
		return nil, fmt.Errorf("no profile store mapped for role %q", role)
	}

	rec, err := uc.repo.FindByIdentityID(ctx, binding.store, identityID)
	if err != nil {
		return nil, err
	}

	profile := binding.transform(rec, role)
	uc.logger.Debug("profile resolved", "identity_id", identityID, "role", role, "store", binding.store)
	return profile, nil
}
