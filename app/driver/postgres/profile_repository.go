package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"portal-auth/app/domain"
	"portal-auth/app/port"
)

// ProfileRepository implements port.ProfileRepository for PostgreSQL.
type ProfileRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewProfileRepository creates a new PostgreSQL profile repository
func NewProfileRepository(db DatabaseIface, logger *slog.Logger) port.ProfileRepository {
	return &ProfileRepository{
		db:     db,
		logger: logger.With("component", "profile_repository"),
	}
}

// The three profile tables carry different role-specific columns. Each
// query aliases the columns its table lacks as NULL so every store scans
// into the same record shape.
var profileQueries = map[domain.ProfileStore]string{
	domain.StorePatients: `
		SELECT id, user_id, first_name, last_name, email, phone,
		       hospital_id, mrn, date_of_birth::text, gender, blood_type,
		       NULL::text AS license_number, NULL::text AS specialty,
		       NULL::text AS employee_id, NULL::text AS department,
		       is_active, created_at
		FROM patients
		WHERE user_id = $1`,
	domain.StoreDoctors: `
		SELECT id, user_id, first_name, last_name, email, phone,
		       hospital_id, NULL::text AS mrn, NULL::text AS date_of_birth,
		       NULL::text AS gender, NULL::text AS blood_type,
		       license_number, specialty,
		       NULL::text AS employee_id, NULL::text AS department,
		       is_active, created_at
		FROM doctors
		WHERE user_id = $1`,
	domain.StoreAdministrators: `
		SELECT id, user_id, first_name, last_name, email, phone,
		       hospital_id, NULL::text AS mrn, NULL::text AS date_of_birth,
		       NULL::text AS gender, NULL::text AS blood_type,
		       NULL::text AS license_number, NULL::text AS specialty,
		       employee_id, department,
		       is_active, created_at
		FROM administrators
		WHERE user_id = $1`,
}

// FindByIdentityID looks up the profile row for an identity in the given
// store. A missing row is domain.ErrProfileNotFound; any other failure is
// marked transient so callers can distinguish absence from outage.
func (r *ProfileRepository) FindByIdentityID(ctx context.Context, store domain.ProfileStore, identityID string) (*domain.ProfileRecord, error) {
	query, ok := profileQueries[store]
	if !ok {
		return nil, fmt.Errorf("unknown profile store: %s", store)
	}

	var rec domain.ProfileRecord
	err := r.db.QueryRow(ctx, query, identityID).Scan(
		&rec.ID,
		&rec.IdentityID,
		&rec.FirstName,
		&rec.LastName,
		&rec.Email,
		&rec.Phone,
		&rec.HospitalID,
		&rec.MRN,
		&rec.DateOfBirth,
		&rec.Gender,
		&rec.BloodType,
		&rec.LicenseNumber,
		&rec.Specialty,
		&rec.EmployeeID,
		&rec.Department,
		&rec.IsActive,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Info("profile not found", "store", store, "identity_id", identityID)
			return nil, domain.ErrProfileNotFound
		}
		r.logger.Error("profile query failed", "store", store, "identity_id", identityID, "error", err)
		return nil, domain.MarkTransient("profile lookup", err)
	}

	return &rec, nil
}
