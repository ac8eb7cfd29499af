package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal-auth/app/domain"
	"portal-auth/app/utils/logger"
)

// Helper function to create a test profile repository with mocked database
func createTestProfileRepository(t *testing.T) (*ProfileRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)

	testLogger, err := logger.New("debug")
	require.NoError(t, err)

	repo := NewProfileRepository(mockDB, testLogger).(*ProfileRepository)

	return repo, mockDB
}

var profileColumns = []string{
	"id", "user_id", "first_name", "last_name", "email", "phone",
	"hospital_id", "mrn", "date_of_birth", "gender", "blood_type",
	"license_number", "specialty", "employee_id", "department",
	"is_active", "created_at",
}

func strPtr(s string) *string { return &s }

func TestProfileRepository_FindByIdentityID(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		store    domain.ProfileStore
		setupDB  func(pgxmock.PgxPoolIface)
		wantErr  error
		wantTransient bool
		check    func(*testing.T, *domain.ProfileRecord)
	}{
		{
			name:  "patient row found",
			store: domain.StorePatients,
			setupDB: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(profileColumns).AddRow(
					"prof-1", "user-1", "Mina", "Okabe", "mina@example.com", strPtr("555-0100"),
					strPtr("hosp-1"), strPtr("GEN26000042"), strPtr("1990-04-01"), strPtr("female"), strPtr("O+"),
					nil, nil, nil, nil,
					true, now,
				)
				mock.ExpectQuery("FROM patients").
					WithArgs("user-1").
					WillReturnRows(rows)
			},
			check: func(t *testing.T, rec *domain.ProfileRecord) {
				assert.Equal(t, "prof-1", rec.ID)
				assert.Equal(t, "user-1", rec.IdentityID)
				assert.Equal(t, "GEN26000042", *rec.MRN)
				assert.Nil(t, rec.LicenseNumber)
				assert.True(t, rec.IsActive)
			},
		},
		{
			name:  "doctor row found",
			store: domain.StoreDoctors,
			setupDB: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(profileColumns).AddRow(
					"prof-2", "user-2", "Ada", "Salem", "ada@example.com", nil,
					strPtr("hosp-1"), nil, nil, nil, nil,
					strPtr("LIC-991"), strPtr("cardiology"), nil, nil,
					true, now,
				)
				mock.ExpectQuery("FROM doctors").
					WithArgs("user-2").
					WillReturnRows(rows)
			},
			check: func(t *testing.T, rec *domain.ProfileRecord) {
				assert.Equal(t, "LIC-991", *rec.LicenseNumber)
				assert.Equal(t, "cardiology", *rec.Specialty)
				assert.Nil(t, rec.MRN)
			},
		},
		{
			name:  "missing row is a confirmed absence",
			store: domain.StoreDoctors,
			setupDB: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("FROM doctors").
					WithArgs("user-2").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrProfileNotFound,
		},
		{
			name:  "query failure is transient",
			store: domain.StoreAdministrators,
			setupDB: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("FROM administrators").
					WithArgs("user-3").
					WillReturnError(errors.New("connection refused"))
			},
			wantTransient: true,
		},
	}

	identityByStore := map[domain.ProfileStore]string{
		domain.StorePatients:       "user-1",
		domain.StoreDoctors:        "user-2",
		domain.StoreAdministrators: "user-3",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mockDB := createTestProfileRepository(t)
			defer mockDB.Close()

			tt.setupDB(mockDB)

			rec, err := repo.FindByIdentityID(context.Background(), tt.store, identityByStore[tt.store])

			switch {
			case tt.wantErr != nil:
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, domain.IsTransient(err))
				assert.Nil(t, rec)
			case tt.wantTransient:
				require.Error(t, err)
				assert.True(t, domain.IsTransient(err))
				assert.Nil(t, rec)
			default:
				require.NoError(t, err)
				require.NotNil(t, rec)
				tt.check(t, rec)
			}

			assert.NoError(t, mockDB.ExpectationsWereMet())
		})
	}
}

func TestProfileRepository_FindByIdentityID_UnknownStore(t *testing.T) {
	repo, mockDB := createTestProfileRepository(t)
	defer mockDB.Close()

	rec, err := repo.FindByIdentityID(context.Background(), domain.ProfileStore("nurses"), "user-1")

	assert.Error(t, err)
	assert.Nil(t, rec)
	assert.Contains(t, err.Error(), "unknown profile store")
}
