package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestProfileRecord_Transforms(t *testing.T) {
	rec := &ProfileRecord{
		ID:         "row-1",
		IdentityID: "identity-1",
		FirstName:  "Lina",
		LastName:   "Haddad",
		Email:      "lina@example.com",
		Phone:      strptr("+96170000000"),
		HospitalID: strptr("hosp-1"),
		IsActive:   true,
	}

	t.Run("patient", func(t *testing.T) {
		rec := *rec
		rec.MRN = strptr("GEN25000042")
		rec.Gender = strptr("female")
		rec.BloodType = strptr("O+")

		p := rec.PatientProfile()
		assert.Equal(t, RolePatient, p.Role)
		assert.Equal(t, "Lina Haddad", p.DisplayName)
		assert.Equal(t, "GEN25000042", p.MRN)
		assert.Equal(t, "female", p.Gender)
		assert.Equal(t, "O+", p.BloodType)
		assert.Empty(t, p.LicenseNumber)
		assert.True(t, p.Active)
	})

	t.Run("doctor", func(t *testing.T) {
		rec := *rec
		rec.LicenseNumber = strptr("LIC-88")
		rec.Specialty = strptr("cardiology")

		p := rec.DoctorProfile()
		assert.Equal(t, RoleDoctor, p.Role)
		assert.Equal(t, "LIC-88", p.LicenseNumber)
		assert.Equal(t, "cardiology", p.Specialty)
		assert.Empty(t, p.MRN)
	})

	t.Run("administrator", func(t *testing.T) {
		rec := *rec
		rec.EmployeeID = strptr("EMP-7")
		rec.Department = strptr("it")

		p := rec.AdministratorProfile(RoleSuperAdmin)
		assert.Equal(t, RoleSuperAdmin, p.Role)
		assert.Equal(t, "EMP-7", p.EmployeeID)
		assert.Equal(t, "it", p.Department)
	})

	t.Run("display name falls back to email", func(t *testing.T) {
		rec := *rec
		rec.FirstName = ""
		rec.LastName = ""

		p := rec.PatientProfile()
		assert.Equal(t, "lina@example.com", p.DisplayName)
	})
}

func TestNewMRN(t *testing.T) {
	at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "CMC25000042", NewMRN("CMC", at, 42))
	assert.Equal(t, "GEN25000007", NewMRN("", at, 7))
	assert.Equal(t, "GEN25000007", NewMRN("  gen ", at, 7))
	// Sequence wraps at six digits.
	assert.Equal(t, "CMC25000001", NewMRN("CMC", at, 1000001))
}

func TestIdentity_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		identity Identity
		want     string
	}{
		{
			name: "full name wins",
			identity: Identity{
				Email:    "a@b.c",
				Metadata: IdentityMetadata{FullName: "Ada Salem", FirstName: "X", LastName: "Y"},
			},
			want: "Ada Salem",
		},
		{
			name: "joined first and last",
			identity: Identity{
				Email:    "a@b.c",
				Metadata: IdentityMetadata{FirstName: "Ada", LastName: "Salem"},
			},
			want: "Ada Salem",
		},
		{
			name:     "email fallback",
			identity: Identity{Email: "a@b.c"},
			want:     "a@b.c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.identity.DisplayName())
		})
	}
}
