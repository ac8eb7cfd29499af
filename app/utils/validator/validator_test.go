package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal-auth/app/domain"
)

func validRegistration(role string) *domain.RegistrationRequest {
	req := &domain.RegistrationRequest{
		Email:     "person@example.com",
		Password:  "long-enough-pw",
		Role:      role,
		FirstName: "Mina",
		LastName:  "Okabe",
	}
	switch role {
	case "doctor", "nurse", "cardiologist":
		req.HospitalID = "hosp-1"
		req.LicenseNumber = "LIC-42"
	case "admin", "administrator", "super_admin":
		req.HospitalID = "hosp-1"
		req.EmployeeID = "EMP-7"
	}
	return req
}

func TestValidator_Registration(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		mutate    func(*domain.RegistrationRequest)
		role      string
		wantField string
	}{
		{name: "valid patient", role: "patient"},
		{name: "valid doctor", role: "doctor"},
		{name: "valid doctor via specialty alias", role: "cardiologist"},
		{name: "valid administrator", role: "administrator"},
		{
			name:      "missing email",
			role:      "patient",
			mutate:    func(r *domain.RegistrationRequest) { r.Email = "" },
			wantField: "email",
		},
		{
			name:      "malformed email",
			role:      "patient",
			mutate:    func(r *domain.RegistrationRequest) { r.Email = "not-an-email" },
			wantField: "email",
		},
		{
			name:      "short password",
			role:      "patient",
			mutate:    func(r *domain.RegistrationRequest) { r.Password = "short" },
			wantField: "password",
		},
		{
			name:      "unknown role label",
			role:      "wizard",
			wantField: "role",
		},
		{
			name:      "doctor missing license number",
			role:      "doctor",
			mutate:    func(r *domain.RegistrationRequest) { r.LicenseNumber = "" },
			wantField: "license_number",
		},
		{
			name:      "staff missing hospital affiliation",
			role:      "nurse",
			mutate:    func(r *domain.RegistrationRequest) { r.HospitalID = "" },
			wantField: "hospital_id",
		},
		{
			name:      "administrator missing employee id",
			role:      "admin",
			mutate:    func(r *domain.RegistrationRequest) { r.EmployeeID = "" },
			wantField: "employee_id",
		},
		{
			name:      "future date of birth",
			role:      "patient",
			mutate:    func(r *domain.RegistrationRequest) { r.DateOfBirth = "2999-01-01" },
			wantField: "date_of_birth",
		},
		{
			name:      "bad blood type",
			role:      "patient",
			mutate:    func(r *domain.RegistrationRequest) { r.BloodType = "C+" },
			wantField: "blood_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegistration(tt.role)
			if tt.mutate != nil {
				tt.mutate(req)
			}

			err := v.Validate(req)

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Errors, tt.wantField)
		})
	}
}

func TestValidator_CustomRules(t *testing.T) {
	v := New()

	t.Run("role_label", func(t *testing.T) {
		assert.NoError(t, v.ValidateVar("Cardiologist", "role_label"))
		assert.Error(t, v.ValidateVar("wizard", "role_label"))
	})

	t.Run("mrn", func(t *testing.T) {
		assert.True(t, IsValidMRN("GEN26000042"))
		assert.False(t, IsValidMRN("26000042"))
		assert.False(t, IsValidMRN("gen26000042"))
	})

	t.Run("blood_type", func(t *testing.T) {
		assert.NoError(t, v.ValidateVar("AB-", "blood_type"))
		assert.Error(t, v.ValidateVar("C+", "blood_type"))
	})
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("a@b.co"))
	assert.False(t, IsValidEmail("a@"))
	assert.False(t, IsValidEmail(""))
}
