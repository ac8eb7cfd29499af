package domain

import (
	"fmt"
	"strings"
	"time"
)

// ProfileStore identifies the table a role family keeps its profile
// records in.
type ProfileStore string

const (
	StorePatients       ProfileStore = "patients"
	StoreDoctors        ProfileStore = "doctors"
	StoreAdministrators ProfileStore = "administrators"
)

// ProfileRecord is the raw row shape returned by the profile store before
// normalization. Fields that do not exist for a given table come back nil.
type ProfileRecord struct {
	ID            string
	IdentityID    string
	FirstName     string
	LastName      string
	Email         string
	Phone         *string
	HospitalID    *string
	MRN           *string
	DateOfBirth   *string
	Gender        *string
	BloodType     *string
	LicenseNumber *string
	Specialty     *string
	EmployeeID    *string
	Department    *string
	IsActive      bool
	CreatedAt     time.Time
}

// Profile is the normalized role-specific record linked to an identity.
// Exactly one profile may exist per identity; it is created during
// registration (by the remote side) and read by the profile resolver.
type Profile struct {
	ID          string        `json:"id"`
	IdentityID  string        `json:"user_id"`
	Role        CanonicalRole `json:"role"`
	DisplayName string        `json:"display_name"`
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone,omitempty"`
	HospitalID  string        `json:"hospital_id,omitempty"`

	// Patient fields
	MRN         string `json:"mrn,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Gender      string `json:"gender,omitempty"`
	BloodType   string `json:"blood_type,omitempty"`

	// Doctor fields
	LicenseNumber string `json:"license_number,omitempty"`
	Specialty     string `json:"specialty,omitempty"`

	// Administrator fields
	EmployeeID string `json:"employee_id,omitempty"`
	Department string `json:"department,omitempty"`

	Active bool `json:"active"`
}

// NewMRN builds a medical record number from a hospital code, a year and a
// sequence: {code}{yy}{seq6}. An empty code falls back to "GEN".
func NewMRN(hospitalCode string, at time.Time, seq int) string {
	code := strings.ToUpper(strings.TrimSpace(hospitalCode))
	if code == "" {
		code = "GEN"
	}
	return fmt.Sprintf("%s%s%06d", code, at.Format("06"), seq%1000000)
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (rec *ProfileRecord) base(role CanonicalRole) *Profile {
	display := joinName(rec.FirstName, rec.LastName)
	if display == "" {
		display = rec.Email
	}
	return &Profile{
		ID:          rec.ID,
		IdentityID:  rec.IdentityID,
		Role:        role,
		DisplayName: display,
		FirstName:   rec.FirstName,
		LastName:    rec.LastName,
		Email:       rec.Email,
		Phone:       deref(rec.Phone),
		HospitalID:  deref(rec.HospitalID),
		Active:      rec.IsActive,
	}
}

// PatientProfile normalizes a patients row.
func (rec *ProfileRecord) PatientProfile() *Profile {
	p := rec.base(RolePatient)
	p.MRN = deref(rec.MRN)
	p.DateOfBirth = deref(rec.DateOfBirth)
	p.Gender = deref(rec.Gender)
	p.BloodType = deref(rec.BloodType)
	return p
}

// DoctorProfile normalizes a doctors row.
func (rec *ProfileRecord) DoctorProfile() *Profile {
	p := rec.base(RoleDoctor)
	p.LicenseNumber = deref(rec.LicenseNumber)
	p.Specialty = deref(rec.Specialty)
	return p
}

// AdministratorProfile normalizes an administrators row for the given
// admin-family role.
func (rec *ProfileRecord) AdministratorProfile(role CanonicalRole) *Profile {
	p := rec.base(role)
	p.EmployeeID = deref(rec.EmployeeID)
	p.Department = deref(rec.Department)
	return p
}
