package domain

// RegistrationRequest carries the sign-up form for any role. Role-specific
// requirements (license number for doctors, hospital affiliation for staff)
// are enforced by struct-level validation before any remote call is made.
type RegistrationRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone,omitempty"`

	// Staff fields
	HospitalID string `json:"hospital_id,omitempty"`

	// Doctor fields
	LicenseNumber string `json:"license_number,omitempty"`
	Specialty     string `json:"specialty,omitempty"`

	// Administrator fields
	EmployeeID string `json:"employee_id,omitempty"`
	Department string `json:"department,omitempty"`

	// Patient fields
	Gender      string `json:"gender,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	BloodType   string `json:"blood_type,omitempty"`
	MRN         string `json:"mrn,omitempty"`
}

// Metadata builds the identity metadata embedded at registration time.
// The role is always stored normalized; profile-table population is
// delegated to the remote side, which reads these fields.
func (r *RegistrationRequest) Metadata(role CanonicalRole) IdentityMetadata {
	meta := IdentityMetadata{
		Role:       string(role),
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		FullName:   joinName(r.FirstName, r.LastName),
		Phone:      r.Phone,
		HospitalID: r.HospitalID,
	}
	switch role {
	case RoleDoctor:
		meta.LicenseNumber = r.LicenseNumber
		meta.Specialty = r.Specialty
	case RolePatient:
		meta.MRN = r.MRN
	}
	return meta
}
