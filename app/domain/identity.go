package domain

import "time"

// IdentityMetadata is the application data attached to an identity at
// registration time. The remote identity service stores it verbatim; the
// role field is always written in normalized form.
type IdentityMetadata struct {
	Role              string `json:"role"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	FullName          string `json:"full_name,omitempty"`
	Phone             string `json:"phone,omitempty"`
	HospitalID        string `json:"hospital_id,omitempty"`
	LicenseNumber     string `json:"license_number,omitempty"`
	Specialty         string `json:"specialty,omitempty"`
	MRN               string `json:"mrn,omitempty"`
	MustResetPassword bool   `json:"must_reset_password,omitempty"`
}

// Identity is the account record owned by the remote identity service.
// The core never mutates it directly; it reads the id and email and
// attaches metadata only at creation time.
type Identity struct {
	ID        string           `json:"id"`
	Email     string           `json:"email"`
	Metadata  IdentityMetadata `json:"metadata"`
	CreatedAt time.Time        `json:"created_at"`
}

// RoleLabel returns the free-form role label found in identity metadata.
// Not trusted as canonical; callers must run it through NormalizeRole.
func (i *Identity) RoleLabel() string {
	return i.Metadata.Role
}

// DisplayName derives a display name from the metadata name fields,
// falling back to the email address.
func (i *Identity) DisplayName() string {
	if i.Metadata.FullName != "" {
		return i.Metadata.FullName
	}
	if name := joinName(i.Metadata.FirstName, i.Metadata.LastName); name != "" {
		return name
	}
	return i.Email
}

// RemoteSession is an authenticated session as issued by the remote
// identity service: tokens plus the identity they belong to.
type RemoteSession struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	Identity     Identity  `json:"identity"`
}
