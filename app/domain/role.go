package domain

import (
	"fmt"
	"strings"
	"sync"
)

// CanonicalRole is the closed set of roles the session logic reasons about.
// Nurse and medical-specialty labels collapse into RoleDoctor for portal
// purposes; their profile records still live in their own tables.
type CanonicalRole string

const (
	RolePatient    CanonicalRole = "patient"
	RoleDoctor     CanonicalRole = "doctor"
	RoleAdmin      CanonicalRole = "admin"
	RoleSuperAdmin CanonicalRole = "super_admin"
)

// Portal is the UI entry point a user selects before signing in.
type Portal string

const (
	PortalPatient Portal = "patient"
	PortalStaff   Portal = "staff"
)

// Valid returns true if the role is one of the canonical values.
func (r CanonicalRole) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsStaff returns true for roles that sign in through the staff portal.
func (r CanonicalRole) IsStaff() bool {
	return r == RoleDoctor || r == RoleAdmin || r == RoleSuperAdmin
}

// Portal returns the portal this role is allowed to enter.
func (r CanonicalRole) Portal() Portal {
	if r == RolePatient {
		return PortalPatient
	}
	return PortalStaff
}

// Valid returns true if the portal is a known entry point.
func (p Portal) Valid() bool {
	return p == PortalPatient || p == PortalStaff
}

// roleAliases maps every label the system itself can produce, plus the
// historical synonyms and specialty pseudo-roles observed in identity
// metadata, to a canonical role. Unlisted labels fail normalization
// explicitly; there is no silent default.
var roleAliases = map[string]CanonicalRole{
	"patient": RolePatient,

	"doctor":        RoleDoctor,
	"physician":     RoleDoctor,
	"nurse":         RoleDoctor,
	"cardiologist":  RoleDoctor,
	"radiologist":   RoleDoctor,
	"neurologist":   RoleDoctor,
	"oncologist":    RoleDoctor,
	"pediatrician":  RoleDoctor,
	"surgeon":       RoleDoctor,
	"dermatologist": RoleDoctor,

	"admin":         RoleAdmin,
	"administrator": RoleAdmin,

	"super_admin": RoleSuperAdmin,
	"superadmin":  RoleSuperAdmin,
	"super admin": RoleSuperAdmin,
}

var aliasMu sync.RWMutex

// NormalizeRole maps an arbitrary role label to its canonical role.
// Matching is case-insensitive and ignores surrounding whitespace.
// Unknown labels return ErrUnknownRole; the mapping is total over every
// label the credential orchestrator itself writes into identity metadata.
func NormalizeRole(label string) (CanonicalRole, error) {
	key := strings.ToLower(strings.TrimSpace(label))
	if key == "" {
		return "", fmt.Errorf("%w: empty label", ErrUnknownRole)
	}

	aliasMu.RLock()
	role, ok := roleAliases[key]
	aliasMu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, label)
	}
	return role, nil
}

// RegisterRoleAliases merges additional label aliases into the table.
// Intended for startup-time configuration only; targets must be canonical.
func RegisterRoleAliases(aliases map[string]string) error {
	for label, target := range aliases {
		role := CanonicalRole(strings.ToLower(strings.TrimSpace(target)))
		if !role.Valid() {
			return fmt.Errorf("alias %q: invalid canonical role %q", label, target)
		}
		key := strings.ToLower(strings.TrimSpace(label))
		if key == "" {
			return fmt.Errorf("empty alias label for role %q", target)
		}
		aliasMu.Lock()
		roleAliases[key] = role
		aliasMu.Unlock()
	}
	return nil
}
