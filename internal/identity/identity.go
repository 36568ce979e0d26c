// Package identity defines the authenticated actor of the GCE portal and the
// closed enumerations (role, KYC status) that drive navigation decisions.
package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidKYCStatus  = errors.New("invalid kyc status")
	ErrMissingID         = errors.New("identity id required")
	ErrMissingDepartment = errors.New("department required for officers")
)

// Role is the actor's portal role. It is fixed at creation.
type Role string

const (
	RoleCitizen Role = "CITIZEN"
	RoleOfficer Role = "OFFICER"
	RoleAdmin   Role = "ADMIN"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleCitizen, RoleOfficer, RoleAdmin}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleCitizen, RoleOfficer, RoleAdmin:
		return true
	}
	return false
}

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !Role(s).IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	*r = Role(s)
	return nil
}

// KYCStatus is a citizen's identity-verification state.
// The zero value means the status was never set.
type KYCStatus string

const (
	KYCUnset        KYCStatus = ""
	KYCNotSubmitted KYCStatus = "NOT_SUBMITTED"
	KYCPending      KYCStatus = "PENDING"
	KYCVerified     KYCStatus = "VERIFIED"
	KYCRejected     KYCStatus = "REJECTED"
)

// IsValid reports whether s is unset or one of the four known statuses.
func (s KYCStatus) IsValid() bool {
	switch s {
	case KYCUnset, KYCNotSubmitted, KYCPending, KYCVerified, KYCRejected:
		return true
	}
	return false
}

// ParseKYCStatus accepts a status name in any case. Empty input yields KYCUnset.
func ParseKYCStatus(s string) (KYCStatus, error) {
	st := KYCStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidKYCStatus, s)
	}
	return st, nil
}

func (s *KYCStatus) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if !KYCStatus(v).IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidKYCStatus, v)
	}
	*s = KYCStatus(v)
	return nil
}

// Identity is the authenticated user as held by the client.
type Identity struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Role       Role      `json:"role"`
	Department string    `json:"department,omitempty"`
	Mobile     string    `json:"mobile,omitempty"`
	KYCStatus  KYCStatus `json:"kycStatus,omitempty"`
}

// New builds an identity with a fresh random ID.
func New(name string, role Role) Identity {
	return Identity{
		ID:   uuid.NewString(),
		Name: name,
		Role: role,
	}
}

// Validate checks the structural invariants every persisted identity holds.
func (i Identity) Validate() error {
	if i.ID == "" {
		return ErrMissingID
	}
	if !i.Role.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, string(i.Role))
	}
	if !i.KYCStatus.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidKYCStatus, string(i.KYCStatus))
	}
	return nil
}

// ValidateForLogin is Validate plus the login-time rule that officers
// belong to a department.
func (i Identity) ValidateForLogin() error {
	if err := i.Validate(); err != nil {
		return err
	}
	if i.Role == RoleOfficer && strings.TrimSpace(i.Department) == "" {
		return ErrMissingDepartment
	}
	return nil
}

// IsCitizen reports whether KYC applies to this identity.
func (i Identity) IsCitizen() bool { return i.Role == RoleCitizen }

// IsVerified reports whether a citizen has completed KYC.
func (i Identity) IsVerified() bool {
	return i.Role == RoleCitizen && i.KYCStatus == KYCVerified
}

// WithKYCStatus returns a copy with only the KYC status replaced.
func (i Identity) WithKYCStatus(status KYCStatus) Identity {
	i.KYCStatus = status
	return i
}

// DisplayRole returns a title-cased role label.
func (i Identity) DisplayRole() string {
	switch i.Role {
	case RoleCitizen:
		return "Citizen"
	case RoleOfficer:
		if i.Department != "" {
			return "Officer, " + i.Department
		}
		return "Officer"
	case RoleAdmin:
		return "Administrator"
	}
	return string(i.Role)
}
