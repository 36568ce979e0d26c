package navigation

import "gce/internal/identity"

// Placeholder is the content shown instead of a denied view.
type Placeholder int

const (
	PlaceholderNone Placeholder = iota
	PlaceholderAccessDenied
	PlaceholderRestricted
)

func (p Placeholder) String() string {
	switch p {
	case PlaceholderAccessDenied:
		return "Access Denied"
	case PlaceholderRestricted:
		return "Restricted Access"
	default:
		return ""
	}
}

// Decision is the role gate's verdict for one (role, view) pair.
type Decision struct {
	Allowed     bool
	Placeholder Placeholder
}

var allow = Decision{Allowed: true}

// Authorize applies the per-view role table. Views without an entry are
// open to every authenticated role.
func Authorize(role identity.Role, v View) Decision {
	switch v {
	case ViewDashboard:
		if role == identity.RoleOfficer || role == identity.RoleAdmin {
			return allow
		}
		return Decision{Placeholder: PlaceholderAccessDenied}
	case ViewAdminDashboard:
		if role == identity.RoleAdmin {
			return allow
		}
		return Decision{Placeholder: PlaceholderRestricted}
	}
	return allow
}
