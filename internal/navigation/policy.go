package navigation

import "gce/internal/identity"

// DecideInitialView picks the entry view for a freshly authenticated identity.
// Pure domain logic - no I/O, no side effects.
//
//	ADMIN                      -> admin-dashboard
//	OFFICER                    -> dashboard
//	CITIZEN, kyc VERIFIED      -> new-grievance
//	CITIZEN, any other status  -> kyc
func DecideInitialView(id identity.Identity) View {
	switch id.Role {
	case identity.RoleAdmin:
		return ViewAdminDashboard
	case identity.RoleOfficer:
		return ViewDashboard
	}
	if id.KYCStatus == identity.KYCVerified {
		return ViewNewGrievance
	}
	return ViewKYC
}
