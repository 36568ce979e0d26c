// Package navigation decides which screen the portal shows.
//
// It holds three pieces, all free of I/O:
//
//   - DecideInitialView, the redirect policy applied at login and restore.
//   - Authorize, the per-view role gate.
//   - Router, the current-view state machine and its screen resolution.
//
// The role gate is render-level: a denied request still moves the router to
// the requested view, and only the resolved Screen differs.
package navigation

import "strings"

// View is one of the closed set of screens the router can be on.
type View int

const (
	ViewLanding View = iota
	ViewLogin
	ViewTracking
	ViewCommunity
	ViewDashboard
	ViewAdminDashboard
	ViewKYC
	ViewNewGrievance
	ViewList
	ViewProfile

	viewCount
)

var viewTokens = [viewCount]string{
	ViewLanding:        "landing",
	ViewLogin:          "login",
	ViewTracking:       "tracking",
	ViewCommunity:      "community",
	ViewDashboard:      "dashboard",
	ViewAdminDashboard: "admin-dashboard",
	ViewKYC:            "kyc",
	ViewNewGrievance:   "new-grievance",
	ViewList:           "list",
	ViewProfile:        "profile",
}

// AllViews lists every view in declaration order.
func AllViews() []View {
	out := make([]View, 0, viewCount)
	for v := View(0); v < viewCount; v++ {
		out = append(out, v)
	}
	return out
}

// IsValid reports whether v is a member of the closed set.
func (v View) IsValid() bool { return v >= 0 && v < viewCount }

// String returns the wire token, e.g. "admin-dashboard".
func (v View) String() string {
	if !v.IsValid() {
		return "unknown"
	}
	return viewTokens[v]
}

// ParseView maps a token to a view. ok is false for anything unrecognized.
func ParseView(token string) (View, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	for v, s := range viewTokens {
		if s == t {
			return View(v), true
		}
	}
	return 0, false
}

// DefaultView is where an unrecognized request lands.
func DefaultView(authenticated bool) View {
	if authenticated {
		return ViewList
	}
	return ViewLogin
}
