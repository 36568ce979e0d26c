package navigation

import "gce/internal/identity"

// ScreenKind names the component a view renders to.
type ScreenKind int

const (
	ScreenSplash ScreenKind = iota
	ScreenLanding
	ScreenLogin
	ScreenTracker
	ScreenPublicFeed
	ScreenDashboard
	ScreenAdminDashboard
	ScreenKYC
	ScreenGrievanceForm
	ScreenGrievanceList
	ScreenProfile
	ScreenPlaceholder
)

var screenNames = map[ScreenKind]string{
	ScreenSplash:         "splash",
	ScreenLanding:        "landing",
	ScreenLogin:          "login",
	ScreenTracker:        "tracker",
	ScreenPublicFeed:     "public-feed",
	ScreenDashboard:      "dashboard",
	ScreenAdminDashboard: "admin-dashboard",
	ScreenKYC:            "kyc-verification",
	ScreenGrievanceForm:  "grievance-form",
	ScreenGrievanceList:  "grievance-list",
	ScreenProfile:        "profile",
	ScreenPlaceholder:    "placeholder",
}

func (k ScreenKind) String() string {
	if s, ok := screenNames[k]; ok {
		return s
	}
	return "unknown"
}

// Screen is what the shell renders for the current state.
type Screen struct {
	Kind ScreenKind
	// View is the router state the screen was resolved from.
	View View
	// Placeholder is set when Kind is ScreenPlaceholder.
	Placeholder Placeholder
	// Framed screens are wrapped in the signed-in layout (nav bar, logout).
	Framed bool
	// ReadOnly is set for the public feed shown to anonymous visitors.
	ReadOnly bool
}

// Resolve maps (identity, view) to a screen. A nil identity means signed out.
func Resolve(id *identity.Identity, v View) Screen {
	if id == nil {
		return resolveAnonymous(v)
	}

	s := Screen{View: v, Framed: true}
	if d := Authorize(id.Role, v); !d.Allowed {
		s.Kind = ScreenPlaceholder
		s.Placeholder = d.Placeholder
		return s
	}

	switch v {
	case ViewDashboard:
		s.Kind = ScreenDashboard
	case ViewAdminDashboard:
		s.Kind = ScreenAdminDashboard
	case ViewKYC:
		s.Kind = ScreenKYC
	case ViewNewGrievance:
		s.Kind = ScreenGrievanceForm
	case ViewCommunity:
		s.Kind = ScreenPublicFeed
	case ViewTracking:
		s.Kind = ScreenTracker
	case ViewProfile:
		s.Kind = ScreenProfile
	default:
		// list, and the signed-out views a stale state may still hold
		s.Kind = ScreenGrievanceList
	}
	return s
}

func resolveAnonymous(v View) Screen {
	s := Screen{View: v}
	switch v {
	case ViewLanding:
		s.Kind = ScreenLanding
	case ViewTracking:
		s.Kind = ScreenTracker
	case ViewCommunity:
		s.Kind = ScreenPublicFeed
		s.ReadOnly = true
	default:
		s.Kind = ScreenLogin
	}
	return s
}

// Splash is the screen shown while the stored session is being restored.
func Splash() Screen {
	return Screen{Kind: ScreenSplash, View: ViewLanding}
}
