package navigation

import (
	"gce/internal/identity"
	"gce/internal/logging"
)

// Transition records one change of the current view.
type Transition struct {
	From   View
	To     View
	Reason string
}

// Router owns the current view. It is not safe for concurrent use; the
// application controller drives it from a single goroutine.
type Router struct {
	current  View
	onChange func(Transition)
}

// NewRouter returns a router positioned on the landing view.
func NewRouter() *Router {
	return &Router{current: ViewLanding}
}

// OnChange registers an observer called after every transition.
func (r *Router) OnChange(fn func(Transition)) { r.onChange = fn }

// Current returns the current view.
func (r *Router) Current() View { return r.current }

func (r *Router) set(v View, reason string) View {
	t := Transition{From: r.current, To: v, Reason: reason}
	r.current = v
	logging.RoutingDebug("%s -> %s (%s)", t.From, t.To, reason)
	if r.onChange != nil {
		r.onChange(t)
	}
	return v
}

// Reset returns to the landing view. Used on logout and failed restore.
func (r *Router) Reset() View {
	return r.set(ViewLanding, "reset")
}

// Enter applies the redirect policy for a newly authenticated identity.
func (r *Router) Enter(id identity.Identity) View {
	return r.set(DecideInitialView(id), "enter:"+string(id.Role))
}

// Force moves to v without consulting anything else. It is reserved for
// events that dictate the next screen (verification, skip, submit).
func (r *Router) Force(v View, reason string) View {
	return r.set(v, reason)
}

// Request honors a user navigation request. The state always advances to v;
// the gate only affects what Resolve renders. An out-of-range view falls
// back to DefaultView for the given auth state.
func (r *Router) Request(v View, authenticated bool) View {
	if !v.IsValid() {
		logging.Routing("invalid view %d requested, falling back to %s", int(v), DefaultView(authenticated))
		return r.set(DefaultView(authenticated), "fallback")
	}
	return r.set(v, "request")
}

// RequestToken is Request for a textual token. Unrecognized tokens fall
// back to DefaultView for the given auth state.
func (r *Router) RequestToken(token string, authenticated bool) View {
	v, ok := ParseView(token)
	if !ok {
		logging.Routing("unrecognized view %q, falling back to %s", token, DefaultView(authenticated))
		return r.set(DefaultView(authenticated), "fallback")
	}
	return r.Request(v, authenticated)
}

// Back applies the back action of the current screen. ok is false when the
// current screen has no back action.
func (r *Router) Back(authenticated bool) (View, bool) {
	target, ok := backTarget(r.current, authenticated)
	if !ok {
		return r.current, false
	}
	return r.set(target, "back"), true
}

func backTarget(v View, authenticated bool) (View, bool) {
	if !authenticated {
		if v == ViewLanding {
			return v, false
		}
		// login, tracker, feed, and anything rendered as login
		return ViewLanding, true
	}
	switch v {
	case ViewTracking:
		return ViewNewGrievance, true
	case ViewProfile:
		return ViewList, true
	}
	return v, false
}

// Screen resolves the current view for the given identity.
func (r *Router) Screen(id *identity.Identity) Screen {
	return Resolve(id, r.current)
}
