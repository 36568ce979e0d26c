// Package app is the portal's top-level controller. It owns the signed-in
// identity, the current view and the loading flag, and turns screen
// callbacks (login, logout, verification, back, navigation) into router
// transitions. Screens never mutate this state directly.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gce/internal/identity"
	"gce/internal/logging"
	"gce/internal/navigation"
	"gce/internal/session"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrNotReady is returned for events that arrive before bootstrap finishes.
	ErrNotReady = errors.New("bootstrap not complete")
	// ErrNotAuthenticated is returned for events that need a signed-in user.
	ErrNotAuthenticated = errors.New("not signed in")
	// ErrIdentityMismatch is returned when a verification result belongs to
	// a different user or changes the role.
	ErrIdentityMismatch = errors.New("verified identity does not match signed-in user")
)

// State is a read-only snapshot for observers.
type State struct {
	Identity *identity.Identity
	View     navigation.View
	Loading  bool
	Screen   navigation.Screen
}

// Authenticated reports whether someone is signed in.
func (s State) Authenticated() bool { return s.Identity != nil }

// Controller drives the session/navigation state machine. Methods must be
// called from a single goroutine, except Restore which performs no mutation.
type Controller struct {
	store       session.Store
	clock       Clock
	splashDelay time.Duration

	router   *navigation.Router
	identity *identity.Identity
	loading  bool
	booted   bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the clock used for the splash delay.
func WithClock(c Clock) Option {
	return func(ctrl *Controller) { ctrl.clock = c }
}

// WithSplashDelay sets how long the splash is held during bootstrap.
func WithSplashDelay(d time.Duration) Option {
	return func(ctrl *Controller) { ctrl.splashDelay = d }
}

// WithRouter supplies a router, e.g. one with an OnChange observer attached.
func WithRouter(r *navigation.Router) Option {
	return func(ctrl *Controller) { ctrl.router = r }
}

// New returns a controller in the loading state on the landing view.
func New(store session.Store, opts ...Option) *Controller {
	c := &Controller{
		store:       store,
		clock:       RealClock{},
		splashDelay: 1500 * time.Millisecond,
		router:      navigation.NewRouter(),
		loading:     true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// BOOTSTRAP
// =============================================================================

// RestoreResult carries what Restore found. Apply it with ApplyRestore.
type RestoreResult struct {
	Identity identity.Identity
	Found    bool
	Err      error
}

// Restore reads the stored session and waits out the splash delay. The two
// run together, so the splash lasts max(read, delay). It does not touch
// controller state and may run off the UI goroutine.
func (c *Controller) Restore(ctx context.Context) RestoreResult {
	timer := logging.StartTimer(logging.CategoryBoot, "session restore")
	defer timer.Stop()
	logging.BootDebug("restoring session, splash held for %s", c.splashDelay)

	var res RestoreResult
	var g errgroup.Group
	g.Go(func() error {
		id, ok, err := c.store.Load(ctx)
		res.Identity, res.Found = id, ok
		return err
	})
	g.Go(func() error {
		c.clock.Sleep(c.splashDelay)
		return nil
	})
	res.Err = g.Wait()
	return res
}

// ApplyRestore finishes bootstrap. A read error or missing session leaves
// the user signed out on the landing view. Only the first call has effect.
func (c *Controller) ApplyRestore(res RestoreResult) State {
	if c.booted {
		return c.State()
	}
	c.booted = true

	if res.Err != nil {
		logging.BootWarn("session restore failed, continuing signed out: %v", res.Err)
	}

	if res.Err == nil && res.Found {
		id := res.Identity
		c.identity = &id
		view := c.router.Enter(id)
		logging.Boot("restored session id=%s role=%s -> %s", id.ID, id.Role, view)
		c.audit().SessionRestored(view.String())
	} else {
		c.identity = nil
		c.router.Reset()
		logging.Boot("no session, showing landing")
		logging.Audit().SessionAbsent(res.Err)
	}
	c.loading = false
	return c.State()
}

// Bootstrap runs Restore and ApplyRestore in sequence.
func (c *Controller) Bootstrap(ctx context.Context) State {
	return c.ApplyRestore(c.Restore(ctx))
}

// =============================================================================
// AUTH EVENTS
// =============================================================================

// HandleLogin persists the identity and routes to its entry view.
// On a save failure nothing changes.
func (c *Controller) HandleLogin(ctx context.Context, id identity.Identity) (navigation.View, error) {
	if c.loading {
		return c.router.Current(), ErrNotReady
	}
	audit := logging.AuditFor(id.ID, string(id.Role))
	if err := id.ValidateForLogin(); err != nil {
		audit.Login("", err)
		return c.router.Current(), fmt.Errorf("login rejected: %w", err)
	}
	if err := c.store.Save(ctx, id); err != nil {
		logging.AuthError("failed to persist login for %s: %v", id.ID, err)
		audit.Login("", err)
		return c.router.Current(), fmt.Errorf("failed to save session: %w", err)
	}

	c.identity = &id
	view := c.router.Enter(id)
	logging.Auth("login id=%s role=%s -> %s", id.ID, id.Role, view)
	audit.Login(view.String(), nil)
	return view, nil
}

// HandleLogout clears the session and returns to landing. It always resets
// local state; a store failure is only logged.
func (c *Controller) HandleLogout(ctx context.Context) navigation.View {
	err := c.store.Clear(ctx)
	if err != nil {
		logging.AuthError("failed to clear session on logout: %v", err)
	}
	if c.identity != nil {
		logging.Auth("logout id=%s", c.identity.ID)
	}
	c.audit().Logout(err)
	c.identity = nil
	return c.router.Reset()
}

// HandleKYCVerified stores the updated identity and forces the grievance
// form, whatever view was showing.
func (c *Controller) HandleKYCVerified(ctx context.Context, updated identity.Identity) (navigation.View, error) {
	if c.loading {
		return c.router.Current(), ErrNotReady
	}
	if c.identity == nil {
		return c.router.Current(), ErrNotAuthenticated
	}
	if updated.ID != c.identity.ID || updated.Role != c.identity.Role {
		return c.router.Current(), ErrIdentityMismatch
	}
	updated.Department = c.identity.Department
	event := kycAuditEvent(updated.KYCStatus)
	if err := c.store.Save(ctx, updated); err != nil {
		c.audit().KYC(event, err)
		return c.router.Current(), fmt.Errorf("failed to save session: %w", err)
	}

	c.identity = &updated
	logging.KYC("kyc status for %s is now %s", updated.ID, updated.KYCStatus)
	c.audit().KYC(event, nil)
	return c.router.Force(navigation.ViewNewGrievance, "kyc-verified"), nil
}

// kycAuditEvent names the audit event for a verification outcome.
func kycAuditEvent(status identity.KYCStatus) logging.AuditEventType {
	switch status {
	case identity.KYCVerified:
		return logging.AuditKYCVerified
	case identity.KYCRejected:
		return logging.AuditKYCRejected
	}
	return logging.AuditKYCUpdated
}

// SkipKYC moves to the grievance form without persisting anything.
func (c *Controller) SkipKYC() navigation.View {
	if !c.ready() || c.identity == nil {
		return c.router.Current()
	}
	logging.KYC("kyc skipped by %s", c.identity.ID)
	c.audit().KYC(logging.AuditKYCSkipped, nil)
	return c.router.Force(navigation.ViewNewGrievance, "kyc-skipped")
}

// GrievanceSubmitted is the grievance form's success callback.
func (c *Controller) GrievanceSubmitted() navigation.View {
	if !c.ready() || c.identity == nil {
		return c.router.Current()
	}
	return c.router.Force(navigation.ViewList, "grievance-submitted")
}

// =============================================================================
// NAVIGATION
// =============================================================================

func (c *Controller) ready() bool {
	if c.loading {
		logging.RoutingDebug("input ignored while loading")
		return false
	}
	return true
}

// Navigate requests a view by value. Signed-out requests for views outside
// the public set still move the state; they render the login screen. A value
// outside the view set lands on list, or login when signed out.
func (c *Controller) Navigate(v navigation.View) navigation.View {
	if !c.ready() {
		return c.router.Current()
	}
	view := c.router.Request(v, c.identity != nil)
	c.auditDenial()
	return view
}

// NavigateToken requests a view by its textual token.
func (c *Controller) NavigateToken(token string) navigation.View {
	if !c.ready() {
		return c.router.Current()
	}
	view := c.router.RequestToken(token, c.identity != nil)
	c.auditDenial()
	return view
}

func (c *Controller) auditDenial() {
	s := c.Screen()
	if s.Kind == navigation.ScreenPlaceholder {
		logging.Routing("%s denied for role %s", s.View, c.identity.Role)
		c.audit().AccessDenied(s.View.String(), s.Placeholder.String())
	}
}

func (c *Controller) audit() *logging.AuditLogger {
	if c.identity == nil {
		return logging.Audit()
	}
	return logging.AuditFor(c.identity.ID, string(c.identity.Role))
}

// Back applies the current screen's back action, if it has one.
func (c *Controller) Back() (navigation.View, bool) {
	if !c.ready() {
		return c.router.Current(), false
	}
	return c.router.Back(c.identity != nil)
}

// =============================================================================
// OBSERVERS
// =============================================================================

// Identity returns a copy of the signed-in identity, or nil.
func (c *Controller) Identity() *identity.Identity {
	if c.identity == nil {
		return nil
	}
	id := *c.identity
	return &id
}

// CurrentView returns the router state.
func (c *Controller) CurrentView() navigation.View { return c.router.Current() }

// Loading reports whether bootstrap is still running.
func (c *Controller) Loading() bool { return c.loading }

// Screen returns what should be rendered now.
func (c *Controller) Screen() navigation.Screen {
	if c.loading {
		return navigation.Splash()
	}
	return c.router.Screen(c.identity)
}

// State returns a snapshot of everything observers need.
func (c *Controller) State() State {
	return State{
		Identity: c.Identity(),
		View:     c.router.Current(),
		Loading:  c.loading,
		Screen:   c.Screen(),
	}
}
