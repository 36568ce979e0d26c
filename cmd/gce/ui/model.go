package ui

import (
	"context"
	"errors"
	"fmt"

	"gce/internal/app"
	"gce/internal/identity"
	"gce/internal/logging"
	"gce/internal/navigation"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures the portal model.
type Options struct {
	Theme     string // light, dark or auto
	Watermark string
}

// navItems is the authenticated layout's numbered navigation. The gate
// decides what each entry renders for the signed-in role.
var navItems = []struct {
	view  navigation.View
	label string
}{
	{navigation.ViewList, "My Grievances"},
	{navigation.ViewNewGrievance, "New"},
	{navigation.ViewTracking, "Track"},
	{navigation.ViewCommunity, "Community"},
	{navigation.ViewDashboard, "Dashboard"},
	{navigation.ViewAdminDashboard, "Admin"},
	{navigation.ViewKYC, "Verify ID"},
	{navigation.ViewProfile, "Profile"},
}

// bootCompleteMsg carries the restored session back to Update.
type bootCompleteMsg struct {
	result app.RestoreResult
}

// Model is the bubbletea model for the portal.
type Model struct {
	ctx    context.Context
	ctrl   *app.Controller
	styles Styles
	opts   Options

	spinner spinner.Model
	login   loginForm
	subject textinput.Model

	width, height int
	isBooting     bool

	status string
	err    error
}

// New returns a model that starts on the splash screen. The controller must
// not have been bootstrapped yet.
func New(ctrl *app.Controller, opts Options) Model {
	styles := NewStyles(ThemeFor(opts.Theme))
	if opts.Watermark == "" {
		opts.Watermark = "GCE"
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.Spinner),
	)

	subject := textinput.New()
	subject.Placeholder = "Describe the issue"
	subject.CharLimit = 140

	return Model{
		ctx:       context.Background(),
		ctrl:      ctrl,
		styles:    styles,
		opts:      opts,
		spinner:   sp,
		login:     newLoginForm(),
		subject:   subject,
		width:     80,
		height:    24,
		isBooting: ctrl.Loading(),
	}
}

// Init starts the spinner and the session restore.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		performRestore(m.ctx, m.ctrl),
	)
}

// performRestore reads the stored session off the UI goroutine. The result
// is applied in Update so the controller has a single writer.
func performRestore(ctx context.Context, ctrl *app.Controller) tea.Cmd {
	return func() tea.Msg {
		return bootCompleteMsg{result: ctrl.Restore(ctx)}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.isBooting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case bootCompleteMsg:
		st := m.ctrl.ApplyRestore(msg.result)
		m.isBooting = false
		logging.UI("portal ready on %s", st.View)
		return m.refocus()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.isBooting {
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	screen := m.ctrl.Screen()
	key := msg.String()

	// Text entry consumes printable keys. The grievance field only does so
	// once activated, so the layout's nav and logout stay live on entry.
	switch {
	case screen.Kind == navigation.ScreenLogin:
		return m.handleLoginKey(msg)
	case screen.Kind == navigation.ScreenGrievanceForm && m.subject.Focused():
		return m.handleGrievanceKey(msg)
	}

	m.err = nil
	if key == "esc" {
		m.ctrl.Back()
		return m.refocus()
	}

	if screen.Framed {
		if v, ok := navKey(key); ok {
			m.ctrl.Navigate(v)
			return m.refocus()
		}
		if key == "o" {
			m.ctrl.HandleLogout(m.ctx)
			m.status = "Signed out"
			return m.refocus()
		}
	}

	switch screen.Kind {
	case navigation.ScreenLanding:
		switch key {
		case "l":
			m.ctrl.Navigate(navigation.ViewLogin)
		case "t":
			m.ctrl.Navigate(navigation.ViewTracking)
		case "f":
			m.ctrl.Navigate(navigation.ViewCommunity)
		case "q":
			return m, tea.Quit
		}

	case navigation.ScreenPublicFeed:
		if screen.ReadOnly && key == "h" {
			m.ctrl.Navigate(navigation.ViewLanding)
		}

	case navigation.ScreenKYC:
		switch key {
		case "v":
			m.verifyKYC()
		case "s":
			m.ctrl.SkipKYC()
		}

	case navigation.ScreenGrievanceForm:
		if key == "enter" || key == "i" {
			cmd := m.subject.Focus()
			return m, cmd
		}
	}

	return m.refocus()
}

func navKey(key string) (navigation.View, bool) {
	if len(key) != 1 || key[0] < '1' || int(key[0]-'1') >= len(navItems) {
		return 0, false
	}
	return navItems[key[0]-'1'].view, true
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.err = nil
		m.ctrl.Back()
		return m.refocus()
	case "tab", "down":
		cmd := m.login.next(1)
		return m, cmd
	case "shift+tab", "up":
		cmd := m.login.next(-1)
		return m, cmd
	case "enter":
		m.submitLogin()
		return m.refocus()
	}
	cmd := m.login.update(msg)
	return m, cmd
}

func (m *Model) submitLogin() {
	if m.login.value(fieldName) == "" {
		m.err = errors.New("name is required")
		return
	}
	id, err := m.login.identity()
	if err != nil {
		m.err = err
		return
	}
	if _, err := m.ctrl.HandleLogin(m.ctx, id); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = fmt.Sprintf("Welcome, %s", id.Name)
	m.login.reset()
}

func (m *Model) verifyKYC() {
	cur := m.ctrl.Identity()
	if cur == nil {
		return
	}
	if _, err := m.ctrl.HandleKYCVerified(m.ctx, cur.WithKYCStatus(identity.KYCVerified)); err != nil {
		m.err = err
		return
	}
	m.status = "Identity verified"
}

func (m Model) handleGrievanceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.err = nil
		m.subject.Blur()
		return m, nil
	case "enter":
		if m.subject.Value() == "" {
			m.err = errors.New("describe the issue before submitting")
			return m, nil
		}
		logging.UI("grievance submitted: %q", m.subject.Value())
		m.subject.Reset()
		m.err = nil
		m.status = "Grievance submitted"
		m.ctrl.GrievanceSubmitted()
		return m.refocus()
	}
	var cmd tea.Cmd
	m.subject, cmd = m.subject.Update(msg)
	return m, cmd
}

// refocus drops input focus after a screen change. The grievance field is
// activated explicitly with enter or i.
func (m Model) refocus() (tea.Model, tea.Cmd) {
	m.subject.Blur()
	return m, nil
}
