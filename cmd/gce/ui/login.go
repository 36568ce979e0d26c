package ui

import (
	"strings"

	"gce/internal/identity"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldName = iota
	fieldRole
	fieldDepartment
	fieldMobile
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Role", "Department", "Mobile"}

// loginForm collects the identity the portal signs in with.
type loginForm struct {
	inputs []textinput.Model
	focus  int
}

func newLoginForm() loginForm {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 64
		inputs[i] = ti
	}
	inputs[fieldName].Placeholder = "Full name"
	inputs[fieldRole].Placeholder = "citizen | officer | admin"
	inputs[fieldRole].SetValue("citizen")
	inputs[fieldDepartment].Placeholder = "Officers only"
	inputs[fieldMobile].Placeholder = "10-digit mobile"
	inputs[fieldMobile].CharLimit = 15
	inputs[fieldName].Focus()
	return loginForm{inputs: inputs}
}

func (f *loginForm) reset() {
	*f = newLoginForm()
}

func (f *loginForm) next(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.inputs[f.focus].Focus()
}

func (f *loginForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f loginForm) value(field int) string {
	return strings.TrimSpace(f.inputs[field].Value())
}

// identity builds the identity to sign in with. Citizens start with their
// KYC not yet submitted.
func (f loginForm) identity() (identity.Identity, error) {
	role, err := identity.ParseRole(f.value(fieldRole))
	if err != nil {
		return identity.Identity{}, err
	}
	id := identity.New(f.value(fieldName), role)
	id.Mobile = f.value(fieldMobile)
	if role == identity.RoleOfficer {
		id.Department = f.value(fieldDepartment)
	}
	if role == identity.RoleCitizen {
		id.KYCStatus = identity.KYCNotSubmitted
	}
	return id, nil
}

func (f loginForm) view(s Styles) string {
	var b strings.Builder
	for i, in := range f.inputs {
		label := s.Muted.Render(padRight(fieldLabels[i], 11))
		if i == f.focus {
			label = s.Key.Render(padRight(fieldLabels[i], 11))
		}
		b.WriteString(label + in.View() + "\n")
	}
	return b.String()
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
