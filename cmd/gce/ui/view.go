package ui

import (
	"strings"

	"gce/internal/identity"
	"gce/internal/navigation"

	"github.com/charmbracelet/lipgloss"
)

// SplashText is shown under the spinner while the session is restored.
const SplashText = "Authenticating Secure Node..."

// View renders the current screen.
func (m Model) View() string {
	if m.isBooting {
		return m.renderSplash()
	}

	screen := m.ctrl.Screen()
	layout := NewLayoutConfig(m.width, m.height)
	body := m.renderBody(screen, layout)

	if !screen.Framed {
		return m.styles.Content.Render(body) + "\n" + m.renderStatus()
	}
	return m.renderFrame(screen, layout, body)
}

func (m Model) renderSplash() string {
	mark := m.styles.Watermark.Render(bigWatermark(m.opts.Watermark))
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		mark,
		"",
		m.spinner.View()+" "+m.styles.Muted.Render(SplashText),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// bigWatermark spaces the letters out so the mark reads as a backdrop.
func bigWatermark(s string) string {
	return strings.Join(strings.Split(strings.ToUpper(s), ""), "   ")
}

// renderFrame draws the authenticated layout: header, numbered nav, body.
func (m Model) renderFrame(screen navigation.Screen, layout LayoutConfig, body string) string {
	id := m.ctrl.Identity()
	who := ""
	if id != nil {
		who = id.Name + " · " + id.DisplayRole()
	}
	header := m.styles.Header.Render(" GCE Grievance Portal ") + "  " + m.styles.Muted.Render(who)

	items := make([]string, 0, len(navItems))
	for i, item := range navItems {
		label := string(rune('1'+i)) + " " + item.label
		if layout.IsCompact {
			label = string(rune('1' + i))
			if item.view == screen.View {
				label += " " + item.label
			}
		}
		if item.view == screen.View {
			items = append(items, m.styles.NavCur.Render(label))
		} else {
			items = append(items, m.styles.NavItem.Render(label))
		}
	}
	nav := m.styles.Nav.Render(lipgloss.JoinHorizontal(lipgloss.Top, items...))

	footer := m.styles.Footer.Render(
		m.styles.RenderKey("1-8", "navigate") + "  " +
			m.styles.RenderKey("esc", "back") + "  " +
			m.styles.RenderKey("o", "logout") + "  " +
			m.styles.RenderKey("ctrl+c", "quit"))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		nav,
		m.styles.Content.Render(body),
		m.renderStatus(),
		footer,
	)
}

func (m Model) renderStatus() string {
	if m.err != nil {
		return m.styles.Error.Render("  " + m.err.Error())
	}
	if m.status != "" {
		return m.styles.Success.Render("  " + m.status)
	}
	return ""
}

func (m Model) renderBody(screen navigation.Screen, layout LayoutConfig) string {
	s := m.styles
	width := layout.ContentWidth()
	id := m.ctrl.Identity()

	switch screen.Kind {
	case navigation.ScreenLanding:
		return lipgloss.JoinVertical(lipgloss.Left,
			renderMarkdown(landingMarkdown, width, s.Theme.IsDark),
			"",
			s.RenderKey("l", "Login")+"  "+s.RenderKey("t", "Track a grievance")+"  "+
				s.RenderKey("f", "Community feed")+"  "+s.RenderKey("q", "Quit"),
		)

	case navigation.ScreenLogin:
		return lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render("Sign in"),
			m.login.view(s),
			s.RenderKey("tab", "next field")+"  "+s.RenderKey("enter", "sign in")+"  "+s.RenderKey("esc", "back"),
		)

	case navigation.ScreenTracker:
		return lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render("Track a Grievance"),
			s.Body.Render("Enter the reference number printed on your acknowledgement."),
			"",
			s.RenderKey("esc", "back"),
		)

	case navigation.ScreenPublicFeed:
		parts := []string{
			s.Title.Render("Community Feed"),
			s.Body.Render("Recent grievances reported in your area."),
		}
		if screen.ReadOnly {
			parts = append(parts, s.Subtitle.Render("Viewing as a guest. Sign in to upvote or comment."), "",
				s.RenderKey("h", "Home")+"  "+s.RenderKey("esc", "back"))
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)

	case navigation.ScreenDashboard:
		dept := "All departments"
		if id != nil && id.Department != "" {
			dept = id.Department
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render("Officer Dashboard"),
			s.Body.Render("Queue: "+dept),
		)

	case navigation.ScreenAdminDashboard:
		return lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render("Administration"),
			s.Body.Render("Departments, officers and escalations across the portal."),
		)

	case navigation.ScreenKYC:
		return lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render("Verify Your Identity"),
			s.Body.Render("Verified citizens' grievances are routed without manual review."),
			"",
			s.RenderKey("v", "Verify now")+"  "+s.RenderKey("s", "Skip for now"),
		)

	case navigation.ScreenGrievanceForm:
		hint := s.RenderKey("enter", "start writing")
		if m.subject.Focused() {
			hint = s.RenderKey("enter", "submit") + "  " + s.RenderKey("esc", "done editing")
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render("New Grievance"),
			m.subject.View(),
			"",
			hint,
		)

	case navigation.ScreenGrievanceList:
		return lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render("My Grievances"),
			s.Muted.Render("Nothing filed yet. Press 2 to file a grievance."),
		)

	case navigation.ScreenProfile:
		if id == nil {
			return ""
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			renderMarkdown(profileMarkdown(id.Name, id.DisplayRole(), id.ID, id.Mobile, kycLabel(*id)), width, s.Theme.IsDark),
			"",
			s.RenderKey("esc", "back")+"  "+s.RenderKey("o", "logout"),
		)

	case navigation.ScreenPlaceholder:
		return s.Denied.Render(screen.Placeholder.String())
	}
	return ""
}

func kycLabel(id identity.Identity) string {
	if !id.IsCitizen() {
		return ""
	}
	switch id.KYCStatus {
	case identity.KYCVerified:
		return "Verified"
	case identity.KYCPending:
		return "Pending review"
	case identity.KYCRejected:
		return "Rejected"
	}
	return "Not verified"
}
