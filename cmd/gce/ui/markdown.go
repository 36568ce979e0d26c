package ui

import (
	"fmt"
	"strings"

	"gce/internal/logging"

	"github.com/charmbracelet/glamour"
)

// renderMarkdown renders md with glamour, falling back to the raw text when
// the renderer cannot be built or panics.
func renderMarkdown(md string, width int, dark bool) (out string) {
	defer func() {
		if r := recover(); r != nil {
			logging.UI("markdown render panicked: %v", r)
			out = md
		}
	}()

	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logging.UIDebug("glamour unavailable: %v", err)
		return md
	}
	rendered, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(rendered, "\n")
}

const landingMarkdown = `# Citizen Grievance Portal

File a grievance with the right department, follow it to resolution, and see
what your neighbours are reporting.

* **Citizens** file and track grievances after a one-time identity check.
* **Officers** work the queue for their department.
* **Administrators** oversee every department.
`

func profileMarkdown(name, role, id, mobile, kyc string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", name)
	fmt.Fprintf(&b, "| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Role | %s |\n", role)
	fmt.Fprintf(&b, "| User ID | `%s` |\n", id)
	if mobile != "" {
		fmt.Fprintf(&b, "| Mobile | %s |\n", mobile)
	}
	if kyc != "" {
		fmt.Fprintf(&b, "| Identity | %s |\n", kyc)
	}
	return b.String()
}
