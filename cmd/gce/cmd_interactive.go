package main

import (
	"fmt"

	"gce/cmd/gce/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// runInteractive launches the portal TUI.
func runInteractive(cmd *cobra.Command, args []string) error {
	env, err := openEnv(nil)
	if err != nil {
		return err
	}
	defer env.close()

	model := ui.New(env.ctrl, ui.Options{
		Theme:     env.cfg.UI.Theme,
		Watermark: env.cfg.UI.Watermark,
	})

	var opts []tea.ProgramOption
	if env.cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("portal exited: %w", err)
	}
	return nil
}
