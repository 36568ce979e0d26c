package main

import (
	"fmt"
	"strings"

	"gce/internal/navigation"

	"github.com/spf13/cobra"
)

// routeCmd resolves a view for the stored session
var routeCmd = &cobra.Command{
	Use:   "route [view]",
	Short: "Show what a view resolves to for the signed-in user",
	Long: `Restores the session, requests the given view and prints the screen the
portal would render. Unknown views fall back to the grievance list when
signed in and to the login screen otherwise.

Views: ` + viewTokens(),
	Args: cobra.ExactArgs(1),
	RunE: runRoute,
}

func runRoute(cmd *cobra.Command, args []string) error {
	env, err := bootedEnv(commandContext(cmd))
	if err != nil {
		return err
	}
	defer env.close()

	view := env.ctrl.NavigateToken(args[0])
	screen := env.ctrl.Screen()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "View:   %s\n", view)
	fmt.Fprintf(out, "Screen: %s\n", screen.Kind)
	switch {
	case screen.Placeholder != navigation.PlaceholderNone:
		fmt.Fprintf(out, "Access: denied (%s)\n", screen.Placeholder)
	case screen.ReadOnly:
		fmt.Fprintln(out, "Access: read-only")
	default:
		fmt.Fprintln(out, "Access: allowed")
	}
	return nil
}

func viewTokens() string {
	views := navigation.AllViews()
	tokens := make([]string, len(views))
	for i, v := range views {
		tokens[i] = v.String()
	}
	return strings.Join(tokens, ", ")
}
