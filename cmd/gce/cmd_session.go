package main

import (
	"context"
	"fmt"
	"io"

	"gce/internal/identity"
	"gce/internal/navigation"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	loginName       string
	loginRole       string
	loginDepartment string
	loginMobile     string
	loginKYC        string
)

// loginCmd signs a user in and persists the identity
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and persist the session",
	Long: `Signs in as the given user and stores the identity in the workspace.
The next launch restores it and opens the role's entry screen.

Examples:
  gce login --name "Asha Rao" --role citizen --mobile 9800000001
  gce login --name "R. Iyer" --role officer --department Sanitation
  gce login --name root --role admin`,
	RunE: runLogin,
}

// logoutCmd clears the stored session
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	RunE:  runLogout,
}

// whoamiCmd prints the restored identity
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user and the screen a launch would open",
	RunE:  runWhoami,
}

// verifyKYCCmd marks the signed-in citizen as verified
var verifyKYCCmd = &cobra.Command{
	Use:   "verify-kyc",
	Short: "Mark the signed-in citizen's identity as verified",
	RunE:  runVerifyKYC,
}

func init() {
	loginCmd.Flags().StringVar(&loginName, "name", "", "Display name (required)")
	loginCmd.Flags().StringVar(&loginRole, "role", "citizen", "Role: citizen, officer or admin")
	loginCmd.Flags().StringVar(&loginDepartment, "department", "", "Department (officers only)")
	loginCmd.Flags().StringVar(&loginMobile, "mobile", "", "Mobile number")
	loginCmd.Flags().StringVar(&loginKYC, "kyc", "", "KYC status: NOT_SUBMITTED, PENDING, VERIFIED or REJECTED")
	loginCmd.MarkFlagRequired("name")
}

func runLogin(cmd *cobra.Command, args []string) error {
	role, err := identity.ParseRole(loginRole)
	if err != nil {
		return err
	}
	status, err := identity.ParseKYCStatus(loginKYC)
	if err != nil {
		return err
	}

	id := identity.New(loginName, role)
	id.Department = loginDepartment
	id.Mobile = loginMobile
	id.KYCStatus = status
	if role == identity.RoleCitizen && status == identity.KYCUnset {
		id.KYCStatus = identity.KYCNotSubmitted
	}

	ctx := commandContext(cmd)
	env, err := bootedEnv(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	view, err := env.ctrl.HandleLogin(ctx, id)
	if err != nil {
		return err
	}
	logger.Info("signed in", zap.String("id", id.ID), zap.String("role", string(id.Role)))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Signed in as %s (%s)\n", id.Name, id.DisplayRole())
	fmt.Fprintf(out, "Opening: %s\n", view)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	env, err := bootedEnv(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	was := env.ctrl.Identity()
	env.ctrl.HandleLogout(ctx)
	if was == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Signed out %s\n", was.Name)
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	env, err := bootedEnv(commandContext(cmd))
	if err != nil {
		return err
	}
	defer env.close()

	printIdentity(cmd.OutOrStdout(), env.ctrl.Identity(), env.ctrl.CurrentView())
	return nil
}

func runVerifyKYC(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	env, err := bootedEnv(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	id := env.ctrl.Identity()
	if id == nil {
		return fmt.Errorf("verify-kyc: sign in first")
	}
	if !id.IsCitizen() {
		return fmt.Errorf("verify-kyc: only citizens complete KYC (signed in as %s)", id.DisplayRole())
	}

	view, err := env.ctrl.HandleKYCVerified(ctx, id.WithKYCStatus(identity.KYCVerified))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Identity verified for %s\nOpening: %s\n", id.Name, view)
	return nil
}

func printIdentity(w io.Writer, id *identity.Identity, view navigation.View) {
	if id == nil {
		fmt.Fprintln(w, "Not signed in")
		fmt.Fprintf(w, "Opening: %s\n", view)
		return
	}
	fmt.Fprintf(w, "Name:   %s\n", id.Name)
	fmt.Fprintf(w, "Role:   %s\n", id.DisplayRole())
	fmt.Fprintf(w, "ID:     %s\n", id.ID)
	if id.Mobile != "" {
		fmt.Fprintf(w, "Mobile: %s\n", id.Mobile)
	}
	if id.IsCitizen() {
		kyc := string(id.KYCStatus)
		if kyc == "" {
			kyc = "unset"
		}
		fmt.Fprintf(w, "KYC:    %s\n", kyc)
	}
	fmt.Fprintf(w, "Opening: %s\n", view)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
