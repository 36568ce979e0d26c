package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gce/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// setupWorkspace points the global flags at a fresh workspace.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	logger = zap.NewNop()
	ws := t.TempDir()
	workspace = ws
	backend = ""
	ephemeral = false
	t.Cleanup(func() {
		workspace = ""
		backend = ""
		ephemeral = false
	})
	return ws
}

// run invokes a command's RunE with captured output.
func run(t *testing.T, fn func(*cobra.Command, []string) error, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	err := fn(cmd, args)
	return out.String(), err
}

func login(t *testing.T, name, role, department, kyc string) string {
	t.Helper()
	loginName, loginRole, loginDepartment, loginMobile, loginKYC = name, role, department, "", kyc
	t.Cleanup(func() {
		loginName, loginRole, loginDepartment, loginMobile, loginKYC = "", "citizen", "", "", ""
	})
	out, err := run(t, runLogin)
	if err != nil {
		t.Fatalf("runLogin failed: %v", err)
	}
	return out
}

func TestLoginWhoamiLogout(t *testing.T) {
	ws := setupWorkspace(t)

	out := login(t, "Asha Rao", "citizen", "", "")
	if !strings.Contains(out, "Opening: kyc") {
		t.Errorf("new citizen should open kyc, got:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(ws, ".gce", "session.json")); err != nil {
		t.Fatalf("session file not written: %v", err)
	}

	out, err := run(t, runWhoami)
	if err != nil {
		t.Fatalf("runWhoami failed: %v", err)
	}
	for _, want := range []string{"Name:   Asha Rao", "Role:   Citizen", "KYC:    NOT_SUBMITTED", "Opening: kyc"} {
		if !strings.Contains(out, want) {
			t.Errorf("whoami output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, runLogout)
	if err != nil {
		t.Fatalf("runLogout failed: %v", err)
	}
	if !strings.Contains(out, "Signed out Asha Rao") {
		t.Errorf("unexpected logout output:\n%s", out)
	}

	out, _ = run(t, runWhoami)
	if !strings.Contains(out, "Not signed in") || !strings.Contains(out, "Opening: landing") {
		t.Errorf("whoami after logout:\n%s", out)
	}
}

func TestLogin_OfficerWithoutDepartment(t *testing.T) {
	setupWorkspace(t)
	loginName, loginRole, loginDepartment = "Iyer", "officer", ""
	defer func() { loginName, loginRole = "", "citizen" }()

	if _, err := run(t, runLogin); err == nil {
		t.Fatal("officer login without department should fail")
	}
}

func TestLogin_InvalidRole(t *testing.T) {
	setupWorkspace(t)
	loginName, loginRole = "x", "superuser"
	defer func() { loginName, loginRole = "", "citizen" }()

	if _, err := run(t, runLogin); err == nil {
		t.Fatal("unknown role should fail")
	}
}

func TestVerifyKYC(t *testing.T) {
	setupWorkspace(t)

	if _, err := run(t, runVerifyKYC); err == nil {
		t.Error("verify-kyc without a session should fail")
	}

	login(t, "Meera", "citizen", "", "pending")
	out, err := run(t, runVerifyKYC)
	if err != nil {
		t.Fatalf("runVerifyKYC failed: %v", err)
	}
	if !strings.Contains(out, "Opening: new-grievance") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, _ = run(t, runWhoami)
	if !strings.Contains(out, "KYC:    VERIFIED") {
		t.Errorf("verification not persisted:\n%s", out)
	}
}

func TestVerifyKYC_AdminRejected(t *testing.T) {
	setupWorkspace(t)
	login(t, "Root", "admin", "", "")
	if _, err := run(t, runVerifyKYC); err == nil {
		t.Error("admins have no KYC to verify")
	}
}

func TestRoute(t *testing.T) {
	setupWorkspace(t)

	out, err := run(t, runRoute, "profile")
	if err != nil {
		t.Fatalf("runRoute failed: %v", err)
	}
	if !strings.Contains(out, "View:   profile") || !strings.Contains(out, "Screen: login") {
		t.Errorf("anonymous profile should render login:\n%s", out)
	}

	out, _ = run(t, runRoute, "community")
	if !strings.Contains(out, "Access: read-only") {
		t.Errorf("guest feed should be read-only:\n%s", out)
	}

	login(t, "Meera", "citizen", "", "verified")
	out, _ = run(t, runRoute, "dashboard")
	if !strings.Contains(out, "Access: denied (Access Denied)") {
		t.Errorf("citizen dashboard should be denied:\n%s", out)
	}

	out, _ = run(t, runRoute, "no-such-view")
	if !strings.Contains(out, "View:   list") {
		t.Errorf("unknown view should fall back to list:\n%s", out)
	}
}

func TestSQLiteBackend(t *testing.T) {
	ws := setupWorkspace(t)
	backend = config.BackendSQLite

	login(t, "Root", "admin", "", "")
	if _, err := os.Stat(filepath.Join(ws, ".gce", "session.db")); err != nil {
		t.Fatalf("sqlite session not created: %v", err)
	}
	out, _ := run(t, runWhoami)
	if !strings.Contains(out, "Opening: admin-dashboard") {
		t.Errorf("admin should restore to admin-dashboard:\n%s", out)
	}
}

func TestEphemeralLeavesNoSession(t *testing.T) {
	ws := setupWorkspace(t)
	ephemeral = true

	login(t, "Root", "admin", "", "")
	if _, err := os.Stat(filepath.Join(ws, ".gce", "session.json")); !os.IsNotExist(err) {
		t.Error("ephemeral login should not write a session file")
	}
}

func TestUnknownBackend(t *testing.T) {
	setupWorkspace(t)
	backend = "redis"
	if _, err := run(t, runWhoami); err == nil {
		t.Error("unknown backend should fail")
	}
}

func TestConfigInitShow(t *testing.T) {
	ws := setupWorkspace(t)

	out, err := run(t, runConfigInit)
	if err != nil {
		t.Fatalf("runConfigInit failed: %v", err)
	}
	if _, err := os.Stat(config.DefaultPath(ws)); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	out, _ = run(t, runConfigInit)
	if !strings.Contains(out, "already exists") {
		t.Errorf("second init should not overwrite:\n%s", out)
	}

	t.Setenv("GCE_SPLASH_DELAY", "250ms")
	out, err = run(t, runConfigShow)
	if err != nil {
		t.Fatalf("runConfigShow failed: %v", err)
	}
	if !strings.Contains(out, "splash_delay: 250ms") {
		t.Errorf("env override not shown:\n%s", out)
	}
}

func TestViewTokensListed(t *testing.T) {
	if !strings.Contains(routeCmd.Long, "admin-dashboard") {
		t.Error("route help should list view tokens")
	}
}
