package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrUnknownBackend is returned by Validate for an unsupported session backend.
var ErrUnknownBackend = errors.New("unknown session backend")

// Session backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ValidBackends lists all supported session backends.
var ValidBackends = []string{BackendFile, BackendSQLite, BackendMemory}

// DefaultSplashDelay is how long the splash screen is held while the
// stored session is restored.
const DefaultSplashDelay = 1500 * time.Millisecond

// Config holds all gce configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	Session   SessionConfig   `yaml:"session"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
	Logging   LoggingConfig   `yaml:"logging"`
	UI        UIConfig        `yaml:"ui"`

	overrides []string // env vars applied by Load
}

// SessionConfig selects where the signed-in identity is persisted.
type SessionConfig struct {
	Backend string `yaml:"backend"` // file, sqlite, memory
	Path    string `yaml:"path"`    // empty picks a per-backend default under .gce/
}

// BootstrapConfig configures the startup sequence.
type BootstrapConfig struct {
	SplashDelay string `yaml:"splash_delay"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "gce",
		Version: "1.0.0",
		Session: SessionConfig{
			Backend: BackendFile,
		},
		Bootstrap: BootstrapConfig{
			SplashDelay: DefaultSplashDelay.String(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		UI: *DefaultUIConfig(),
	}
}

// DefaultPath returns the config file location inside a workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, ".gce", "config.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	c.overrides = c.overrides[:0]
	if v := os.Getenv("GCE_SESSION_BACKEND"); v != "" {
		c.Session.Backend = strings.ToLower(v)
		c.overrides = append(c.overrides, "GCE_SESSION_BACKEND")
	}
	if v := os.Getenv("GCE_SESSION_PATH"); v != "" {
		c.Session.Path = v
		c.overrides = append(c.overrides, "GCE_SESSION_PATH")
	}
	if v := os.Getenv("GCE_SPLASH_DELAY"); v != "" {
		c.Bootstrap.SplashDelay = v
		c.overrides = append(c.overrides, "GCE_SPLASH_DELAY")
	}
	if v := os.Getenv("GCE_THEME"); v != "" {
		c.UI.Theme = strings.ToLower(v)
		c.overrides = append(c.overrides, "GCE_THEME")
	}
	if v := os.Getenv("GCE_DEBUG"); v == "1" || strings.EqualFold(v, "true") {
		c.Logging.DebugMode = true
		c.overrides = append(c.overrides, "GCE_DEBUG")
	}
}

// Overrides lists the environment variables that changed this config.
func (c *Config) Overrides() []string {
	return append([]string(nil), c.overrides...)
}

// GetSplashDelay returns the splash delay as a duration.
func (c *Config) GetSplashDelay() time.Duration {
	d, err := time.ParseDuration(c.Bootstrap.SplashDelay)
	if err != nil || d < 0 {
		return DefaultSplashDelay
	}
	return d
}

// SessionPath resolves the session path against the workspace.
func (c *Config) SessionPath(workspace string) string {
	p := c.Session.Path
	if p == "" {
		p = filepath.Join(".gce", "session.json")
		if c.Session.Backend == BackendSQLite {
			p = filepath.Join(".gce", "session.db")
		}
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workspace, p)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	valid := false
	for _, b := range ValidBackends {
		if c.Session.Backend == b {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: %q (valid: %v)", ErrUnknownBackend, c.Session.Backend, ValidBackends)
	}

	d, err := time.ParseDuration(c.Bootstrap.SplashDelay)
	if err != nil {
		return fmt.Errorf("invalid bootstrap.splash_delay %q: %w", c.Bootstrap.SplashDelay, err)
	}
	if d < 0 {
		return fmt.Errorf("invalid bootstrap.splash_delay %q: must not be negative", c.Bootstrap.SplashDelay)
	}

	switch c.UI.Theme {
	case "", ThemeAuto, ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("invalid ui.theme %q", c.UI.Theme)
	}

	return nil
}
