package config

import (
	"strings"

	"gce/internal/logging"
)

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`      // debug, info, warn, error
	Format     string          `yaml:"format"`     // json, text
	DebugMode  bool            `yaml:"debug_mode"` // Master toggle - false = no logging (production)
	Categories map[string]bool `yaml:"categories"` // Per-category toggles
}

// Settings converts the config section into logging.Initialize input.
func (c LoggingConfig) Settings() logging.Settings {
	return logging.Settings{
		DebugMode:  c.DebugMode,
		Level:      c.Level,
		JSONFormat: c.Format == "json",
		Categories: c.Categories,
	}
}

// LogEffective records the resolved config to the config category. Call it
// after logging.Initialize; earlier calls are discarded.
func (c *Config) LogEffective(workspace string) {
	logging.Config("session: backend=%s path=%s", c.Session.Backend, c.SessionPath(workspace))
	logging.Config("bootstrap: splash_delay=%s", c.GetSplashDelay())
	logging.ConfigDebug("ui: theme=%s watermark=%q alt_screen=%v", c.UI.Theme, c.UI.Watermark, c.UI.AltScreen)
	if len(c.overrides) > 0 {
		logging.Config("env overrides applied: %s", strings.Join(c.overrides, ", "))
	}
}
