package config

// Themes.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// UIConfig holds user interface configuration.
type UIConfig struct {
	// Theme is auto, light or dark. Auto inspects COLORFGBG.
	Theme string `yaml:"theme"`

	// Watermark is drawn behind the splash screen.
	Watermark string `yaml:"watermark"`

	// AltScreen runs the TUI in the terminal's alternate screen buffer.
	AltScreen bool `yaml:"alt_screen"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Theme:     ThemeAuto,
		Watermark: "GCE",
		AltScreen: true,
	}
}
