package ui

// Layout constants for consistent spacing
const (
	ViewportHorizontalPadding = 4
	HeaderHeight              = 1
	NavHeight                 = 2
	FooterHeight              = 1

	// Responsive breakpoints
	MinimumTerminalWidth = 60
	CompactModeWidth     = 100

	MinContentWidth = 40
	MaxContentWidth = 100
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
	}
}

// ContentWidth returns the usable content width, clamped to a readable range.
func (l LayoutConfig) ContentWidth() int {
	w := l.TerminalWidth - ViewportHorizontalPadding
	if w < MinContentWidth {
		return MinContentWidth
	}
	if w > MaxContentWidth {
		return MaxContentWidth
	}
	return w
}

// BodyHeight returns the rows left for a framed page after header, nav and footer.
func (l LayoutConfig) BodyHeight() int {
	h := l.TerminalHeight - HeaderHeight - NavHeight - FooterHeight
	if h < 0 {
		return 0
	}
	return h
}
