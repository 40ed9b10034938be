package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme contains the colors for the application.
type Theme struct {
	Primary lipgloss.TerminalColor
	Subtle  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Normal  lipgloss.TerminalColor

	// Signal colors are blended by strength, so they must be hex.
	SignalHigh lipgloss.AdaptiveColor
	SignalLow  lipgloss.AdaptiveColor
}

// CurrentTheme is the active theme for the application.
var CurrentTheme = NewDefaultTheme()

// NewDefaultTheme creates a new default theme.
func NewDefaultTheme() Theme {
	return Theme{
		Primary: lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#D359E3"}, // Purple/Pink
		Subtle:  lipgloss.AdaptiveColor{Light: "#BDBDBD", Dark: "#616161"}, // Gray
		Success: lipgloss.AdaptiveColor{Light: "#388E3C", Dark: "#81C784"}, // Green
		Error:   lipgloss.AdaptiveColor{Light: "#D32F2F", Dark: "#E57373"}, // Red
		Normal:  lipgloss.AdaptiveColor{Light: "#212121", Dark: "#FFFFFF"}, // Black/White

		SignalHigh: lipgloss.AdaptiveColor{Light: "#00B300", Dark: "#00FF00"},
		SignalLow:  lipgloss.AdaptiveColor{Light: "#D05F00", Dark: "#BC3C00"},
	}
}

// SignalColor blends between SignalLow and SignalHigh by strength (0-100).
func (t Theme) SignalColor(strength uint8, dark bool) lipgloss.Color {
	low, high := t.SignalLow.Light, t.SignalHigh.Light
	if dark {
		low, high = t.SignalLow.Dark, t.SignalHigh.Dark
	}
	start, err := colorful.Hex(low)
	if err != nil {
		return lipgloss.Color(high)
	}
	end, err := colorful.Hex(high)
	if err != nil {
		return lipgloss.Color(high)
	}
	if strength > 100 {
		strength = 100
	}
	return lipgloss.Color(start.BlendRgb(end, float64(strength)/100).Hex())
}
