package tui

import (
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
)

// ThemeColor is a color as written in a theme file: either a single "#hex"
// string, or a ["light", "dark"] pair.
type ThemeColor struct {
	Light, Dark string
}

// UnmarshalTOML implements toml.Unmarshaler.
func (c *ThemeColor) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		c.Light, c.Dark = v, v
		return nil
	case []any:
		if len(v) != 2 {
			return fmt.Errorf("color pair must have 2 entries, got %d", len(v))
		}
		light, ok1 := v[0].(string)
		dark, ok2 := v[1].(string)
		if !ok1 || !ok2 {
			return errors.New("color pair must be strings")
		}
		c.Light, c.Dark = light, dark
		return nil
	}
	return fmt.Errorf("invalid color %v", v)
}

func (c ThemeColor) isSet() bool {
	return c.Light != "" || c.Dark != ""
}

func (c ThemeColor) adaptive() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: c.Light, Dark: c.Dark}
}

func (c ThemeColor) terminalColor() lipgloss.TerminalColor {
	if c.Light == c.Dark {
		return lipgloss.Color(c.Light)
	}
	return c.adaptive()
}

// ThemeFile is the TOML layout of theme overrides. Unset values keep the
// color they are applied over.
type ThemeFile struct {
	Primary    ThemeColor `toml:"Primary,omitempty"`
	Subtle     ThemeColor `toml:"Subtle,omitempty"`
	Success    ThemeColor `toml:"Success,omitempty"`
	Error      ThemeColor `toml:"Error,omitempty"`
	Normal     ThemeColor `toml:"Normal,omitempty"`
	SignalHigh ThemeColor `toml:"SignalHigh,omitempty"`
	SignalLow  ThemeColor `toml:"SignalLow,omitempty"`
}

// Apply returns base with the colors set in tf replaced.
func (tf ThemeFile) Apply(base Theme) Theme {
	theme := base
	if tf.Primary.isSet() {
		theme.Primary = tf.Primary.terminalColor()
	}
	if tf.Subtle.isSet() {
		theme.Subtle = tf.Subtle.terminalColor()
	}
	if tf.Success.isSet() {
		theme.Success = tf.Success.terminalColor()
	}
	if tf.Error.isSet() {
		theme.Error = tf.Error.terminalColor()
	}
	if tf.Normal.isSet() {
		theme.Normal = tf.Normal.terminalColor()
	}
	if tf.SignalHigh.isSet() {
		theme.SignalHigh = tf.SignalHigh.adaptive()
	}
	if tf.SignalLow.isSet() {
		theme.SignalLow = tf.SignalLow.adaptive()
	}
	return theme
}

// LoadTheme reads theme overrides from r and applies them over the default
// theme.
func LoadTheme(r io.Reader) (Theme, error) {
	if r == nil {
		return Theme{}, errors.New("no theme reader")
	}
	var tf ThemeFile
	if _, err := toml.NewDecoder(r).Decode(&tf); err != nil {
		return Theme{}, err
	}
	return tf.Apply(NewDefaultTheme()), nil
}
