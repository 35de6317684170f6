// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a TUI theme. Entry blocks take their color from
// their lane; the theme covers the chrome around them.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Modal background, subtle highlight
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Ruler, muted elements
	Accent      string `toml:"accent"`       // Title, lane headers, borders
	Ghost       string `toml:"ghost"`        // Create-drag preview block
	Warning     string `toml:"warning"`      // Errors, failed commits
	Milestone   string `toml:"milestone"`    // Zero-duration markers
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "mocha"
	}
	name = strings.ToLower(name)

	path := "embedded/" + name + ".toml"
	data, err := embeddedThemes.ReadFile(path)
	if err != nil {
		if name != "mocha" {
			return Load("mocha")
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	return &t, nil
}
