// Package tui provides the terminal user interface for daygrid.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"daygrid/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg      lipgloss.Color
	colorFg      lipgloss.Color
	colorFgMuted lipgloss.Color
	colorAccent  lipgloss.Color
	colorGhost   lipgloss.Color
	colorWarning lipgloss.Color

	TitleStyle      lipgloss.Style
	LaneHeaderStyle lipgloss.Style
	RulerStyle      lipgloss.Style
	GridStyle       lipgloss.Style
	StatusStyle     lipgloss.Style
	ErrorStyle      lipgloss.Style
	GhostStyle      lipgloss.Style
	MilestoneStyle  lipgloss.Style

	ModalStyle      lipgloss.Style
	ModalLabelStyle lipgloss.Style

	// Per-color entry styles are derived on demand and cached: lane colors
	// come from data, not the theme.
	entryStyles map[string]lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{
		colorBg:      theme.Color(t.Bg),
		colorFg:      theme.Color(t.Fg),
		colorFgMuted: theme.Color(t.FgMuted),
		colorAccent:  theme.Color(t.Accent),
		colorGhost:   theme.Color(t.Ghost),
		colorWarning: theme.Color(t.Warning),
		entryStyles:  make(map[string]lipgloss.Style),
	}

	s.TitleStyle = lipgloss.NewStyle().Foreground(s.colorAccent).Bold(true)
	s.LaneHeaderStyle = lipgloss.NewStyle().Foreground(s.colorAccent)
	s.RulerStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted)
	s.GridStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted)
	s.StatusStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted)
	s.ErrorStyle = lipgloss.NewStyle().Foreground(s.colorWarning)
	s.GhostStyle = lipgloss.NewStyle().Background(s.colorGhost).Foreground(s.colorFg)
	s.MilestoneStyle = lipgloss.NewStyle().Foreground(theme.Color(t.Milestone)).Bold(true)

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorAccent).
		Background(theme.Color(t.BgHighlight)).
		Padding(1, 2)
	s.ModalLabelStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted)

	return s
}

// EntryStyle returns the block style for an entry color, deriving and
// caching it on first use.
func (s *Styles) EntryStyle(color string) lipgloss.Style {
	if color == "" {
		color = "#7f849c"
	}
	if st, ok := s.entryStyles[color]; ok {
		return st
	}
	st := lipgloss.NewStyle().Background(theme.Color(color)).Foreground(s.colorBg)
	s.entryStyles[color] = st
	return st
}
