package tui

import "github.com/charmbracelet/lipgloss"

// StyleConfig holds the color palette for the browse UI.
type StyleConfig struct {
	Primary       lipgloss.Color
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	BorderColor   lipgloss.Color
	SelectedColor lipgloss.Color
	Published     lipgloss.Color
	Keep          lipgloss.Color
}

// DefaultStyles returns the default palette.
func DefaultStyles() *StyleConfig {
	return &StyleConfig{
		Primary:       lipgloss.Color("#8AB4F8"),
		TextPrimary:   lipgloss.Color("#E8EAED"),
		TextSecondary: lipgloss.Color("#9AA0A6"),
		BorderColor:   lipgloss.Color("#5F6368"),
		SelectedColor: lipgloss.Color("#303134"),
		Published:     lipgloss.Color("#34A853"),
		Keep:          lipgloss.Color("#FBBC04"),
	}
}

// TitleStyle returns the style for the list title bar.
func (s *StyleConfig) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.Primary).
		Bold(true).
		Padding(0, 1)
}

// HelpStyle returns the style for the key help line.
func (s *StyleConfig) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.TextSecondary).
		Padding(0, 1)
}

// PanelStyle returns the bordered container style for the list panel.
func (s *StyleConfig) PanelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.BorderColor)
}
