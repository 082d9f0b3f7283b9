package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains lipgloss styles shared by the TUI screens
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Info     lipgloss.Style
	Muted    lipgloss.Style
	Border   lipgloss.Style
	Focused  lipgloss.Style
	Help     lipgloss.Style
	Key      lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33")). // Blue
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			MarginBottom(1),
		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("75")). // Light blue
			Width(20),
		Value: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")), // Cyan
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")). // Blue
			Padding(1, 2),
		Focused: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")), // Pink
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			MarginTop(1),
		Key: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33")), // Blue
	}
}
