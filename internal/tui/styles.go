package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	dangerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	legendStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)
