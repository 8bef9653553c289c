package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle     = lipgloss.NewStyle().Padding(1, 2)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	helpStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Bold(true)
	checkedStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	pendingStyle = lipgloss.NewStyle().Faint(true)
	statusStyle  = lipgloss.NewStyle().Faint(true)
	pausedStyle  = lipgloss.NewStyle().Bold(true)
)
