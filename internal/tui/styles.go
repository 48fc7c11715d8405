package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the chat view.
type Styles struct {
	Title    lipgloss.Style
	User     lipgloss.Style
	Bot      lipgloss.Style
	Info     lipgloss.Style
	Error    lipgloss.Style
	Media    lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Status   lipgloss.Style
}

func DefaultStyles() *Styles {
	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		User:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Bot:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Info:     lipgloss.NewStyle().Faint(true).Italic(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Media:    lipgloss.NewStyle().Foreground(lipgloss.Color("36")).Underline(true),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Normal:   lipgloss.NewStyle(),
		Status:   lipgloss.NewStyle().Faint(true),
	}
}
