package ui

import "github.com/charmbracelet/lipgloss"

// StyleSet holds the Lip Gloss styles the dashboard renders with.
type StyleSet struct {
	Title    lipgloss.Style
	Success  lipgloss.Style
	Pending  lipgloss.Style
	Accent   lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	Help     lipgloss.Style
	Tab      lipgloss.Style
	TabOn    lipgloss.Style
	Border   lipgloss.Style
}

// Styles derives the Lip Gloss styles from the current theme.
func Styles() StyleSet {
	t := Current()
	return StyleSet{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(t.TitleColor),
		Success:  lipgloss.NewStyle().Foreground(t.SuccessColor),
		Pending:  lipgloss.NewStyle().Foreground(t.PendingColor),
		Accent:   lipgloss.NewStyle().Foreground(t.AccentColor),
		Muted:    lipgloss.NewStyle().Faint(true),
		Error:    lipgloss.NewStyle().Foreground(t.ErrorColor).Bold(true),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Tab:      lipgloss.NewStyle().Padding(0, 1).Faint(true),
		TabOn:    lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(t.AccentColor),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderColor).
			Padding(0, 1),
	}
}
