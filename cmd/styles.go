package cmd

import "github.com/charmbracelet/lipgloss"

// Centralized styles for consistent UX across views.
var (
	appTitle       = "surfgrid"
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")).Background(lipgloss.Color("57")).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("247"))
	activeTabStyle = tabStyle.Bold(true).Foreground(lipgloss.Color("51")).Background(lipgloss.Color("236"))
	contentStyle   = lipgloss.NewStyle().Padding(1, 2)
	dividerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

const (
	scoresView  = "scores"
	historyView = "history"
)

func tabs(current string, width int) string {
	// The preview is always visible on the left; only the right pane switches.
	names := []string{scoresView, historyView}
	var rendered []string
	for _, n := range names {
		if n == current {
			rendered = append(rendered, activeTabStyle.Render(n))
		} else {
			rendered = append(rendered, tabStyle.Render(n))
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if width > 0 {
		// Ensure line doesn't overflow; truncate softly.
		line = lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
	return line
}
