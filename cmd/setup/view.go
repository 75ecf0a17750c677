package setup

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	setupTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("219"))
	faint           = lipgloss.NewStyle().Faint(true)
	errStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	highlight       = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
)

// View renders the huh form and, once filled in, a review of the answers.
func View(m *Model) string {
	if m == nil {
		return setupTitleStyle.Render("Surf Grid Setup") + "\n" + faint.Render("(initializing)")
	}
	b := &strings.Builder{}
	fmt.Fprintln(b, setupTitleStyle.Render("Surf Grid Setup"))

	if !m.completed {
		if m.form != nil {
			fmt.Fprintln(b, m.form.View())
		}
		return b.String()
	}

	c, err := m.Config()
	if err != nil {
		fmt.Fprintln(b, errStyle.Render("Invalid answers: "+err.Error()))
		fmt.Fprintln(b, highlight.Render("Press 'n' to start over."))
		return b.String()
	}
	if m.confirmed {
		fmt.Fprintln(b, "\nConfirmed. Writing config...")
		return b.String()
	}
	fmt.Fprintf(b, "\nReview: %s (%d) | %s | %02d:00-%02d:00 | offshore %v-%v±%v | %s\n",
		c.Location.Name, c.Location.ID, c.Source.Kind,
		c.Window.HourStart, c.Window.HourEnd,
		c.Location.WindDirRangeStart, c.Location.WindDirRangeEnd, c.Location.WindDirRangeBuffer,
		c.Display.Target)
	for _, w := range c.Warnings() {
		fmt.Fprintln(b, faint.Render("note: "+w))
	}
	fmt.Fprintln(b, highlight.Render("Press 'y' to confirm save or 'n' to discard & start over."))
	return b.String()
}
