package archive

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	itemTitleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Bold(true)
	itemDescStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	selectedTitleStyle = itemTitleStyle.Foreground(lipgloss.Color("51"))
	selectedDescStyle  = itemDescStyle.Foreground(lipgloss.Color("245"))
)

type recordItem struct{ Record }

func (i recordItem) Title() string {
	return strings.TrimSpace(i.Date + " " + i.Location)
}

func (i recordItem) Description() string {
	parts := []string{}
	if score, at, ok := i.Peak(); ok {
		parts = append(parts, fmt.Sprintf("peak %d at %s", score, at))
	}
	if i.Source != "" {
		parts = append(parts, i.Source)
	}
	return strings.Join(parts, " | ")
}

func (i recordItem) FilterValue() string {
	return strings.ToLower(strings.Join([]string{i.Date, i.Location, i.Source}, " "))
}

type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 2 }
func (d itemDelegate) Spacing() int                              { return 1 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	it, ok := listItem.(recordItem)
	if !ok {
		io.WriteString(w, "?")
		return
	}
	title := itemTitleStyle.Render(it.Title())
	desc := itemDescStyle.Render(it.Description())
	if index == m.Index() {
		title = selectedTitleStyle.Render(it.Title())
		desc = selectedDescStyle.Render(it.Description())
	}
	io.WriteString(w, lipgloss.JoinVertical(lipgloss.Left, title, desc))
}
