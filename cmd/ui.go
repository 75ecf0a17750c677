package cmd

import (
	"strings"

	bhelp "github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sumwatshade/surfgrid/cmd/archive"
	"github.com/sumwatshade/surfgrid/cmd/preview"
)

type model struct {
	rightView string // scoresView or historyView
	loader    preview.Loader
	data      *preview.Data
	history   *archive.History
	width     int
	height    int
	// help / key bindings
	keys keyMap
	help bhelp.Model
}

func initialModel(loader preview.Loader, svc archive.Service) model {
	return model{
		rightView: scoresView,
		loader:    loader,
		history:   archive.NewHistory(svc),
		keys:      keys,
		help:      bhelp.New(),
	}
}

func (m model) Init() tea.Cmd {
	// The first window size triggers the fetch.
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		// Keys belong to the history filter while it is open.
		if m.rightView == historyView && m.history.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.data = nil
			return m, preview.Refresh(m.loader)
		case key.Matches(msg, m.keys.Scores):
			m.rightView = scoresView
			return m, nil
		case key.Matches(msg, m.keys.History):
			m.rightView = historyView
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	// preview update (always run; it internally no-ops when not needed)
	var cmd tea.Cmd
	m.data, cmd = preview.HandleUpdate(m.data, m.loader, msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	// propagate updates to active right pane
	if m.rightView == historyView {
		if cmd := m.history.Update(msg, rightPaneWidth(m.width), m.height); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	left := preview.View(m.data)
	var right string
	switch m.rightView {
	case historyView:
		right = m.history.View()
	default:
		right = preview.ScoresView(m.data)
	}

	leftW := leftPaneWidth(m.width)
	rightW := rightPaneWidth(m.width)
	leftRendered := lipgloss.NewStyle().Width(leftW).Render(contentStyle.Render(left))
	rightRendered := lipgloss.NewStyle().Width(rightW).Render(contentStyle.Render(right))
	columns := lipgloss.JoinHorizontal(lipgloss.Top, leftRendered, dividerStyle.Render("│"), rightRendered)

	header := headerStyle.Render(appTitle) + " " + tabs(m.rightView, max(0, m.width-10))
	sep := dividerStyle.Render(lipgloss.NewStyle().Width(m.width).Render(strings.Repeat("─", max(0, m.width))))
	foot := m.help.View(m.keys)
	layout := lipgloss.JoinVertical(lipgloss.Left, header, sep, columns, sep, foot)
	if m.width > 0 {
		layout = lipgloss.NewStyle().Width(m.width).Render(layout)
	}
	return layout
}

// The grid needs 48 columns plus padding, so the left pane gets the larger
// share.
func leftPaneWidth(total int) int {
	return max(56, int(float64(total)*0.45))
}

func rightPaneWidth(total int) int {
	return max(20, total-leftPaneWidth(total)-1)
}
