package setup

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sumwatshade/surfgrid/cmd/settings"
)

// UpdateModel updates the wizard and returns a potential command. Once the
// form is complete it waits for the user to confirm or start over.
func UpdateModel(m *Model, msg tea.Msg) (*Model, tea.Cmd) {
	if m.completed && !m.confirmed {
		if km, ok := msg.(tea.KeyMsg); ok {
			switch km.String() {
			case "y", "enter":
				if _, err := m.Config(); err == nil {
					m.confirmed = true
				}
				return m, nil
			case "n", "esc":
				next := NewModel(m.base)
				return next, next.Init()
			}
		}
		return m, nil
	}
	cmd := m.Update(msg)
	return m, cmd
}

// program runs the wizard on its own.
type program struct{ m *Model }

func (p program) Init() tea.Cmd { return p.m.Init() }

func (p program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
		p.m.aborted = true
		return p, tea.Quit
	}
	m, cmd := UpdateModel(p.m, msg)
	p.m = m
	if m.Done() || m.Aborted() {
		return p, tea.Quit
	}
	return p, cmd
}

func (p program) View() string { return View(p.m) }

// Run shows the wizard and returns the confirmed config, or nil if the user
// aborted.
func Run(base *settings.Config) (*settings.Config, error) {
	final, err := tea.NewProgram(program{m: NewModel(base)}).Run()
	if err != nil {
		return nil, err
	}
	m := final.(program).m
	if !m.Done() {
		return nil, nil
	}
	return m.Config()
}
