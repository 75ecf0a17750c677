package preview

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// internal message indicating a fetch and render completed
type loadedMsg struct {
	data *Data
}

// Refresh fetches and renders the day again.
func Refresh(l Loader) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{data: l.Load(context.Background())}
	}
}

// HandleUpdate triggers the initial load the first time we get a window size
// (a proxy for program start) and applies loaded data when it arrives.
func HandleUpdate(data *Data, l Loader, msg tea.Msg) (*Data, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		if data == nil {
			return data, Refresh(l)
		}
	case loadedMsg:
		return m.data, nil
	}
	return data, nil
}
