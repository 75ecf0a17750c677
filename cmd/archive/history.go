package archive

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// History is the interactive list of archived renders.
type History struct {
	Records []Record
	list    list.Model
	ready   bool
	width   int
	height  int
	detail  bool // whether we're showing a single record
	err     error
}

var (
	statusBarStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)
	historyTitleBarStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	detailHeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")).Underline(true)
	detailMetaStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	sparkStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	faintStyle           = lipgloss.NewStyle().Faint(true)
)

// NewHistory loads every record of svc. A failed load is shown in the view.
func NewHistory(svc Service) *History {
	h := &History{}
	if svc == nil {
		return h
	}
	h.Records, h.err = svc.List()
	return h
}

// ensureList creates or resizes the list model based on dimensions.
func (h *History) ensureList(width, height int) {
	if width == 0 || height == 0 {
		return
	}
	h.width = width
	h.height = height
	listHeight := max(5, height-6)
	if !h.ready {
		items := make([]list.Item, 0, len(h.Records))
		for _, r := range h.Records {
			items = append(items, recordItem{r})
		}
		l := list.New(items, itemDelegate{}, width-4, listHeight)
		l.Title = "History"
		l.SetShowStatusBar(true)
		l.SetShowPagination(true)
		l.SetFilteringEnabled(true)
		l.Styles.Title = historyTitleBarStyle
		l.Styles.StatusBar = statusBarStyle
		l.Styles.PaginationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		l.Styles.HelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
		h.list = l
		h.ready = true
		return
	}
	h.list.SetSize(width-4, listHeight)
}

// Filtering reports whether keystrokes currently go to the filter input.
func (h *History) Filtering() bool {
	return h.ready && h.list.FilterState() == list.Filtering
}

// Update handles messages specific to the history list.
func (h *History) Update(msg tea.Msg, width, height int) tea.Cmd {
	h.ensureList(width, height)
	if !h.ready {
		return nil
	}
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "esc":
			if h.detail {
				h.detail = false
				return nil
			}
			if h.list.FilterState() == list.Filtering {
				h.list.ResetFilter()
				return nil
			}
		case "enter":
			if h.list.FilterState() != list.Filtering {
				h.detail = true
				return nil
			}
		}
	}
	var cmd tea.Cmd
	h.list, cmd = h.list.Update(msg)
	return cmd
}

// View renders the history list or the selected record.
func (h *History) View() string {
	if h.err != nil {
		return historyTitleBarStyle.Render("History") + "\n" + faintStyle.Render("Could not read archive: "+h.err.Error())
	}
	if !h.ready {
		return historyTitleBarStyle.Render("History") + "\n" + "Loading..."
	}
	if len(h.Records) == 0 {
		return historyTitleBarStyle.Render("History") + "\n" + faintStyle.Render("No renders archived yet.")
	}
	if h.detail {
		sel, ok := h.list.SelectedItem().(recordItem)
		if !ok {
			h.detail = false
			return h.list.View()
		}
		return lipgloss.NewStyle().Width(h.width - 4).Render(h.detailView(sel.Record))
	}
	return h.list.View()
}

func (h *History) detailView(r Record) string {
	b := &strings.Builder{}
	fmt.Fprintln(b, historyTitleBarStyle.Render("Render"))
	fmt.Fprintln(b)
	fmt.Fprintln(b, detailHeaderStyle.Render(recordItem{r}.Title()))
	fmt.Fprintln(b, detailMetaStyle.Render(fmt.Sprintf("Window: %02d:00-%02d:00", r.HourStart, r.HourEnd)))
	if r.Source != "" {
		fmt.Fprintln(b, detailMetaStyle.Render("Source: "+r.Source))
	}
	if score, at, ok := r.Peak(); ok {
		fmt.Fprintln(b, detailMetaStyle.Render(fmt.Sprintf("Peak: %d at %s", score, at)))
		fmt.Fprintln(b)
		fmt.Fprintln(b, scoreSparkline(r.Totals))
	}
	if r.Image != "" {
		fmt.Fprintln(b, detailMetaStyle.Render("Image: "+r.Image))
	}
	fmt.Fprintln(b)
	fmt.Fprintln(b, faintStyle.Render("(esc to go back)"))
	return b.String()
}

// scoreSparkline draws one bar per column. Negative totals draw as empty.
func scoreSparkline(totals []int) string {
	data := make([]float64, len(totals))
	for j, s := range totals {
		data[j] = float64(s)
	}
	sl := sparkline.New(len(totals), 3, sparkline.WithStyle(sparkStyle))
	sl.PushAll(data)
	sl.Draw()
	return sl.View()
}
