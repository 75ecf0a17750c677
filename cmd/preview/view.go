package preview

import (
	"fmt"
	"math"
	"strings"
	"time"

	ntcanvas "github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/sumwatshade/surfgrid/cmd/canvas"
	"github.com/sumwatshade/surfgrid/cmd/dotgrid"
)

var (
	previewTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	previewInfoStyle  = lipgloss.NewStyle().Faint(true)
	previewErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")) // red
	nowStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	windowStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// View renders the dot grid and a chart of the day's reconstructed tide.
func View(data *Data) string {
	b := &strings.Builder{}
	b.WriteString(previewTitleStyle.Render("Surf Grid"))
	b.WriteString("\n")
	if data == nil {
		b.WriteString(previewInfoStyle.Render("Fetching forecast..."))
		return b.String()
	}
	fmt.Fprintf(b, "%s, %s\n", data.Location, data.Date.Format("Mon 2 Jan 2006"))
	if data.Err != nil {
		b.WriteString(previewErrStyle.Render("render error: " + data.Err.Error()))
		return b.String()
	}
	if data.Result == nil {
		b.WriteString(previewInfoStyle.Render("No forecast"))
		return b.String()
	}

	grid, err := gridView(data)
	if err != nil {
		b.WriteString(previewErrStyle.Render("render error: " + err.Error()))
		return b.String()
	}
	b.WriteString("\n")
	b.WriteString(grid)
	b.WriteString("\n")
	b.WriteString(previewInfoStyle.Render(fmt.Sprintf("%02d:00 → %02d:00", data.Config.Window.Start, data.Config.Window.End)))
	b.WriteString("\n\n")
	b.WriteString(tideView(data))
	return b.String()
}

func gridView(data *Data) (string, error) {
	cfg := data.Config
	res := data.Result
	cmds, err := dotgrid.Compose(res.TideRows, res.Scores.Total, res.WindDirection, cfg, canvas.TerminalLayout(cfg))
	if err != nil {
		return "", err
	}
	term := canvas.NewTerminal(cfg)
	dotgrid.Replay(cmds, term)
	return term.View(), nil
}

// tideView charts the hourly curve across the whole day with the render
// window and, for today, the current time marked.
func tideView(data *Data) string {
	heights := data.Result.Curve.Heights()
	day := time.Date(data.Date.Year(), data.Date.Month(), data.Date.Day(), 0, 0, 0, 0, time.Local)
	minTime := day
	maxTime := day.Add(time.Duration(len(heights)-1) * time.Hour)

	minV, maxV := heights[0], heights[0]
	for _, v := range heights[1:] {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	if minV == maxV { // add small padding
		maxV += 0.1
		minV -= 0.1
	}

	lc := timeserieslinechart.New(42, 10)
	lc.SetTimeRange(minTime, maxTime)
	lc.SetViewTimeAndYRange(minTime, maxTime, minV, maxV)
	// about one label every three hours
	lc.SetXStep(max(1, lc.GraphWidth()*3/len(heights)))
	lc.Model.XLabelFormatter = func(i int, v float64) string {
		return time.Unix(int64(v), 0).In(time.Local).Format("15:04")
	}
	for h, v := range heights {
		lc.Push(timeserieslinechart.TimePoint{Time: day.Add(time.Duration(h) * time.Hour), Value: v})
	}
	lc.DrawBraille()

	mark := func(t time.Time, r rune, style lipgloss.Style) {
		col, ok := chartColumn(&lc, t)
		if !ok {
			return
		}
		for y := 0; y < lc.Model.Origin().Y; y++ {
			p := ntcanvas.Point{X: col, Y: y}
			if lc.Canvas.Cell(p).Rune == 0 {
				lc.Canvas.SetCell(p, ntcanvas.NewCellWithStyle(r, style))
			}
		}
	}
	mark(day.Add(time.Duration(data.Config.Window.Start)*time.Hour), '┊', windowStyle)
	mark(day.Add(time.Duration(data.Config.Window.End)*time.Hour), '┊', windowStyle)
	now := time.Now()
	showNow := !now.Before(minTime) && !now.After(maxTime)
	if showNow {
		mark(now, '│', nowStyle)
	}

	b := &strings.Builder{}
	b.WriteString("Tide (m):\n")
	b.WriteString(lc.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Render("─"))
	b.WriteString(" ")
	b.WriteString(previewInfoStyle.Render("Reconstructed tide"))
	b.WriteString("\n")
	b.WriteString(windowStyle.Render("┊"))
	b.WriteString(" ")
	b.WriteString(previewInfoStyle.Render("Grid window"))
	b.WriteString("\n")
	if showNow {
		b.WriteString(nowStyle.Render("│"))
		b.WriteString(" ")
		b.WriteString(previewInfoStyle.Render("Current time"))
		b.WriteString("\n")
	}
	b.WriteString(previewInfoStyle.Render(fmt.Sprintf("min %.2f m / max %.2f m", minV, maxV)))
	return b.String()
}

// chartColumn maps t onto a canvas column of the chart's graph area.
func chartColumn(lc *timeserieslinechart.Model, t time.Time) (int, bool) {
	viewMin := lc.Model.ViewMinX()
	viewMax := lc.Model.ViewMaxX()
	if viewMax <= viewMin {
		return 0, false
	}
	xRel := (float64(t.Unix()) - viewMin) / (viewMax - viewMin)
	if xRel < 0 || xRel > 1 {
		return 0, false
	}
	col := int(math.Round(xRel*float64(lc.GraphWidth()-1))) + lc.Model.Origin().X
	if lc.Model.YStep() > 0 {
		col++
	}
	if col < 0 || col >= lc.Canvas.Width() {
		return 0, false
	}
	return col, true
}
