package preview

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/sumwatshade/surfgrid/cmd/dotgrid"
)

var (
	scoresTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	headerCellStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("111")).Padding(0, 1)
	cellStyle        = lipgloss.NewStyle().Padding(0, 1)
	bestRowStyle     = cellStyle.Foreground(lipgloss.Color("51")).Bold(true)
	windClassStyles  = map[dotgrid.WindClass]lipgloss.Style{
		dotgrid.WindBest:        cellStyle.Foreground(lipgloss.Color("42")),
		dotgrid.WindAcceptable:  cellStyle.Foreground(lipgloss.Color("220")),
		dotgrid.WindUnfavorable: cellStyle.Foreground(lipgloss.Color("203")),
	}
)

const windClassCol = 4

// ScoresView lists every column's inputs and scores. The best column is
// highlighted.
func ScoresView(data *Data) string {
	title := scoresTitleStyle.Render("Scores")
	if data == nil || data.Result == nil {
		return title + "\n" + previewInfoStyle.Render("No scores yet.")
	}
	rows := ScoreRows(data.Result, data.Config)
	best := bestColumn(data.Result.Scores.Total)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("238"))).
		Headers("Time", "Swell", "Wind", "Dir", "Wind class", "Swell pts", "Wind pts", "Total").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerCellStyle
			case row == best:
				return bestRowStyle
			case col == windClassCol:
				return windClassStyles[data.Config.ClassifyWind(data.Result.WindDirection[row])]
			}
			return cellStyle
		})
	return title + "\n" + t.Render()
}

// ScoreRows formats one table row per grid column.
func ScoreRows(res *dotgrid.Result, cfg dotgrid.Config) [][]string {
	rows := make([][]string, 0, len(res.Scores.Total))
	for j := range res.Scores.Total {
		minutes := columnTime(cfg, j)
		rows = append(rows, []string{
			fmt.Sprintf("%02d:%02d", minutes/60, minutes%60),
			fmt.Sprintf("%.1f m", res.Swell[j]),
			fmt.Sprintf("%.0f km/h", res.WindSpeed[j]),
			fmt.Sprintf("%.0f°", res.WindDirection[j]),
			cfg.ClassifyWind(res.WindDirection[j]).String(),
			strconv.Itoa(res.Scores.Swell[j]),
			strconv.Itoa(res.Scores.Wind[j]),
			strconv.Itoa(res.Scores.Total[j]),
		})
	}
	return rows
}

// bestColumn is the first column with the highest total, -1 if there are none.
func bestColumn(totals []int) int {
	best := -1
	for j, s := range totals {
		if best < 0 || s > totals[best] {
			best = j
		}
	}
	return best
}
