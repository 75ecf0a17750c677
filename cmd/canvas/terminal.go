package canvas

import (
	"math"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/charmbracelet/lipgloss"

	"github.com/sumwatshade/surfgrid/cmd/dotgrid"
)

// glyphs run from the smallest dot to the largest.
var glyphs = []rune{'·', '•', '●', '⬤'}

var (
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// Terminal maps each grid cell onto one character of an ntcharts canvas.
// Wind tails do not fit in a character and are dropped.
type Terminal struct {
	cv       canvas.Model
	cellSize float64
	inactive int
	maxDot   float64
}

var _ dotgrid.Surface = (*Terminal)(nil)

// NewTerminal sizes the canvas for cfg's grid. Replay onto it with
// TerminalLayout(cfg).
func NewTerminal(cfg dotgrid.Config) *Terminal {
	// Two columns per cell keep the grid roughly square.
	return &Terminal{
		cv:       canvas.New(cfg.Cols*2, cfg.Rows),
		cellSize: cfg.CellSize,
		inactive: cfg.MinDotSizeInactive,
		maxDot:   cfg.MaxDotSizeActive,
	}
}

func TerminalLayout(cfg dotgrid.Config) dotgrid.Layout {
	return dotgrid.Layout{CellSize: cfg.CellSize}
}

func (t *Terminal) FillCircle(x, y float64, diameter int) {
	if diameter <= 0 {
		return
	}
	r := float64(diameter) / 2
	col := int(math.Floor((x + r) / t.cellSize))
	row := int(math.Floor((y + r) / t.cellSize))
	p := canvas.Point{X: col * 2, Y: row}
	if diameter <= t.inactive {
		t.cv.SetCell(p, canvas.NewCellWithStyle(glyphs[0], inactiveStyle))
		return
	}
	t.cv.SetCell(p, canvas.NewCellWithStyle(t.glyph(diameter), activeStyle))
}

func (t *Terminal) DrawLine(from, to dotgrid.Point, width int) {}

// glyph picks a rune by the diameter's share of the largest active dot.
func (t *Terminal) glyph(diameter int) rune {
	if t.maxDot <= 0 {
		return glyphs[len(glyphs)-1]
	}
	i := int(math.Ceil(float64(diameter) / t.maxDot * float64(len(glyphs)-1)))
	return glyphs[max(1, min(i, len(glyphs)-1))]
}

// Rune returns the glyph drawn for grid cell (row, col), zero if none.
func (t *Terminal) Rune(row, col int) rune {
	return t.cv.Cell(canvas.Point{X: col * 2, Y: row}).Rune
}

func (t *Terminal) View() string { return t.cv.View() }
