package dotgrid

import "math"

// Wind tail widths at the top and the bottom of a column's active band.
const (
	tailWidthTop    = 3
	tailWidthBottom = 1
)

// tideRowFloor keeps a visible band even at zero tide.
const tideRowFloor = 2

// Point is a position on the drawing surface, in pixels.
type Point struct {
	X, Y float64
}

// Surface is the paint target a render is replayed onto.
type Surface interface {
	// FillCircle paints a filled circle whose bounding box has its top-left
	// corner at (x, y).
	FillCircle(x, y float64, diameter int)
	DrawLine(from, to Point, width int)
}

// Command is a single primitive emitted by the compositor.
type Command interface {
	Draw(s Surface)
}

// Dot is a filled circle centered in grid cell (Row, Col).
type Dot struct {
	Row, Col int
	X, Y     float64
	Diameter int
	Active   bool
}

func (d Dot) Draw(s Surface) { s.FillCircle(d.X, d.Y, d.Diameter) }

// Tail is the wind direction line drawn from the edge of a cell to its center.
type Tail struct {
	Row, Col int
	From, To Point
	Width    int
}

func (t Tail) Draw(s Surface) { s.DrawLine(t.From, t.To, t.Width) }

// Layout places the grid on a canvas.
type Layout struct {
	Origin   Point
	CellSize float64
}

// NewLayout centers a cols×rows grid of cfg.CellSize cells on a canvas of the
// given size, shifted by an optical offset.
func NewLayout(canvasWidth, canvasHeight int, offset Point, cfg Config) Layout {
	return Layout{
		Origin: Point{
			X: offset.X + math.Trunc((float64(canvasWidth)-float64(cfg.Cols)*cfg.CellSize)/2),
			Y: offset.Y + math.Trunc((float64(canvasHeight)-float64(cfg.Rows)*cfg.CellSize)/2),
		},
		CellSize: cfg.CellSize,
	}
}

// TideRows maps each column's tide height onto the number of rows, counted
// from the bottom edge, that make up its active band.
func TideRows(tideHeights []float64, cfg Config) []int {
	rows := make([]int, len(tideHeights))
	for j, h := range tideHeights {
		rows[j] = round(mapRange(h, 0, cfg.MaxTideHeight, tideRowFloor, float64(cfg.Rows)))
	}
	return rows
}

// Compose produces the draw commands for every cell of the grid, row by row
// from the top. Dots inside a column's tide band shrink from the column's
// total score down to the minimum active size at the bottom row; dots above
// the band are drawn at the inactive size.
func Compose(tideRows, totals []int, windDir []float64, cfg Config, layout Layout) ([]Command, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(tideRows) != cfg.Cols || len(totals) != cfg.Cols || len(windDir) != cfg.Cols {
		return nil, invalidInput("compositor needs %d columns, got tide rows %d, totals %d, wind direction %d",
			cfg.Cols, len(tideRows), len(totals), len(windDir))
	}

	capacity := cfg.Rows * cfg.Cols
	if cfg.ShowWindTail {
		capacity *= 2
	}
	cmds := make([]Command, 0, capacity)

	lastRow := cfg.Rows - 1
	for k := 0; k < cfg.Rows; k++ {
		for j := 0; j < cfg.Cols; j++ {
			cell := Point{
				X: layout.Origin.X + float64(j)*layout.CellSize,
				Y: layout.Origin.Y + float64(k)*layout.CellSize,
			}
			startRow := cfg.Rows - tideRows[j]
			active := k >= startRow

			diameter := cfg.MinDotSizeInactive
			if active {
				diameter = decay(k, startRow, lastRow, float64(totals[j]), float64(cfg.MinDotSizeActive))
				if cfg.ShowWindTail {
					cmds = append(cmds, windTail(k, j, cell, layout.CellSize, windDir[j],
						decay(k, startRow, lastRow, tailWidthTop, tailWidthBottom)))
				}
			}

			offset := (layout.CellSize - float64(diameter)) / 2
			cmds = append(cmds, Dot{
				Row:      k,
				Col:      j,
				X:        cell.X + offset,
				Y:        cell.Y + offset,
				Diameter: diameter,
				Active:   active,
			})
		}
	}
	return cmds, nil
}

// decay interpolates linearly from top at startRow to bottom at lastRow.
// A band that starts on the last row keeps the top value.
func decay(row, startRow, lastRow int, top, bottom float64) int {
	if startRow >= lastRow {
		return round(top)
	}
	return round(mapRange(float64(row), float64(startRow), float64(lastRow), top, bottom))
}

func windTail(row, col int, cell Point, cellSize, direction float64, width int) Tail {
	r := cellSize / 2
	// 0° points north on screen, so rotate by a quarter turn.
	angle := (direction - 90) * math.Pi / 180
	center := Point{X: cell.X + r, Y: cell.Y + r}
	return Tail{
		Row:   row,
		Col:   col,
		From:  Point{X: center.X + r*math.Cos(angle), Y: center.Y + r*math.Sin(angle)},
		To:    center,
		Width: width,
	}
}

// Replay paints commands onto a surface in order.
func Replay(cmds []Command, s Surface) {
	for _, c := range cmds {
		c.Draw(s)
	}
}
